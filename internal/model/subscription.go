package model

import "time"

// PushSubscription is a browser push endpoint registered by a visitor.
// Endpoints are client-supplied URLs, so outbound delivery goes through
// an SSRF-guarded client.
type PushSubscription struct {
	ID        string    `json:"id"`
	Endpoint  string    `json:"endpoint"`
	P256dh    string    `json:"p256dh"`
	AuthKey   string    `json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}
