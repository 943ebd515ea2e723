// Package notify fans admin notifications out to subscribed push
// endpoints through the message broker, decoupling the HTTP request from
// delivery.
package notify

// Endpoint is one delivery target taken from a stored push subscription.
type Endpoint struct {
	URL    string `json:"url"`
	P256dh string `json:"p256dh,omitempty"`
	Auth   string `json:"auth,omitempty"`
}

// NotificationEvent is the message published to the notification.send
// queue. It carries everything the consumer needs so delivery never
// queries the primary database.
type NotificationEvent struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	SentBy    string     `json:"sent_by"`
	CreatedAt string     `json:"created_at"`
	Endpoints []Endpoint `json:"endpoints"`
}
