package model

import "time"

// User represents a community member provisioned on first OAuth login.
// The record is keyed by a UUID and reused on every subsequent login for
// the same email; the core never deletes users.
//
// Fields:
//  ID        – primary key (UUID string).
//  Email     – unique email address from the identity provider.
//  Name      – display name from the identity provider.
//  Picture   – optional avatar URL.
//  CreatedAt – timestamp of first login.
//  UpdatedAt – timestamp of last update.
type User struct {
	ID        string    // users.id
	Email     string    // users.email
	Name      string    // users.name
	Picture   string    // users.picture (may be empty)
	CreatedAt time.Time // users.created_at
	UpdatedAt time.Time // users.updated_at
}
