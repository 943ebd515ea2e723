package model

import "time"

// Session binds an opaque provider-issued token to a user for seven days.
// The sessions table carries a UNIQUE key on user_id, so a new login
// atomically replaces any previous session for the same user. Expiry is
// checked lazily at lookup; there is no background sweep.
type Session struct {
	SessionToken string    // sessions.session_token (primary key)
	UserID       string    // sessions.user_id (unique)
	CreatedAt    time.Time // sessions.created_at
	ExpiresAt    time.Time // sessions.expires_at
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
