// Package auth implements the two authentication mechanisms of the site:
// the admin JWT issuer backed by injected static credentials, and the
// member session manager that exchanges an external OAuth session id for
// a persisted session cookie.
package auth

import "errors"

// Sentinel errors returned by the token issuer and the session manager.
// Handlers translate all of them into HTTP 401 except ErrUpstreamAuth,
// which surfaces as 400 on the OAuth callback.
var (
	// ErrInvalidCredentials is returned when the admin username/password
	// pair does not match the configured credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned for missing, malformed, badly signed
	// or expired admin tokens, and for session lookups with no matching
	// record or no credential at all.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrSessionExpired is returned when a session record exists but its
	// expiry has passed. Expiry is checked lazily; expired rows stay in
	// place until the next login overwrites them.
	ErrSessionExpired = errors.New("session expired")

	// ErrUserNotFound signals a dangling session whose user record has
	// disappeared. This is a consistency anomaly, not a normal path.
	ErrUserNotFound = errors.New("user not found")

	// ErrUpstreamAuth is returned when the external identity provider
	// rejects the session id or cannot be reached.
	ErrUpstreamAuth = errors.New("identity provider exchange failed")
)
