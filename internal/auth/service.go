package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/debateclub/debate-club-api/internal/model"
)

// UserStore is the slice of the user repository the session manager
// needs. A missing record is reported as (nil, nil), not an error.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
}

// SessionStore persists session records. Replace must atomically install
// the given session as the user's only one (the sessions table carries a
// UNIQUE key on user_id, so this is a single conditional write rather
// than a delete-then-insert pair).
type SessionStore interface {
	Replace(ctx context.Context, s *model.Session) error
	GetByToken(ctx context.Context, token string) (*model.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

// Service implements the member session state machine:
// NoSession -> Active on OAuth login, Active -> Replaced on re-login,
// Active -> Expired lazily by time, Active -> NoSession on logout.
type Service struct {
	provider IdentityProvider
	users    UserStore
	sessions SessionStore
	ttl      time.Duration

	now func() time.Time // overridable in tests
}

// NewService wires the session manager. ttlDays is the session lifetime
// in days (7 in production).
func NewService(p IdentityProvider, users UserStore, sessions SessionStore, ttlDays int) *Service {
	return &Service{
		provider: p,
		users:    users,
		sessions: sessions,
		ttl:      time.Duration(ttlDays) * 24 * time.Hour,
		now:      time.Now,
	}
}

// TTL returns the configured session lifetime; handlers use it for the
// cookie max-age.
func (s *Service) TTL() time.Duration { return s.ttl }

// CompleteOAuthLogin exchanges the external session id with the identity
// provider, provisions the user on first login, and installs the
// provider-issued token as the user's single active session.
func (s *Service) CompleteOAuthLogin(ctx context.Context, externalSessionID string) (*model.User, *model.Session, error) {
	id, err := s.provider.Exchange(ctx, externalSessionID)
	if err != nil {
		return nil, nil, err
	}

	u, err := s.users.GetByEmail(ctx, id.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		now := s.now().UTC()
		u = &model.User{
			ID:        uuid.New().String(),
			Email:     id.Email,
			Name:      id.Name,
			Picture:   id.Picture,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, nil, fmt.Errorf("create user: %w", err)
		}
	}

	now := s.now().UTC()
	sess := &model.Session{
		SessionToken: id.SessionToken,
		UserID:       u.ID,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.sessions.Replace(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("replace session: %w", err)
	}
	return u, sess, nil
}

// AuthenticateBySession resolves a user from a session credential. The
// cookie value takes precedence; a bearer header value is accepted as
// fallback. Unknown tokens fail with ErrUnauthenticated, known but
// expired ones with ErrSessionExpired, and a dangling user reference
// with ErrUserNotFound.
func (s *Service) AuthenticateBySession(ctx context.Context, cookieValue, headerValue string) (*model.User, error) {
	token := cookieValue
	if token == "" {
		token = headerValue
	}
	if token == "" {
		return nil, ErrUnauthenticated
	}

	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	if sess.Expired(s.now().UTC()) {
		return nil, ErrSessionExpired
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Logout deletes any session rows matching the token. Absence of a match
// is not an error; the operation is idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
