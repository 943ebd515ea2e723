package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/debateclub/debate-club-api/internal/model"
)

// SessionRepo persists member sessions. The table carries a UNIQUE key on
// user_id, so Replace installs a session as the user's only one with a
// single atomic statement instead of a delete-then-insert pair.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Replace upserts the session keyed by user_id. A concurrent login for
// the same user cannot leave zero or two rows: the last write wins.
func (r *SessionRepo) Replace(ctx context.Context, s *model.Session) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO sessions (session_token, user_id, created_at, expires_at)
		 VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   session_token=VALUES(session_token),
		   created_at=VALUES(created_at),
		   expires_at=VALUES(expires_at)`,
		s.SessionToken, s.UserID, s.CreatedAt, s.ExpiresAt)
	return err
}

// GetByToken fetches a session by its token. Missing rows return (nil, nil);
// expiry is the caller's concern (lazy check, no sweep).
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	var s model.Session
	err := r.DB.QueryRowContext(ctx,
		"SELECT session_token,user_id,created_at,expires_at FROM sessions WHERE session_token=? LIMIT 1",
		token).Scan(&s.SessionToken, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteByToken removes any rows matching the token. Zero rows affected
// is fine; logout is idempotent.
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE session_token=?", token)
	return err
}
