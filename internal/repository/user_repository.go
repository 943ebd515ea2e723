package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/debateclub/debate-club-api/internal/model"
)

// UserRepo persists community members in the 'users' table. Missing rows
// are reported as (nil, nil) so callers do not depend on sql.ErrNoRows.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user row. IDs are generated by the caller.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, name, picture, created_at, updated_at) VALUES (?,?,?,?,?,?)",
		u.ID, strings.ToLower(strings.TrimSpace(u.Email)), u.Name, nullable(u.Picture), u.CreatedAt, u.UpdatedAt)
	return err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.scanOne(ctx,
		"SELECT id,email,name,COALESCE(picture,''),created_at,updated_at FROM users WHERE email=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(email)))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.scanOne(ctx,
		"SELECT id,email,name,COALESCE(picture,''),created_at,updated_at FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.Picture, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// nullable maps the empty string to NULL for optional columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
