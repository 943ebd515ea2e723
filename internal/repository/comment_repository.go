package repository

import (
	"context"
	"database/sql"

	"github.com/debateclub/debate-club-api/internal/model"
)

// CommentRepo persists visitor comments.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// Create inserts a comment row. Content arrives already sanitized.
func (r *CommentRepo) Create(ctx context.Context, cm *model.Comment) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (id, debate_id, content, author_name, created_at) VALUES (?,?,?,?,?)",
		cm.ID, cm.DebateID, cm.Content, cm.AuthorName, cm.CreatedAt)
	return err
}

// ListByDebate returns the debate's comments newest first.
func (r *CommentRepo) ListByDebate(ctx context.Context, debateID string) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,debate_id,content,author_name,created_at FROM comments WHERE debate_id=? ORDER BY created_at DESC",
		debateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		var cm model.Comment
		if err := rows.Scan(&cm.ID, &cm.DebateID, &cm.Content, &cm.AuthorName, &cm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cm)
	}
	return out, rows.Err()
}
