package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/debateclub/debate-club-api/internal/model"
)

// PhotoRepo persists photo metadata; the binaries live in the file store.
type PhotoRepo struct{ DB *sql.DB }

func NewPhotoRepo(db *sql.DB) *PhotoRepo { return &PhotoRepo{DB: db} }

// Create inserts a photo metadata row.
func (r *PhotoRepo) Create(ctx context.Context, p *model.Photo) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO photos (id, title, filename, content_type, size_bytes, uploaded_by, created_at) VALUES (?,?,?,?,?,?,?)",
		p.ID, p.Title, p.Filename, p.ContentType, p.SizeBytes, p.UploadedBy, p.CreatedAt)
	return err
}

// GetByID fetches one photo's metadata; missing ids fail with
// ErrPhotoNotFound.
func (r *PhotoRepo) GetByID(ctx context.Context, id string) (*model.Photo, error) {
	var p model.Photo
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,title,filename,content_type,size_bytes,uploaded_by,created_at FROM photos WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Title, &p.Filename, &p.ContentType, &p.SizeBytes, &p.UploadedBy, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all photos, newest first.
func (r *PhotoRepo) List(ctx context.Context) ([]model.Photo, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,title,filename,content_type,size_bytes,uploaded_by,created_at FROM photos ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Photo{}
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.Title, &p.Filename, &p.ContentType, &p.SizeBytes, &p.UploadedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a photo row; missing ids fail with ErrPhotoNotFound.
func (r *PhotoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM photos WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPhotoNotFound
	}
	return nil
}
