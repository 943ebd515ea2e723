package model

import "time"

// Photo is metadata for an admin-uploaded event image. The binary itself
// lives in the file store under Filename; only metadata is kept in MySQL.
type Photo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Filename    string    `json:"-"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
