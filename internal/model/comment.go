package model

import "time"

// Comment is a visitor comment on a debate. Content is sanitized before
// it reaches the repository and comments are listed newest-first.
type Comment struct {
	ID         string    `json:"id"`
	DebateID   string    `json:"debate_id"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}
