// Package repository implements the MySQL persistence layer. Sentinel
// errors defined here let handlers distinguish failure scenarios without
// inspecting driver error strings themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrDebateNotFound is returned when a debate id has no matching row.
// Handlers translate this into an HTTP 404 response.
var ErrDebateNotFound = errors.New("debate not found")

// ErrDuplicateVote is returned when a voter name has already voted on the
// debate. Handlers translate this into an HTTP 400 response.
var ErrDuplicateVote = errors.New("already voted on this debate")

// ErrAlreadyJoined is returned when a participant name already joined the
// debate. Handlers translate this into an HTTP 400 response.
var ErrAlreadyJoined = errors.New("already joined this debate")

// ErrPhotoNotFound is returned when a photo id has no matching row.
var ErrPhotoNotFound = errors.New("photo not found")

// ErrTransactionNotFound is returned when no payment transaction matches
// the given checkout session id.
var ErrTransactionNotFound = errors.New("transaction not found")

// isDuplicate reports whether the driver error is a MySQL duplicate-key
// violation (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
