// Package storage is the local file store for uploaded photos. Only the
// binary lives here; metadata stays in MySQL.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore writes uploads under a single directory. Stored names are
// generated by the caller (uuid + original extension), so path traversal
// via client-supplied names is not possible.
type FileStore struct {
	Dir string
}

// NewFileStore ensures the upload directory exists.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

// Save streams the reader into a file with the given stored name and
// returns the number of bytes written.
func (fs *FileStore) Save(name string, r io.Reader) (int64, error) {
	f, err := os.Create(fs.path(name))
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, r)
}

// Open opens a stored file for reading.
func (fs *FileStore) Open(name string) (*os.File, error) {
	return os.Open(fs.path(name))
}

// Remove deletes a stored file. A missing file is not an error.
func (fs *FileStore) Remove(name string) error {
	err := os.Remove(fs.path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (fs *FileStore) path(name string) string {
	return filepath.Join(fs.Dir, filepath.Base(strings.TrimSpace(name)))
}
