package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStoreSaveOpenRemove(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	n, err := fs.Save("a.jpg", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != 5 {
		t.Fatalf("size = %d, want 5", n)
	}

	f, err := fs.Open("a.jpg")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil || string(data) != "hello" {
		t.Fatalf("read back %q, err %v", data, err)
	}

	if err := fs.Remove("a.jpg"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := fs.Open("a.jpg"); err == nil {
		t.Fatal("file still readable after Remove")
	}
	// Removing twice is fine.
	if err := fs.Remove("a.jpg"); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
}

func TestFileStoreRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatal(err)
	}
	outside := filepath.Join(dir, "escape.txt")

	if _, err := fs.Save("../escape.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(outside); err == nil {
		t.Fatal("file escaped the store directory")
	}
}
