package database

import (
	"strings"
	"testing"

	"github.com/debateclub/debate-club-api/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "club",
		DBPass: "hunter2",
		DBHost: "db.local",
		DBPort: "3306",
		DBName: "debateclub",
	}
	got := dsn(cfg)

	for _, want := range []string{
		"club:hunter2@tcp(db.local:3306)/debateclub",
		"parseTime=true",
		"charset=utf8mb4",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dsn = %q, missing %q", got, want)
		}
	}
}

func TestDSNEmptyPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "club",
		DBHost: "localhost",
		DBPort: "3306",
		DBName: "debateclub",
	}
	got := dsn(cfg)
	if !strings.HasPrefix(got, "club@tcp(") {
		t.Fatalf("dsn = %q, want user without password separator", got)
	}
}
