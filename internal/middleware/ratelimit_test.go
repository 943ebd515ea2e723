package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/debateclub/debate-club-api/internal/config"
)

func hitRateLimited(t *testing.T, mw echo.MiddlewareFunc) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return rec.Code
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	mw := RateLimit(config.RateLimitConfig{Enabled: false}, nil)
	for i := 0; i < 50; i++ {
		if code := hitRateLimited(t, mw); code != http.StatusOK {
			t.Fatalf("request %d: status %d, want 200", i+1, code)
		}
	}
}

func TestRateLimitLocalFallbackBlocksAfterCapacity(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       3,
		RefillTokens:   1,
		RefillInterval: time.Hour, // effectively no refill during the test
		TTL:            time.Minute,
		Prefix:         "test",
	}
	// nil Redis forces the in-process limiter.
	mw := RateLimit(cfg, nil)

	for i := 0; i < cfg.Capacity; i++ {
		if code := hitRateLimited(t, mw); code != http.StatusOK {
			t.Fatalf("request %d: status %d, want 200", i+1, code)
		}
	}
	if code := hitRateLimited(t, mw); code != http.StatusTooManyRequests {
		t.Fatalf("over-capacity request: status %d, want 429", code)
	}
}

func TestRateLimitUnreachableRedisFallsBack(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            time.Minute,
		Prefix:         "test",
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	mw := RateLimit(cfg, rdb)

	// A dead Redis must not fail open past the local capacity, nor fail
	// closed below it.
	for i := 0; i < cfg.Capacity; i++ {
		if code := hitRateLimited(t, mw); code != http.StatusOK {
			t.Fatalf("request %d: status %d, want 200", i+1, code)
		}
	}
	if code := hitRateLimited(t, mw); code != http.StatusTooManyRequests {
		t.Fatalf("over-capacity request: status %d, want 429", code)
	}
}
