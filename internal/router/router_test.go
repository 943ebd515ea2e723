package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/debateclub/debate-club-api/internal/config"
	"github.com/debateclub/debate-club-api/internal/handler"
	"github.com/debateclub/debate-club-api/internal/metrics"
	"github.com/debateclub/debate-club-api/internal/sanitize"
)

// newTestEcho registers the full surface with inert dependencies; tests
// only hit routes that answer before touching storage.
func newTestEcho() *echo.Echo {
	reg := prometheus.NewRegistry()
	s := sanitize.New()
	cfg := config.Config{JWTSecret: "route-test"}
	passThrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	e := echo.New()
	Register(e, Deps{
		Cfg:           cfg,
		Gatherer:      reg,
		Auth:          handler.NewAuthHandler(cfg, nil, metrics.NewCollector(reg)),
		Debates:       handler.NewDebateHandler(nil, nil, s),
		Comments:      handler.NewCommentHandler(nil, nil, s),
		Photos:        handler.NewPhotoHandler(nil, nil),
		Payments:      handler.NewPaymentHandler(nil, nil, "hook"),
		Notifications: handler.NewNotificationHandler(nil, s, ""),
		SessionAuth:   passThrough,
	})
	return e
}

func TestUnsubscribeServedOnDelete(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/api/notifications/subscribe", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// An empty body fails validation inside the handler; anything but
	// 404/405 proves the route is mounted.
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("DELETE /api/notifications/subscribe = %d, want 400", rec.Code)
	}
}

func TestUnsubscribePostAlias(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/unsubscribe", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST /api/notifications/unsubscribe = %d, want 400", rec.Code)
	}
}

func TestHealthRoute(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", rec.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	e := newTestEcho()
	for _, r := range []struct{ method, path string }{
		{http.MethodPost, "/api/debates"},
		{http.MethodDelete, "/api/photos/x"},
		{http.MethodPost, "/api/notifications/send"},
		{http.MethodGet, "/api/payments/transactions"},
	} {
		req := httptest.NewRequest(r.method, r.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token = %d, want 401", r.method, r.path, rec.Code)
		}
	}
}
