package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/debateclub/debate-club-api/internal/config"
	"github.com/debateclub/debate-club-api/internal/metrics"
)

func newAuthHandler() *AuthHandler {
	cfg := config.Config{
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "s3cret",
		AccessTTLMin:  30,
	}
	return NewAuthHandler(cfg, nil, metrics.NewCollector(prometheus.NewRegistry()))
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminLoginSuccess(t *testing.T) {
	h := newAuthHandler()
	e := echo.New()
	c, rec := postJSON(e, "/api/admin/login", `{"username":"admin","password":"s3cret"}`)

	if err := h.AdminLogin(c); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"access_token"`) || !strings.Contains(body, `"token_type":"bearer"`) {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	h := newAuthHandler()
	e := echo.New()
	c, rec := postJSON(e, "/api/admin/login", `{"username":"admin","password":"wrong"}`)

	if err := h.AdminLogin(c); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAdminLoginMalformedBody(t *testing.T) {
	h := newAuthHandler()
	e := echo.New()
	c, rec := postJSON(e, "/api/admin/login", `{not json`)

	if err := h.AdminLogin(c); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOAuthCallbackMissingSessionID(t *testing.T) {
	h := newAuthHandler()
	e := echo.New()
	c, rec := postJSON(e, "/api/auth/callback", "")

	if err := h.OAuthCallback(c); err != nil {
		t.Fatalf("OAuthCallback: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
