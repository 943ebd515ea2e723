package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/debateclub/debate-club-api/internal/auth"
)

const testSecret = "mw-test-secret"

var testCreds = auth.AdminCredentials{Username: "admin", Password: "pw"}

func runAdminAuth(t *testing.T, authz string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	if err := AdminAuth(testSecret)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return rec, c, called
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	tok, err := auth.IssueAdminToken(testSecret, testCreds, "admin", "pw", 30)
	if err != nil {
		t.Fatal(err)
	}
	rec, c, called := runAdminAuth(t, "Bearer "+tok.Token)
	if !called {
		t.Fatalf("next not called, status %d body %s", rec.Code, rec.Body.String())
	}
	if got, _ := c.Get(ContextAdmin).(string); got != "admin" {
		t.Fatalf("context admin = %q, want admin", got)
	}
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	rec, _, called := runAdminAuth(t, "")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("called=%v status=%d, want 401 without next", called, rec.Code)
	}
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	tok, err := auth.IssueAdminToken(testSecret, testCreds, "admin", "pw", -1)
	if err != nil {
		t.Fatal(err)
	}
	rec, _, called := runAdminAuth(t, "Bearer "+tok.Token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("called=%v status=%d, want 401 without next", called, rec.Code)
	}
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	tok, err := auth.IssueAdminToken("other-secret", testCreds, "admin", "pw", 30)
	if err != nil {
		t.Fatal(err)
	}
	rec, _, called := runAdminAuth(t, "Bearer "+tok.Token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("called=%v status=%d, want 401 without next", called, rec.Code)
	}
}

func TestAdminAuthRejectsNonBearer(t *testing.T) {
	rec, _, called := runAdminAuth(t, "Basic abc123")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("called=%v status=%d, want 401 without next", called, rec.Code)
	}
}
