package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/debateclub/debate-club-api/internal/auth"
	"github.com/debateclub/debate-club-api/internal/config"
	"github.com/debateclub/debate-club-api/internal/metrics"
	"github.com/debateclub/debate-club-api/internal/middleware"
	"github.com/debateclub/debate-club-api/internal/model"
)

// AuthHandler bundles dependencies for both authentication surfaces: the
// admin token issuer and the member session flow.
type AuthHandler struct {
	Cfg      config.Config
	Sessions *auth.Service
	Metrics  *metrics.Collector
}

func NewAuthHandler(cfg config.Config, sessions *auth.Service, m *metrics.Collector) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Sessions: sessions, Metrics: m}
}

// ----- DTOs -----

type adminLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type profileResp struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// AdminLogin handles POST /api/admin/login. On a credential match it
// mints a 30-minute bearer token; there is no persistence or audit log.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	creds := auth.AdminCredentials{
		Username: h.Cfg.AdminUsername,
		Password: h.Cfg.AdminPassword,
		Hash:     h.Cfg.AdminPassHash,
	}
	tok, err := auth.IssueAdminToken(h.Cfg.JWTSecret, creds, req.Username, req.Password, h.Cfg.AccessTTLMin)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.Metrics.RecordAdminLogin("denied")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	h.Metrics.RecordAdminLogin("ok")
	return c.JSON(http.StatusOK, tokenResp{AccessToken: tok.Token, TokenType: "bearer"})
}

// OAuthCallback handles POST /api/auth/callback?session_id=<id>. It
// exchanges the external session id for a verified identity, provisions
// the user on first login, installs the new session and sets the
// session cookie.
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	sessionID := strings.TrimSpace(c.QueryParam("session_id"))
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id is required"})
	}

	u, sess, err := h.Sessions.CompleteOAuthLogin(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, auth.ErrUpstreamAuth) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session"})
		}
		c.Logger().Errorf("oauth login failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	c.SetCookie(h.sessionCookie(sess.SessionToken, int(h.Sessions.TTL()/time.Second)))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"user":    echo.Map{"name": u.Name, "email": u.Email},
	})
}

// Profile handles GET /api/auth/profile behind the session middleware.
func (h *AuthHandler) Profile(c echo.Context) error {
	u, ok := c.Get(middleware.ContextUser).(*model.User)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	return c.JSON(http.StatusOK, profileResp{ID: u.ID, Email: u.Email, Name: u.Name, Picture: u.Picture})
}

// Logout handles POST /api/auth/logout. Deleting an unknown token is a
// no-op; the response clears the cookie either way.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := ""
	if ck, err := c.Cookie(middleware.SessionCookieName); err == nil {
		token = ck.Value
	}
	if err := h.Sessions.Logout(c.Request().Context(), token); err != nil {
		c.Logger().Errorf("logout failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// sessionCookie builds the session cookie. SameSite=None + Secure lets
// the SPA on another origin send it on API calls.
func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
