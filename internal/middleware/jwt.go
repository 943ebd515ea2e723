package middleware // reusable HTTP middleware for the API

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/debateclub/debate-club-api/internal/auth"
)

// ContextAdmin is the context key under which AdminAuth stores the
// verified admin username.
const ContextAdmin = "admin"

// AdminAuth returns an Echo middleware that validates the Bearer admin
// token and injects the token's subject into the request context. The
// check is signature + expiry only; no storage is consulted. Handlers
// read the admin identity via c.Get(ContextAdmin).
func AdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			subject, err := auth.VerifyAdminToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
			}
			c.Set(ContextAdmin, subject)
			return next(c)
		}
	}
}
