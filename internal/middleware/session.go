package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/debateclub/debate-club-api/internal/auth"
	"github.com/debateclub/debate-club-api/internal/metrics"
)

// SessionCookieName is the cookie carrying the member session token.
const SessionCookieName = "session_token"

// ContextUser is the context key under which SessionAuth stores the
// resolved *model.User.
const ContextUser = "user"

// SessionAuth returns an Echo middleware that resolves the current member
// from the session cookie, falling back to a bearer Authorization header.
// All auth failures answer 401; store faults answer 500.
func SessionAuth(svc *auth.Service, collector *metrics.Collector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookieValue := ""
			if ck, err := c.Cookie(SessionCookieName); err == nil {
				cookieValue = ck.Value
			}
			headerValue := ""
			if h := c.Request().Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				headerValue = strings.TrimPrefix(h, "Bearer ")
			}

			u, err := svc.AuthenticateBySession(c.Request().Context(), cookieValue, headerValue)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrUnauthenticated):
					collector.RecordSessionAuth("denied")
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
				case errors.Is(err, auth.ErrSessionExpired):
					collector.RecordSessionAuth("expired")
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
				case errors.Is(err, auth.ErrUserNotFound):
					collector.RecordSessionAuth("denied")
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
				default:
					collector.RecordSessionAuth("error")
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "authentication failed"})
				}
			}
			collector.RecordSessionAuth("ok")
			c.Set(ContextUser, u)
			return next(c)
		}
	}
}
