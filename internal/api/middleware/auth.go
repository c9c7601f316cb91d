package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulsefeed/content-service/internal/api/metrics"
	"github.com/pulsefeed/content-service/internal/core/domain"
	"github.com/pulsefeed/content-service/internal/core/ports"
)

// SessionCookie is the cookie carrying the raw session token.
const SessionCookie = "auth_token"

// Auth resolves the session cookie to an identity and injects the username
// into context. Missing, tampered, or expired tokens are rejected with 403;
// a stale cookie is expired on the way out so clients stop presenting it.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				metrics.SessionResolutionsTotal.WithLabelValues("denied").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "authentication required")
			}

			user, err := auth.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				metrics.SessionResolutionsTotal.WithLabelValues("denied").Inc()
				if errors.Is(err, domain.ErrSessionNotFound) {
					ExpireSessionCookie(c)
					return echo.NewHTTPError(http.StatusForbidden, "invalid session")
				}
				return err
			}

			metrics.SessionResolutionsTotal.WithLabelValues("ok").Inc()
			c.Set("username", user.Username)
			return next(c)
		}
	}
}

// ExpireSessionCookie instructs the client to drop its session cookie.
func ExpireSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
