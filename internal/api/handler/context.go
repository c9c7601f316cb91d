package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUsername extracts the identity injected by the Auth middleware and
// fast-fails when a handler is reached without it (route wired without the
// middleware, or a middleware bug).
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusForbidden, "authentication required")
	}
	return username, nil
}
