package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a missing role or user id means the
// middleware did not run, which is a wiring bug surfaced as 401 rather than
// a panic further down.
func ctxIdentity(c echo.Context) (userID int, role string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, ok := c.Get("user_id").(int)
	if !ok || userID <= 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
	}

	return userID, role, nil
}
