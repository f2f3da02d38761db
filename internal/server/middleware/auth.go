package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireMasterKey guards administrative routes with the master API key.
// Authentication proper is handled upstream; this only protects cache
// invalidation and export from untrusted callers.
func RequireMasterKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		app := c.(*AppContext).App
		key := c.Request().Header.Get("X-API-Key")
		if app.MasterAPIKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(app.MasterAPIKey)) != 1 {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		return next(c)
	}
}
