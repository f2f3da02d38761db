package routes

import (
	"net/http"

	"github.com/transparencia-lab/politigraph/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports store reachability and cache entry count. It always
// answers; a broken store yields a degraded payload, not an error.
func HealthHandler(c echo.Context) error {
	ctx := c.Request().Context()
	svc := c.(*middleware.AppContext).App.Network

	health := svc.HealthCheck(ctx)
	status := http.StatusOK
	if health.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, health)
}
