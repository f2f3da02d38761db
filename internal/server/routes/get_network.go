package routes

import (
	"net/http"
	"time"

	"github.com/transparencia-lab/politigraph/backend/internal/server/middleware"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GetConnectionsHandler returns the full derived edge set. No pagination;
// the per-category caps bound the payload.
func GetConnectionsHandler(c echo.Context) error {
	start := time.Now()

	ctx := c.Request().Context()
	svc := c.(*middleware.AppContext).App.Network

	connections, err := svc.ListConnections(ctx)
	if err != nil {
		logger.Error("[Routes] Failed to build connections", "err", err)
		return fail(c, start, http.StatusInternalServerError, "Failed to build connections")
	}

	return okCount(c, start, connections, len(connections.Edges))
}

// GetNetworkSnapshotHandler returns the complete nodes/edges/stats graph.
func GetNetworkSnapshotHandler(c echo.Context) error {
	start := time.Now()

	ctx := c.Request().Context()
	svc := c.(*middleware.AppContext).App.Network

	snapshot, err := svc.GetNetworkSnapshot(ctx)
	if err != nil {
		logger.Error("[Routes] Failed to build network snapshot", "err", err)
		return fail(c, start, http.StatusInternalServerError, "Failed to build network snapshot")
	}

	return okCount(c, start, snapshot, snapshot.Stats.TotalNodes)
}

// GetStatsHandler returns store-wide per-kind totals and the last-build
// timestamp.
func GetStatsHandler(c echo.Context) error {
	start := time.Now()

	ctx := c.Request().Context()
	svc := c.(*middleware.AppContext).App.Network

	stats, err := svc.GetStats(ctx)
	if err != nil {
		logger.Error("[Routes] Failed to read stats", "err", err)
		return fail(c, start, http.StatusInternalServerError, "Failed to read stats")
	}

	return ok(c, start, stats)
}
