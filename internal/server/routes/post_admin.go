package routes

import (
	"net/http"
	"time"

	"github.com/transparencia-lab/politigraph/backend/internal/server/middleware"
	"github.com/transparencia-lab/politigraph/backend/internal/storage"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PostInvalidateHandler clears every cached entry. Used for administrative
// refresh after the ingestion pipeline reloads the store.
func PostInvalidateHandler(c echo.Context) error {
	start := time.Now()

	svc := c.(*middleware.AppContext).App.Network
	svc.InvalidateAll()

	return ok(c, start, map[string]string{"message": "Cache flushed"})
}

// PostExportHandler builds the current network snapshot and archives it as
// JSON in the configured S3 bucket.
func PostExportHandler(c echo.Context) error {
	start := time.Now()

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	snapshot, err := app.Network.GetNetworkSnapshot(ctx)
	if err != nil {
		logger.Error("[Routes] Failed to build snapshot for export", "err", err)
		return fail(c, start, http.StatusInternalServerError, "Failed to build snapshot for export")
	}

	key, err := storage.PutSnapshot(ctx, app.S3, snapshot)
	if err != nil {
		logger.Error("[Routes] Failed to export snapshot", "err", err)
		return fail(c, start, http.StatusInternalServerError, "Failed to export snapshot")
	}

	return ok(c, start, map[string]string{"key": key})
}
