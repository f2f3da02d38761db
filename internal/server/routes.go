package server

import (
	"github.com/transparencia-lab/politigraph/backend/internal/server/middleware"
	"github.com/transparencia-lab/politigraph/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", routes.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apiRoutes := e.Group("/api")

	// Entity list routes
	apiRoutes.GET("/politicians", routes.GetPoliticiansHandler)
	apiRoutes.GET("/parties", routes.GetPartiesHandler)
	apiRoutes.GET("/companies", routes.GetCompaniesHandler)
	apiRoutes.GET("/sanctions", routes.GetSanctionsHandler)

	// Graph routes
	apiRoutes.GET("/connections", routes.GetConnectionsHandler)
	apiRoutes.GET("/network", routes.GetNetworkSnapshotHandler)
	apiRoutes.GET("/stats", routes.GetStatsHandler)

	// Administrative routes
	adminRoutes := apiRoutes.Group("/admin", middleware.RequireMasterKey)
	adminRoutes.POST("/invalidate", routes.PostInvalidateHandler)
	adminRoutes.POST("/export", routes.PostExportHandler)
}
