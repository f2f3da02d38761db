package middleware

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"

	"github.com/transparencia-lab/politigraph/backend/pkg/cache"
	"github.com/transparencia-lab/politigraph/backend/pkg/network"
)

// App carries the shared process-wide handles every handler needs. The pool
// and queue channel stay inside server.Init; handlers reach the store through
// the network service only.
type App struct {
	Cache        *cache.Service
	Network      *network.Service
	S3           *s3.Client
	MasterAPIKey string
}

// AppContext wraps the echo context with the application handles.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware injects the App into every request context.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}
