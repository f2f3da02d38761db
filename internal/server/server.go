package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/transparencia-lab/politigraph/backend/internal/queue"
	mid "github.com/transparencia-lab/politigraph/backend/internal/server/middleware"
	"github.com/transparencia-lab/politigraph/backend/internal/storage"
	"github.com/transparencia-lab/politigraph/backend/internal/util"
	"github.com/transparencia-lab/politigraph/backend/pkg/cache"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger"
	"github.com/transparencia-lab/politigraph/backend/pkg/network"
	pgxstore "github.com/transparencia-lab/politigraph/backend/pkg/store/pgx"

	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := pgxpool.New(ctx, util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	cacheService := cache.NewService(cache.ServiceConfig{
		DefaultTTL:      time.Duration(util.GetEnvNumeric("CACHE_DEFAULT_TTL_MIN", 5)) * time.Minute,
		CleanupInterval: time.Duration(util.GetEnvNumeric("CACHE_CLEANUP_INTERVAL_MIN", 1)) * time.Minute,
	})
	defer cacheService.Close()

	networkService := network.NewService(pgxstore.NewStorage(conn), cacheService)

	que := queue.Init()
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	if err := queue.SetupQueues(ch); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}
	if err := queue.StartRefreshConsumer(ctx, ch, networkService); err != nil {
		logger.Fatal("Failed to start refresh consumer", "err", err)
	}

	s3 := storage.NewS3Client(ctx)

	app := &mid.App{
		Cache:        cacheService,
		Network:      networkService,
		S3:           s3,
		MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
