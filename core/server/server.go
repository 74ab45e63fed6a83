package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"dingdong-api/core/cache"
	"dingdong-api/core/config"
	"dingdong-api/core/database"
	"dingdong-api/core/logger"
	"dingdong-api/core/metrics"
	"dingdong-api/core/middleware"
	"dingdong-api/core/storage"
	"dingdong-api/core/worker"
	"dingdong-api/modules/auth"
	"dingdong-api/modules/chat"
	"dingdong-api/modules/project"
	"dingdong-api/modules/user"
	"dingdong-api/modules/workspace"
)

const shutdownTimeout = 10 * time.Second

// Run wires every component, starts the HTTP server and the task worker, and
// blocks until a termination signal arrives.
func Run() error {
	cfg := config.Load()
	logger.Init(cfg.App.Env == "development")

	if err := database.RunMigrations(database.MigrationURL(cfg.Database)); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	redisCache, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis init failed: %w", err)
	}
	defer redisCache.Close()

	store, err := storage.NewStorage(cfg.S3)
	if err != nil {
		return fmt.Errorf("storage init failed: %w", err)
	}

	workerClient := worker.NewClient(cfg.Redis)
	defer workerClient.Close()

	workerServer := worker.NewServer(cfg)
	workerServer.Start()
	defer workerServer.Shutdown()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(metrics.Middleware())

	prometheus.MustRegister(metrics.NewStatsCollector(&statsSource{db: db}))

	e.GET("/health", func(c echo.Context) error {
		if err := redisCache.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "down"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", metrics.Handler())

	mw := middleware.NewMiddleware()

	// auth and workspace first, user and project reach into them
	auth.Init(e, redisCache, workerClient, mw)
	user.Init(e, db, mw)
	workspace.Init(e, db, mw)
	project.Init(e, db, store, mw)
	chat.Init(e, redisCache, mw)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", err)
		}
	}()
	logger.Info("server started", "port", cfg.App.Port, "env", cfg.App.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}
