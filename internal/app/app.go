package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/acadeval/report-server/internal/chart"
	"github.com/acadeval/report-server/internal/config"
	"github.com/acadeval/report-server/internal/dataset"
	"github.com/acadeval/report-server/internal/pdf"
	"github.com/acadeval/report-server/internal/report"
	"github.com/acadeval/report-server/internal/repository"
	"github.com/acadeval/report-server/internal/service"
	"github.com/acadeval/report-server/internal/session"
	"github.com/acadeval/report-server/internal/web"
	"github.com/acadeval/report-server/pkg/cache"
	dbbuilder "github.com/acadeval/report-server/pkg/database"
	"github.com/acadeval/report-server/pkg/webserver"
)

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      *cache.Cache
	httpServer *webserver.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
	)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	userRepo := repository.NewUserRepository(dbPool)
	if err := userRepo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("user table migration failed: %w", err)
	}

	authService := service.NewAuthService(userRepo, logger)
	if err := authService.EnsureBootstrapAdmin(ctx, cfg.BootstrapAdminPass); err != nil {
		return nil, fmt.Errorf("bootstrap admin setup failed: %w", err)
	}

	sessions := session.NewStore(cacheClient, cfg.SessionTTL, logger)

	sheetFetcher := dataset.NewFetcher(
		&http.Client{Timeout: cfg.FetchTimeout},
		cacheClient,
		cfg.SheetCacheTTL,
		logger,
	)

	rasterizer := pdf.NewRasterizer(cfg.ChromePath, logger)
	composer := report.NewComposer(rasterizer, logger)

	handlers := web.NewHandlers(
		authService,
		sessions,
		sheetFetcher,
		chart.NewRenderer(),
		composer,
		logger,
		cfg.SessionTTL,
		cfg.FetchTimeout,
	)

	httpServer, err := webserver.New(
		webserver.WithPort(cfg.HTTPPort),
		webserver.WithLogger(logger),
		webserver.WithLogging(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP server: %w", err)
	}

	httpServer.RegisterRoutes(func(e *echo.Echo) {
		handlers.Register(e)
	})

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		httpServer: httpServer,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.httpServer.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	if ctx.Err() == context.DeadlineExceeded {
		a.logger.Warn("shutdown completed but deadline exceeded")
	} else {
		a.logger.Info("graceful shutdown completed successfully")
	}

	_ = a.logger.Sync()
	return nil
}
