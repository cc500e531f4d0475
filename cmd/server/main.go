package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/indicators-dashboard-go/internal/api"
	"github.com/jengzang/indicators-dashboard-go/internal/catalog"
	"github.com/jengzang/indicators-dashboard-go/internal/client"
	"github.com/jengzang/indicators-dashboard-go/internal/config"
	"github.com/jengzang/indicators-dashboard-go/internal/database"
	"github.com/jengzang/indicators-dashboard-go/internal/handler"
	"github.com/jengzang/indicators-dashboard-go/internal/logger"
	"github.com/jengzang/indicators-dashboard-go/internal/middleware"
	"github.com/jengzang/indicators-dashboard-go/internal/repository"
	"github.com/jengzang/indicators-dashboard-go/internal/service"
)

func main() {
	if err := run(); err != nil {
		if config.IsHelp(err) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.ParseFlags(cfg, os.Args[1:]); err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)
	if log.Enabled(context.Background(), slog.LevelDebug) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	cat, closeDB, err := loadCatalog(cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	upstream, err := client.New(client.Config{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.RequestTimeout,
		UserAgent: "indicators-dashboard",
	}, client.WithLogger(log))
	if err != nil {
		return err
	}

	dash := service.NewDashboardService(cat, upstream, cfg.ViewTTL, log)
	defer dash.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	// 初始化路由
	router := api.SetupRouter(api.Handlers{
		Indicators: handler.NewIndicatorHandler(cat),
		Options:    handler.NewOptionsHandler(service.NewOptionsService(upstream)),
		Views:      handler.NewViewHandler(dash),
	}, limiter, log)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.Port, "upstream", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// loadCatalog reads the catalog from SQLite when DB_PATH is set, otherwise
// it uses the builtin definitions
func loadCatalog(cfg *config.Config, log *slog.Logger) (*catalog.Catalog, func(), error) {
	if cfg.DBPath == "" {
		cat, err := service.LoadCatalog(nil, log)
		return cat, func() {}, err
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath}, log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database", "error", err)
		}
	}

	if err := migrate(db, log); err != nil {
		closeDB()
		return nil, nil, err
	}

	cat, err := service.LoadCatalog(repository.NewIndicatorRepository(db), log)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return cat, closeDB, nil
}

func migrate(db *sql.DB, log *slog.Logger) error {
	if err := database.NewMigrationManager(db, log).RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
