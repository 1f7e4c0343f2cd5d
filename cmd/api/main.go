package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/openclinic/clinic-ops/internal/api/router"
	appconfig "github.com/openclinic/clinic-ops/internal/config"
	"github.com/openclinic/clinic-ops/internal/http/handlers"
	"github.com/openclinic/clinic-ops/internal/kpi"
	"github.com/openclinic/clinic-ops/internal/observability/metrics"
	"github.com/openclinic/clinic-ops/internal/results"
	"github.com/openclinic/clinic-ops/internal/triage"
	"github.com/openclinic/clinic-ops/pkg/logging"
)

func main() {
	// .env is a local development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic-ops API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	if err := db.PingContext(context.Background()); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	// Triage engine: rule catalog from file when configured, built-in otherwise.
	catalog := triage.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = triage.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			logger.Error("failed to load triage catalog", "path", cfg.CatalogPath, "error", err)
			os.Exit(1)
		}
		logger.Info("loaded triage catalog", "path", cfg.CatalogPath, "panels", len(catalog.Panels()))
	}
	engine := triage.NewEngine(catalog, triage.NewImagingClassifier(cfg.NormalImagingPhrases))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	triageMetrics := metrics.NewTriageMetrics(registry)

	repo := results.NewRepository(db, logger)
	service := results.NewService(repo, engine, cfg.SLATable(), triageMetrics, logger)

	// Redis backs the dashboard rollup cache. The dashboard degrades to
	// recomputing on every request if Redis is unreachable.
	redisOpts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() { _ = redisClient.Close() }()

	var kpiCache *kpi.Cache
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unreachable, dashboard cache disabled", "addr", cfg.RedisAddr, "error", err)
	} else {
		kpiCache = kpi.NewCache(redisClient, cfg.KPICacheTTL)
	}

	resultsHandler := handlers.NewResultsHandler(repo, service, logger)
	dashboardHandler := handlers.NewDashboardHandler(service, kpiCache, cfg.SLATable(), logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ResultsHandler:     resultsHandler,
		DashboardHandler:   dashboardHandler,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
