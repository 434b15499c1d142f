package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gradeflow/gradeflow-backend/api/routes"
	"github.com/gradeflow/gradeflow-backend/internal/catalog"
	"github.com/gradeflow/gradeflow-backend/internal/grades"
	"github.com/gradeflow/gradeflow-backend/internal/pricing"
	"github.com/gradeflow/gradeflow-backend/internal/variations"
	"github.com/gradeflow/gradeflow-backend/pkg/config"
	"github.com/gradeflow/gradeflow-backend/pkg/db"
	"github.com/gradeflow/gradeflow-backend/pkg/logger"
	"github.com/gradeflow/gradeflow-backend/pkg/metrics"
	"github.com/gradeflow/gradeflow-backend/pkg/migrate"
	"github.com/gradeflow/gradeflow-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var (
		redisPinger redis.Pinger
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisPinger = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, pricing settings cache disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	engineMetrics := metrics.NewEngineMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	variationService, err := variations.NewService(catalog.NewRepository(dbClient.DB()), engineMetrics, logg)
	if err != nil {
		logg.Error(ctx, "failed to create variation service", err)
		os.Exit(1)
	}

	pricingParams := pricing.ServiceParams{
		Repo:     pricing.NewRepository(dbClient.DB()),
		CacheTTL: cfg.Pricing.SettingsCacheTTL,
		Engine:   pricing.NewEngine(pricing.BootstrapFromConfig(cfg.Pricing)),
		Metrics:  engineMetrics,
		Logger:   logg,
	}
	if redisClient != nil {
		pricingParams.Cache = redisClient
	}
	pricingService, err := pricing.NewService(pricingParams)
	if err != nil {
		logg.Error(ctx, "failed to create pricing service", err)
		os.Exit(1)
	}

	gradeService, err := grades.NewService(grades.ServiceParams{
		Repo:     grades.NewRepository(dbClient.DB()),
		Pricer:   pricingService,
		Defaults: grades.DefaultsFromConfig(cfg.Grades),
		Metrics:  engineMetrics,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create grades service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisPinger,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			httpMetrics,
			variationService,
			gradeService,
			pricingService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
