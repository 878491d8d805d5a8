package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vetdex/internal/config"
	"github.com/kailas-cloud/vetdex/internal/db"
	dbRedis "github.com/kailas-cloud/vetdex/internal/db/redis"
	"github.com/kailas-cloud/vetdex/internal/domain/drug"
	logpkg "github.com/kailas-cloud/vetdex/internal/logger"
	"github.com/kailas-cloud/vetdex/internal/metrics"
	"github.com/kailas-cloud/vetdex/internal/nlp/rules"
	"github.com/kailas-cloud/vetdex/internal/repository/catalog"
	"github.com/kailas-cloud/vetdex/internal/repository/normcache"
	drugrepo "github.com/kailas-cloud/vetdex/internal/repository/drug"
	"github.com/kailas-cloud/vetdex/internal/repository/tabular"
	chiTransport "github.com/kailas-cloud/vetdex/internal/transport/chi"
	"github.com/kailas-cloud/vetdex/internal/transport/morphology"
	"github.com/kailas-cloud/vetdex/internal/usecase/answer"
	compareuc "github.com/kailas-cloud/vetdex/internal/usecase/compare"
	facetuc "github.com/kailas-cloud/vetdex/internal/usecase/facet"
	healthuc "github.com/kailas-cloud/vetdex/internal/usecase/health"
	"github.com/kailas-cloud/vetdex/internal/usecase/interpret"
	searchuc "github.com/kailas-cloud/vetdex/internal/usecase/search"
	"github.com/kailas-cloud/vetdex/internal/version"
)

const normalizerReadiness = 30 * time.Second

// normalizer is what the interpreter and the health check need.
type normalizer interface {
	interpret.Normalizer
	healthuc.Pinger
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting vetdex API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("normalizer", cfg.Normalizer.Driver),
	)

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	ctx := context.Background()

	var store db.Store
	if cfg.Catalog.Source == config.SourceRedis || cfg.Normalizer.Cache {
		store, err = openStore(ctx, &cfg, logger)
		if err != nil {
			logger.Fatal("Database not available", zap.Error(err))
		}
		defer store.Close()
	}

	records, err := loadCatalog(ctx, &cfg, store, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	cat, err := catalog.New(records)
	if err != nil {
		logger.Fatal("Catalog is unusable", zap.Error(err))
	}
	metrics.CatalogRecords.Set(float64(cat.Len()))
	logger.Info("Catalog loaded", zap.Int("records", cat.Len()))

	norm, err := buildNormalizer(ctx, &cfg, logger)
	if err != nil {
		logger.Fatal("Normalizer not available", zap.Error(err))
	}
	if cfg.Normalizer.Cache {
		norm = normcache.New(norm, store, cfg.Database.KeyPrefix, metrics.NormalizerCacheTotal, logger)
		logger.Info("Normalizer cache enabled", zap.String("prefix", cfg.Database.KeyPrefix))
	}

	tables, err := cfg.Keywords.Tables()
	if err != nil {
		logger.Fatal("Invalid keyword tables", zap.Error(err))
	}

	// Create use case services
	interpreter := interpret.New(norm, interpret.Config{
		Keywords:    tables,
		FunctionPOS: cfg.Normalizer.FunctionPOS,
	}, logger)
	searchSvc := searchuc.New(searchuc.Config{
		Threshold:   cfg.Search.Threshold,
		ExactCutoff: cfg.Search.ExactCutoff,
		TopN:        cfg.Search.TopN,
	}, logger)
	selector := facetuc.New(tables.ContraindicationMarkers, logger)
	answerSvc := answer.New(cat, interpreter, searchSvc, selector, logger)
	compareSvc := compareuc.New(cat, logger)

	// Pass nil interface (not typed nil pointer!) when there is no database.
	var dbPinger healthuc.Pinger
	if store != nil {
		dbPinger = store
	}
	healthSvc := healthuc.New(cat, norm, dbPinger)

	// Create chi server
	server := chiTransport.NewServer(answerSvc, compareSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(chiTransport.RateLimitMiddleware(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore connects to Redis/Valkey and waits until it answers.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create database store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database", zap.Strings("addrs", cfg.Database.Addrs))
	return store, nil
}

// loadCatalog reads drug records from the configured source.
func loadCatalog(ctx context.Context, cfg *config.Config, store db.Store, logger *zap.Logger) ([]drug.Record, error) {
	if cfg.Catalog.Source == config.SourceRedis {
		records, err := drugrepo.New(store, cfg.Database.KeyPrefix).Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		return records, nil
	}

	records, report, err := tabular.LoadFile(cfg.Catalog.Path, tabular.Options{
		Separator: []rune(cfg.Catalog.Separator)[0],
		Encoding:  cfg.Catalog.Encoding,
		Sheet:     cfg.Catalog.Sheet,
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Catalog.Path, err)
	}
	logger.Info("Knowledge base file parsed",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("rows", report.Rows),
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped_blank_name", report.SkippedBlankName),
		zap.Strings("ignored_columns", report.IgnoredColumns),
	)
	return records, nil
}

// buildNormalizer picks the normalizer driver. An unreachable morphology
// service is a startup error.
func buildNormalizer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (normalizer, error) {
	if cfg.Normalizer.Driver == config.DriverBuiltin {
		return rules.New(), nil
	}

	timeout := time.Duration(cfg.Normalizer.TimeoutSec) * time.Second
	client, err := morphology.New(morphology.Config{
		BaseURL: cfg.Normalizer.URL,
		Timeout: timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create morphology client: %w", err)
	}
	if err := client.WaitForReady(ctx, normalizerReadiness); err != nil {
		return nil, fmt.Errorf("morphology service at %s: %w", cfg.Normalizer.URL, err)
	}
	logger.Info("Connected to morphology service", zap.String("url", cfg.Normalizer.URL))
	return client, nil
}
