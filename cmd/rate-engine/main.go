// cmd/rate-engine/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rate-engine/internal/auth"
	"rate-engine/internal/carriers"
	"rate-engine/internal/carriers/daylight"
	"rate-engine/internal/carriers/stg"
	"rate-engine/internal/carriers/teamww"
	"rate-engine/internal/common/config"
	"rate-engine/internal/common/database"
	"rate-engine/internal/common/errors"
	"rate-engine/internal/common/logger"
	"rate-engine/internal/common/observability"
	"rate-engine/internal/configstore"
	"rate-engine/internal/models"
	"rate-engine/internal/orchestrator"
	"rate-engine/internal/quotes"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting rate engine...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	needsRedis := cfg.Store.CarrierConfigs == "redis" || cfg.Store.QuoteRequests == "redis"
	needsPostgres := cfg.Store.CarrierConfigs == "postgres"

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	if needsRedis {
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			// Test the connection with context
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	if needsPostgres {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			// Test the connection with context
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Store backends ---
	var configs configstore.Store
	switch cfg.Store.CarrierConfigs {
	case "postgres":
		configs = configstore.NewPostgresStore(pg.DB)
	case "redis":
		configs = configstore.NewRedisStore(redis.Client)
	default:
		configs = configstore.NewMemoryStore()
	}

	var records quotes.RecordStore
	switch cfg.Store.QuoteRequests {
	case "redis":
		records = quotes.NewRedisRecordStore(redis.Client, time.Duration(cfg.Engine.RecordTTL)*time.Second)
	default:
		records = quotes.NewMemoryRecordStore()
	}

	zapLog.Info("Store backends initialized",
		zap.String("carrierConfigs", cfg.Store.CarrierConfigs),
		zap.String("quoteRequests", cfg.Store.QuoteRequests),
	)

	// --- Register carrier adapters ---
	tokens := auth.NewTokenCache()
	registry := carriers.NewRegistry()
	registry.Register(stg.NewAdapter(config.GetCarrierAPI(cfg, models.CarrierSTG), tokens, log))
	registry.Register(daylight.NewAdapter(config.GetCarrierAPI(cfg, models.CarrierDaylight), tokens, log))
	registry.Register(teamww.NewAdapter(config.GetCarrierAPI(cfg, models.CarrierTeamWW), log))
	zapLog.Info("Carrier adapters registered", zap.Strings("carriers", registry.IDs()))

	// --- Engine ---
	orch := orchestrator.New(registry, configs, config.GetDuration(cfg.Engine.CarrierTimeout), log, obs)
	engine := quotes.NewEngine(orch, configs, records, log)

	server := newServer(orch, engine, errors.NewErrorHandler(log), log)

	// --- Health & Metrics Server ---
	go func() {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		addr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
		zapLog.Info("Health/Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, metricsMux); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- API Server ---
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * config.GetDuration(cfg.Engine.CarrierTimeout),
	}

	go func() {
		zapLog.Info("API server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down API server", zap.Error(err))
	}

	// Let in-flight async fan-outs write their final records.
	engine.Wait()

	zapLog.Info("Rate engine stopped gracefully")
}
