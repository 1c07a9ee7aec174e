package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"sheet-gateway-backend/internal/common/config"
	"sheet-gateway-backend/internal/common/logger"
	"sheet-gateway-backend/internal/platform/lock"
	"sheet-gateway-backend/internal/platform/redis"
	"sheet-gateway-backend/internal/platform/sheets"
	"sheet-gateway-backend/internal/platform/store"
)

const serviceName = "sheet-gateway-backend"

// @title           Sheet Gateway API
// @version         1.0
// @description     Spreadsheet backed record store with key quotas.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey AdminToken
// @in header
// @name X-Admin-Token
// @description Operator token, required by routes that rewrite or reset tables

// @tag.name records
// @tag.description Batch writes, user activity and device registry

// @tag.name keys
// @tag.description Key validation, quotas and per-user key status

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(serviceName, false)
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(serviceName, cfg.Debug)

	logger.Info().
		Str("store", cfg.Store.Backend).
		Str("lock", cfg.Lock.Backend).
		Msg("Starting sheet gateway")

	ctx := context.Background()

	var rdb *goredis.Client
	if cfg.NeedsRedis() {
		rdb, err = redis.Open(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		logger.Info().Str("addr", cfg.RedisAddr()).Msg("Redis connection established")
	}

	backend, err := newBackend(ctx, cfg, rdb)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize store")
	}
	st := store.NewRetrying(store.NewInstrumented(backend), store.RetryOptions{
		Timeout:    cfg.Store.CallTimeout,
		MaxRetries: cfg.Store.MaxRetries,
	})

	router := newRouter(cfg, st, newLocker(cfg, rdb), readiness(rdb))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func newBackend(ctx context.Context, cfg *config.Config, rdb *goredis.Client) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendSheets:
		return sheets.New(ctx, cfg.Store.SpreadsheetID, cfg.Store.CredentialsFile)
	case config.StoreBackendRedis:
		return store.NewRedisStore(rdb), nil
	case config.StoreBackendMemory:
		logger.Warn().Msg("Using the in-memory store, data is lost on restart")
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func newLocker(cfg *config.Config, rdb *goredis.Client) lock.Locker {
	if cfg.Lock.Backend == config.LockBackendRedis {
		return lock.NewRedisLocker(rdb, cfg.Lock.TTL, cfg.Lock.WaitTimeout)
	}
	return lock.NewLocalLocker(cfg.Lock.WaitTimeout)
}

// readiness checks the dependencies the process cannot serve without.
func readiness(rdb *goredis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if rdb == nil {
			return nil
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis unavailable: %w", err)
		}
		return nil
	}
}
