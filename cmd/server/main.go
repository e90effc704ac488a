package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"cobra/site/internal/cache"
	"cobra/site/internal/config"
	"cobra/site/internal/content"
	"cobra/site/internal/handlers"
	"cobra/site/internal/jobs"
	"cobra/site/internal/log"
	"cobra/site/internal/metrics"
	"cobra/site/internal/security"
	"cobra/site/internal/server"
	"cobra/site/internal/session"
	"cobra/site/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.LogLevel)

	ctx := context.Background()

	var redisClient *redis.Client
	if cfg.Session.Driver == "redis" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
	}

	sessions, sweeper, err := newSessionStore(cfg, redisClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init session store")
	}

	uploads, err := newUploadStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init upload store")
	}

	creds, err := security.NewCredentials(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.PasswordHash)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid admin credentials")
	}
	if !creds.Enabled() {
		logger.Warn().Msg("no admin password configured, /admin is unreachable")
	}
	if cfg.Session.Secret == "cobra-secret" && cfg.Environment == "production" {
		logger.Warn().Msg("SESSION_SECRET not set, using the built-in default")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	handlerSet := handlers.NewHandlerSet(logger, cfg, content.NewStore(cfg.Paths.Data), sessions, uploads, creds)
	httpServer, err := server.NewHTTPServer(cfg, logger, handlerSet, collector)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build http server")
	}

	scheduler := jobs.NewScheduler(cfg.Session.SweepSchedule, sweeper, collector, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, redisClient)
}

// newSessionStore returns the configured store and, for the file driver, the
// sweeper that purges expired records. Redis expires keys on its own.
func newSessionStore(cfg *config.AppConfig, redisClient *redis.Client) (session.Store, jobs.Sweeper, error) {
	opts := []session.Option{session.WithTTL(cfg.Session.TTL)}

	if cfg.Session.Driver == "redis" {
		return session.NewRedisStore(redisClient, cfg.Redis.Prefix, opts...), nil, nil
	}

	store, err := session.NewFileStore(cfg.Session.Dir, opts...)
	if err != nil {
		return nil, nil, err
	}
	return store, store, nil
}

func newUploadStore(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) (storage.UploadStore, error) {
	if cfg.Storage.Driver != "s3" {
		return storage.NewLocalStore(cfg.Paths.Uploads)
	}

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		return nil, err
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Warn().Err(err).Msg("ensure bucket failed")
	}
	return objectStore, nil
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	scheduler.Stop()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
