package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hakwonhub/dashboard-gateway/internal/api"
	"github.com/hakwonhub/dashboard-gateway/internal/core/service"
	"github.com/hakwonhub/dashboard-gateway/internal/infrastructure/config"
	mongodb "github.com/hakwonhub/dashboard-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/hakwonhub/dashboard-gateway/internal/infrastructure/db/redis"
	"github.com/hakwonhub/dashboard-gateway/internal/infrastructure/queue"
	"github.com/hakwonhub/dashboard-gateway/internal/infrastructure/upstream"
	"github.com/hakwonhub/dashboard-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Core wiring ---
	sessionStore := redisdb.NewSessionStore(rdb, cfg.Session.TTL)
	lookupCache := redisdb.NewLookupCache(rdb, 0)
	gate := service.NewSessionService(sessionStore, log)

	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	roster := service.NewRosterService(client, lookupCache, log)

	auditRepo := mongodb.NewAuditRepository(db)
	dispatcher := queue.NewDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Gate:         gate,
		Roster:       roster,
		Upstream:     client,
		Audit:        dispatcher,
		AuditRepo:    auditRepo,
		Mongo:        db,
		Redis:        rdb,
		Log:          log,
		CookieSecure: cfg.Session.CookieSecure,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("upstream", cfg.Upstream.BaseURL).Msg("dashboard gateway listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
