package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v3"
	dotenv "github.com/joho/godotenv"

	"github.com/nischal-shetty2/DSAStats/internal/cache"
	"github.com/nischal-shetty2/DSAStats/internal/config"
	"github.com/nischal-shetty2/DSAStats/internal/db"
	"github.com/nischal-shetty2/DSAStats/internal/handler"
	"github.com/nischal-shetty2/DSAStats/internal/middleware"
	"github.com/nischal-shetty2/DSAStats/internal/platform"
	"github.com/nischal-shetty2/DSAStats/internal/repository"
	"github.com/nischal-shetty2/DSAStats/internal/router"
	"github.com/nischal-shetty2/DSAStats/internal/service"
	"github.com/nischal-shetty2/DSAStats/pkg/token"
)

func main() {
	dotenvErr := dotenv.Load()

	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "dsastats-api")
	if dotenvErr != nil {
		// Not an error in production; env vars are set directly there.
		middleware.Logger.Debug().Msg("no .env file loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		middleware.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		middleware.Logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	middleware.RegisterMetrics(pool)

	// Cache: Redis when configured, in-memory otherwise.
	redisStore := cache.NewRedis(cfg.RedisURL)
	var store cache.Store
	if redisStore != nil {
		store = redisStore
		defer redisStore.Close()
	} else {
		store = cache.NewMemory(nil)
	}

	// Core wiring
	upstreamClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	registry := platform.NewRegistry(upstreamClient, cfg)

	users := repository.NewUserRepo(pool)
	leaderboard := repository.NewLeaderboardRepo(pool)

	snapshots := service.NewSnapshotWorker(users)
	go snapshots.Start(ctx)

	aggregator := service.NewAggregator(registry, store, cfg.CacheTTL, snapshots)
	verifier := service.NewVerifier(registry)
	ranker := service.NewLeaderboardService(leaderboard)
	refresher := service.NewRefreshService(users, aggregator)

	// Periodic leaderboard snapshot refresh
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		middleware.Logger.Fatal().Err(err).Msg("failed to create scheduler")
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.SnapshotInterval),
		gocron.NewTask(refresher.RefreshAll, ctx),
	)
	if err != nil {
		middleware.Logger.Fatal().Err(err).Msg("failed to schedule snapshot refresh")
	}
	scheduler.Start()
	defer scheduler.Shutdown()

	issuer := token.NewIssuer(cfg.JWTSecret, token.DefaultTTL)

	app := fiber.New(fiber.Config{
		AppName:      "DSAStats API",
		ServerHeader: "DSAStats",
	})

	router.Setup(app, &router.Handlers{
		User:        handler.NewUserHandler(users, verifier, issuer),
		Platform:    handler.NewPlatformHandler(users, aggregator, upstreamClient),
		Leaderboard: handler.NewLeaderboardHandler(ranker, users, issuer),
		Health:      handler.NewHealthHandler(pool, redisStore.Client()),
	}, issuer, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		middleware.Logger.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	middleware.Logger.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Msg("dsastats backend starting")

	if err := app.Listen(":" + cfg.Port); err != nil {
		middleware.Logger.Fatal().Err(err).Msg("server exited")
	}
}
