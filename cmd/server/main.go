package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/vidpulse/vidpulse-go/internal/config"
	"github.com/vidpulse/vidpulse-go/internal/db"
	"github.com/vidpulse/vidpulse-go/internal/handler"
	"github.com/vidpulse/vidpulse-go/internal/middleware"
	"github.com/vidpulse/vidpulse-go/internal/repository"
	"github.com/vidpulse/vidpulse-go/internal/router"
	"github.com/vidpulse/vidpulse-go/internal/service"
	"github.com/vidpulse/vidpulse-go/internal/trending"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "vidpulse-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	videoRepo := repository.NewVideoRepo(pool)
	engine := trending.NewEngine(trending.DefaultConfig())
	trendingSvc := service.NewTrendingService(videoRepo, engine, cache)

	handler.InitMetrics(pool)

	// Background workers
	refreshWorker := service.NewRefreshWorker(pool, cache)
	go refreshWorker.Start(ctx)

	warmupWorker := service.NewWarmupWorker(trendingSvc, cfg.WarmInterval)
	go warmupWorker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "VidPulse API",
		ServerHeader: "VidPulse",
	})

	h := &router.Handlers{
		Trending: handler.NewTrendingHandler(trendingSvc),
		Stats:    handler.NewStatsHandler(trendingSvc),
		Health:   handler.NewHealthHandler(pool, cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		warmupWorker.Stop()
		_ = app.Shutdown()
	}()

	log.Printf("VidPulse backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
