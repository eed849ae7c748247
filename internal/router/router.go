package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/vidpulse/vidpulse-go/internal/handler"
	"github.com/vidpulse/vidpulse-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Trending *handler.TrendingHandler
	Stats    *handler.StatsHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (outside the API group, no rate limits)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	api.Get("/trending", h.Trending.GetTrending, middleware.NewTrendingRateLimiter().Handler())
	api.Get("/trending/insights", h.Trending.GetInsights, middleware.NewInsightsRateLimiter().Handler())
	api.Get("/stats", h.Stats.GetStats, middleware.NewStatsRateLimiter().Handler())
}
