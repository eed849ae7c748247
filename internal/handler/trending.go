package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/vidpulse/vidpulse-go/internal/middleware"
	"github.com/vidpulse/vidpulse-go/internal/service"
)

type TrendingHandler struct {
	svc *service.TrendingService
}

func NewTrendingHandler(svc *service.TrendingService) *TrendingHandler {
	return &TrendingHandler{svc: svc}
}

// GetTrending handles GET /api/trending?category=&period=&limit=&includeInsights=
func (h *TrendingHandler) GetTrending(c fiber.Ctx) error {
	category, errMsg := middleware.ValidateCategory(fiber.Query[string](c, "category"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CATEGORY", errMsg)
	}

	period, errMsg := middleware.ValidatePeriod(fiber.Query[string](c, "period"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PERIOD", errMsg)
	}

	limit := middleware.ValidateLimit(fiber.Query[string](c, "limit"))
	includeInsights := fiber.Query[bool](c, "includeInsights")

	start := time.Now()
	result, err := h.svc.GetTrending(c.Context(), category, period, limit, includeInsights)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute trending list")
	}

	if result.CacheHit {
		Metrics.CacheHits.Inc()
	} else {
		Metrics.CacheMisses.Inc()
		Metrics.RankingDuration.Observe(time.Since(start).Seconds())
	}

	return c.JSON(result.Response)
}

// GetInsights handles GET /api/trending/insights
func (h *TrendingHandler) GetInsights(c fiber.Ctx) error {
	result, err := h.svc.GetInsights(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute insights")
	}

	if result.CacheHit {
		Metrics.CacheHits.Inc()
	} else {
		Metrics.CacheMisses.Inc()
	}

	return c.JSON(result.Insights)
}
