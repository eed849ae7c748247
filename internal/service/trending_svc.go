package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/vidpulse/vidpulse-go/internal/model"
	"github.com/vidpulse/vidpulse-go/internal/repository"
	"github.com/vidpulse/vidpulse-go/internal/trending"
)

// TrendingResult pairs a trending response with its cache provenance.
type TrendingResult struct {
	Response *model.TrendingResponse
	CacheHit bool
}

// InsightsResult pairs an insights summary with its cache provenance.
type InsightsResult struct {
	Insights *model.TrendingInsights
	CacheHit bool
}

// TrendingService fetches a fresh video snapshot, runs the scoring engine
// over it, and caches the rendered responses. Scores never touch storage.
type TrendingService struct {
	repo   *repository.VideoRepo
	engine *trending.Engine
	cache  *CacheService
}

func NewTrendingService(repo *repository.VideoRepo, engine *trending.Engine, cache *CacheService) *TrendingService {
	return &TrendingService{repo: repo, engine: engine, cache: cache}
}

// GetTrending returns the ranked trending list for the given category,
// period, and limit, optionally with the insights summary attached.
// Cached responses are served as-is; cache failures degrade to a fresh
// computation, never to an error.
func (s *TrendingService) GetTrending(ctx context.Context, category, period string, limit int, includeInsights bool) (*TrendingResult, error) {
	if cached, err := s.cache.GetTrending(ctx, category, period, limit, includeInsights); err != nil {
		log.Printf("trending: cache read error: %v", err)
	} else if cached != nil {
		var resp model.TrendingResponse
		if unmarshalErr := json.Unmarshal(cached, &resp); unmarshalErr != nil {
			log.Printf("trending: dropping undecodable cache entry: %v", unmarshalErr)
		} else {
			return &TrendingResult{Response: &resp, CacheHit: true}, nil
		}
	}

	resp, err := s.computeTrending(ctx, category, period, limit, includeInsights)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetTrending(ctx, category, period, limit, includeInsights, resp); err != nil {
		log.Printf("trending: cache write error: %v", err)
	}
	return &TrendingResult{Response: resp}, nil
}

// GetInsights returns the insights summary over the full ready snapshot.
func (s *TrendingService) GetInsights(ctx context.Context) (*InsightsResult, error) {
	if cached, err := s.cache.GetInsights(ctx); err != nil {
		log.Printf("trending: insights cache read error: %v", err)
	} else if cached != nil {
		var insights model.TrendingInsights
		if err := json.Unmarshal(cached, &insights); err == nil {
			return &InsightsResult{Insights: &insights, CacheHit: true}, nil
		}
	}

	videos, err := s.repo.ListReady(ctx)
	if err != nil {
		return nil, err
	}
	insights := s.engine.Insights(videos, time.Now())

	if err := s.cache.SetInsights(ctx, insights); err != nil {
		log.Printf("trending: insights cache write error: %v", err)
	}
	return &InsightsResult{Insights: &insights}, nil
}

// GetStats returns platform-wide aggregate statistics.
func (s *TrendingService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	return s.repo.GetPlatformStats(ctx)
}

// WarmDefault precomputes and caches the default trending list and the
// insights summary so the common request path stays hot.
func (s *TrendingService) WarmDefault(ctx context.Context) error {
	resp, err := s.computeTrending(ctx, trending.CategoryAll, trending.PeriodWeek, trending.DefaultLimit, false)
	if err != nil {
		return err
	}
	if err := s.cache.SetTrending(ctx, trending.CategoryAll, trending.PeriodWeek, trending.DefaultLimit, false, resp); err != nil {
		return err
	}

	if _, err := s.GetInsights(ctx); err != nil {
		return err
	}
	return nil
}

func (s *TrendingService) computeTrending(ctx context.Context, category, period string, limit int, includeInsights bool) (*model.TrendingResponse, error) {
	videos, err := s.repo.ListReady(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ranked := s.engine.Rank(videos, category, period, now, limit)
	if ranked == nil {
		ranked = []model.Video{}
	}

	resp := &model.TrendingResponse{
		Videos:      ranked,
		Category:    category,
		Period:      period,
		GeneratedAt: now,
	}
	if includeInsights {
		insights := s.engine.Insights(videos, now)
		resp.Insights = &insights
	}
	return resp, nil
}
