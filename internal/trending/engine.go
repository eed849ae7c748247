package trending

import (
	"math"
	"sort"
	"time"

	"github.com/vidpulse/vidpulse-go/internal/model"
)

// Engine computes trending scores and ranked lists from video snapshots.
// It is pure: no I/O, no clocks, no shared state — every method is a
// function of its arguments, so concurrent use needs no synchronization.
type Engine struct {
	cfg        Config
	classifier Classifier
}

// NewEngine creates an engine with the given config and the default
// keyword classifier.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, classifier: NewKeywordClassifier()}
}

// NewEngineWithClassifier creates an engine with a custom classifier.
func NewEngineWithClassifier(cfg Config, c Classifier) *Engine {
	return &Engine{cfg: cfg, classifier: c}
}

// ComputeScore calculates the trending score for a single video at the
// given evaluation time. It never returns NaN, Inf, or a negative score:
// every division is guarded and every factor is clamped.
//
//	base = 0.40*viewVelocity + 0.25*(engagementRate*1000)
//	     + 0.15*(likeRatio*100) + 0.10*(commentEngagement*100)
//	     + 0.10*(recencyBoost*50)
//	score = max(0, base) * subscriberBoost
func (e *Engine) ComputeScore(v model.Video, now time.Time) model.TrendingScore {
	hours := now.Sub(v.PublishedAt).Hours()
	if minHours := e.cfg.MinElapsed.Hours(); hours < minHours {
		hours = minHours
	}
	// Days are floored separately so the recency boost starts its decay
	// from the one-day mark rather than spiking for brand-new uploads.
	days := math.Max(hours/24, e.cfg.MinElapsedDays)

	viewVelocity := float64(v.ViewCount) / hours

	var engagementRate, commentEngagement float64
	if v.ViewCount > 0 {
		engagementRate = float64(v.LikeCount+v.CommentCount) / float64(v.ViewCount)
		commentEngagement = float64(v.CommentCount) / float64(v.ViewCount)
	}

	var likeRatio float64
	if total := v.LikeCount + v.DislikeCount; total > 0 {
		likeRatio = float64(v.LikeCount) / float64(total)
	}

	recency := math.Max(0, 1-days/e.cfg.RecencyWindowDays)

	boost := 1 + float64(v.Channel.SubscriberCount)/e.cfg.SubscriberDivisor
	if boost > e.cfg.SubscriberBoostCap {
		boost = e.cfg.SubscriberBoostCap
	}

	base := e.cfg.ViewVelocityWeight*viewVelocity +
		e.cfg.EngagementWeight*(engagementRate*e.cfg.EngagementScale) +
		e.cfg.LikeRatioWeight*(likeRatio*e.cfg.LikeRatioScale) +
		e.cfg.CommentWeight*(commentEngagement*e.cfg.CommentScale) +
		e.cfg.RecencyWeight*(recency*e.cfg.RecencyScale)

	return model.TrendingScore{
		VideoID: v.ID,
		Score:   math.Max(0, base) * boost,
		Factors: model.ScoreFactors{
			Views:           v.ViewCount,
			Likes:           v.LikeCount,
			Comments:        v.CommentCount,
			Recency:         recency,
			Engagement:      engagementRate,
			SubscriberBoost: boost,
		},
	}
}

// Eligible reports whether a video can appear in trending output at all:
// status READY, at least one view, published within the trending window.
func (e *Engine) Eligible(v model.Video, now time.Time) bool {
	return v.Status == model.StatusReady &&
		v.ViewCount > 0 &&
		v.PublishedAt.After(now.Add(-e.cfg.TrendingWindow))
}

// scored pairs a video with its computed score for sorting.
type scored struct {
	video model.Video
	score float64
}

// RankTrending scores all eligible videos and returns the top limit of
// them, highest score first. Ties break by publishedAt descending, then ID
// ascending, so output is deterministic regardless of input order. The
// input slice is never modified.
func (e *Engine) RankTrending(videos []model.Video, now time.Time, limit int) []model.Video {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := make([]scored, 0, len(videos))
	for _, v := range videos {
		if !e.Eligible(v, now) {
			continue
		}
		ranked = append(ranked, scored{video: v, score: e.ComputeScore(v, now).Score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if !ranked[i].video.PublishedAt.Equal(ranked[j].video.PublishedAt) {
			return ranked[i].video.PublishedAt.After(ranked[j].video.PublishedAt)
		}
		return ranked[i].video.ID < ranked[j].video.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]model.Video, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.video)
	}
	return out
}

// RankByCategory restricts ranking to videos whose inferred category
// matches. Category "all" ranks everything.
func (e *Engine) RankByCategory(videos []model.Video, category string, now time.Time, limit int) []model.Video {
	if category == "" || category == CategoryAll {
		return e.RankTrending(videos, now, limit)
	}

	filtered := make([]model.Video, 0, len(videos))
	for _, v := range videos {
		if e.classifier.Classify(v.Title+" "+v.Description) == category {
			filtered = append(filtered, v)
		}
	}
	return e.RankTrending(filtered, now, limit)
}

// RankByPeriod restricts ranking to videos published after the period
// cutoff (today=24h, week=7d, month=30d, all=no cutoff).
func (e *Engine) RankByPeriod(videos []model.Video, period string, now time.Time, limit int) []model.Video {
	cutoff := periodCutoff(period, now)
	if cutoff.IsZero() {
		return e.RankTrending(videos, now, limit)
	}

	filtered := make([]model.Video, 0, len(videos))
	for _, v := range videos {
		if v.PublishedAt.After(cutoff) {
			filtered = append(filtered, v)
		}
	}
	return e.RankTrending(filtered, now, limit)
}

// Rank applies both a category and a period restriction before ranking.
func (e *Engine) Rank(videos []model.Video, category, period string, now time.Time, limit int) []model.Video {
	cutoff := periodCutoff(period, now)
	if cutoff.IsZero() {
		return e.RankByCategory(videos, category, now, limit)
	}

	filtered := make([]model.Video, 0, len(videos))
	for _, v := range videos {
		if v.PublishedAt.After(cutoff) {
			filtered = append(filtered, v)
		}
	}
	return e.RankByCategory(filtered, category, now, limit)
}

// Insights ranks the top 100 videos and summarizes them: how many ranked,
// mean score, the five most common inferred categories, and mean factor
// values. An empty ranking yields an explicit all-zero result — every
// division here is guarded so no NaN can leak into responses.
func (e *Engine) Insights(videos []model.Video, now time.Time) model.TrendingInsights {
	top := e.RankTrending(videos, now, insightsDepth)

	insights := model.TrendingInsights{
		TopCategories: []model.CategoryCount{},
	}
	if len(top) == 0 {
		return insights
	}

	counts := make(map[string]int)
	var scoreSum, viewSum, engagementSum, recencySum float64
	for _, v := range top {
		s := e.ComputeScore(v, now)
		scoreSum += s.Score
		viewSum += float64(s.Factors.Views)
		engagementSum += s.Factors.Engagement
		recencySum += s.Factors.Recency
		counts[e.classifier.Classify(v.Title+" "+v.Description)]++
	}

	n := float64(len(top))
	insights.TotalVideos = len(top)
	insights.AverageScore = scoreSum / n
	insights.TrendingFactors = model.TrendingFactors{
		AverageViews:      viewSum / n,
		AverageEngagement: engagementSum / n,
		AverageRecency:    recencySum / n,
	}
	insights.TopCategories = topCategories(counts, 5)
	return insights
}

// topCategories returns the k most frequent categories, count descending,
// name ascending on equal counts.
func topCategories(counts map[string]int, k int) []model.CategoryCount {
	out := make([]model.CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, model.CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}
