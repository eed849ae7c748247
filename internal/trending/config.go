package trending

import "time"

// Default list sizes for ranking requests.
const (
	DefaultLimit  = 50
	MaxLimit      = 100
	insightsDepth = 100
)

// Config holds the scoring weights, scales, and windows. The values are
// hand-tuned, not derived — treat them as tunable knobs, not fixed law.
type Config struct {
	// Weighted-sum coefficients for the base score.
	ViewVelocityWeight float64
	EngagementWeight   float64
	LikeRatioWeight    float64
	CommentWeight      float64
	RecencyWeight      float64

	// Scales applied to the ratio factors before weighting, so each term
	// lands in a comparable magnitude range.
	EngagementScale float64
	LikeRatioScale  float64
	CommentScale    float64
	RecencyScale    float64

	// MinElapsed floors the hours since publication so view velocity does
	// not blow up for just-published videos. MinElapsedDays floors the day
	// count used by the recency boost.
	MinElapsed     time.Duration
	MinElapsedDays float64

	// RecencyWindowDays is the span over which the recency boost decays
	// linearly from 1 to 0.
	RecencyWindowDays float64

	// TrendingWindow is the eligibility cutoff: videos published earlier
	// than now minus this window never rank.
	TrendingWindow time.Duration

	// SubscriberBoostCap caps the multiplicative channel boost.
	// SubscriberDivisor maps subscriber count to boost above 1.0.
	SubscriberBoostCap float64
	SubscriberDivisor  float64
}

// DefaultConfig returns the canonical scoring parameters.
func DefaultConfig() Config {
	return Config{
		ViewVelocityWeight: 0.40,
		EngagementWeight:   0.25,
		LikeRatioWeight:    0.15,
		CommentWeight:      0.10,
		RecencyWeight:      0.10,

		EngagementScale: 1000,
		LikeRatioScale:  100,
		CommentScale:    100,
		RecencyScale:    50,

		MinElapsed:         time.Hour,
		MinElapsedDays:     1,
		RecencyWindowDays:  7,
		TrendingWindow:     30 * 24 * time.Hour,
		SubscriberBoostCap: 1.5,
		SubscriberDivisor:  1_000_000,
	}
}

// Period identifiers accepted by RankByPeriod.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

// ValidPeriod reports whether p is a recognized ranking period.
func ValidPeriod(p string) bool {
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodAll:
		return true
	}
	return false
}

// periodCutoff maps a period to its publishedAt cutoff relative to now.
// Unknown periods behave like "all".
func periodCutoff(period string, now time.Time) time.Time {
	switch period {
	case PeriodToday:
		return now.Add(-24 * time.Hour)
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour)
	case PeriodMonth:
		return now.Add(-30 * 24 * time.Hour)
	default:
		return time.Time{}
	}
}
