package model

import "time"

// TrendingScore is the transient scoring result for one video. Scores are
// recomputed from a fresh snapshot on every ranking pass and never persisted.
type TrendingScore struct {
	VideoID string       `json:"videoId"`
	Score   float64      `json:"score"`
	Factors ScoreFactors `json:"factors"`
}

// ScoreFactors is the diagnostic breakdown behind a trending score, kept for
// observability only — nothing feeds it back into storage.
type ScoreFactors struct {
	Views           int64   `json:"views"`
	Likes           int64   `json:"likes"`
	Comments        int64   `json:"comments"`
	Recency         float64 `json:"recencyFactor"`
	Engagement      float64 `json:"engagementRate"`
	SubscriberBoost float64 `json:"subscriberBoost"`
}

// CategoryCount is one entry of the top-categories breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TrendingFactors holds mean factor values across a ranked set.
type TrendingFactors struct {
	AverageViews      float64 `json:"averageViews"`
	AverageEngagement float64 `json:"averageEngagement"`
	AverageRecency    float64 `json:"averageRecency"`
}

// TrendingInsights summarizes a ranking pass over the current snapshot.
type TrendingInsights struct {
	TotalVideos     int             `json:"totalVideos"`
	AverageScore    float64         `json:"averageScore"`
	TopCategories   []CategoryCount `json:"topCategories"`
	TrendingFactors TrendingFactors `json:"trendingFactors"`
}

// TrendingResponse is the API response for trending list requests.
type TrendingResponse struct {
	Videos      []Video           `json:"videos"`
	Category    string            `json:"category"`
	Period      string            `json:"period"`
	Insights    *TrendingInsights `json:"insights,omitempty"`
	GeneratedAt time.Time         `json:"generatedAt"`
}
