package model

import "time"

// Video processing status values as stored in the videos table.
const (
	StatusProcessing = "PROCESSING"
	StatusReady      = "READY"
	StatusFailed     = "FAILED"
)

// Video is a read-only snapshot of a video's metadata and engagement
// counters, joined with its channel. The upload pipeline owns these rows;
// this service only reads them.
type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationSeconds int       `json:"durationSeconds"`
	ViewCount       int64     `json:"viewCount"`
	LikeCount       int64     `json:"likeCount"`
	DislikeCount    int64     `json:"dislikeCount"`
	CommentCount    int64     `json:"commentCount"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	PublishedAt     time.Time `json:"publishedAt"`
	Channel         Channel   `json:"channel"`
}

// Channel holds the publishing channel's metrics needed for scoring.
type Channel struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AvatarURL       string `json:"avatarUrl,omitempty"`
	SubscriberCount int64  `json:"subscriberCount"`
	OwnerUserID     string `json:"-"`
}

// StatsResponse is the API response for platform-wide statistics.
type StatsResponse struct {
	TotalVideos   int   `json:"totalVideos"`
	ReadyVideos   int   `json:"readyVideos"`
	TotalChannels int   `json:"totalChannels"`
	TotalViews    int64 `json:"totalViews"`
}
