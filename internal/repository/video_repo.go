package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidpulse/vidpulse-go/internal/model"
)

// snapshotCap bounds a single ranking snapshot. The caller is expected to
// keep the ready set reasonable; this is the safety net.
const snapshotCap = 5000

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// ListReady returns a snapshot of all READY, non-hidden videos joined with
// their channel metrics, newest first. The result feeds the trending engine
// directly and is never written back.
func (r *VideoRepo) ListReady(ctx context.Context) ([]model.Video, error) {
	query := `
		SELECT v.video_id, v.title, COALESCE(v.description, ''), v.duration_seconds,
		       v.view_count, v.like_count, v.dislike_count, v.comment_count,
		       COALESCE(v.thumbnail_url, ''), v.status, v.created_at, v.published_at,
		       c.channel_id, c.name, COALESCE(c.avatar_url, ''), c.subscriber_count, c.owner_user_id
		FROM videos v
		JOIN channels c ON c.channel_id = v.channel_id
		WHERE v.status = 'READY' AND v.hidden = false
		ORDER BY v.published_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, snapshotCap)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		var v model.Video
		err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.DurationSeconds,
			&v.ViewCount, &v.LikeCount, &v.DislikeCount, &v.CommentCount,
			&v.ThumbnailURL, &v.Status, &v.CreatedAt, &v.PublishedAt,
			&v.Channel.ID, &v.Channel.Name, &v.Channel.AvatarURL,
			&v.Channel.SubscriberCount, &v.Channel.OwnerUserID,
		)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// GetPlatformStats returns aggregate counts for the stats endpoint.
func (r *VideoRepo) GetPlatformStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE hidden = false)                        AS total_videos,
			(SELECT COUNT(*) FROM videos WHERE hidden = false AND status = 'READY')   AS ready_videos,
			(SELECT COUNT(*) FROM channels)                                           AS total_channels,
			(SELECT COALESCE(SUM(view_count), 0) FROM videos WHERE hidden = false)    AS total_views`

	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalVideos, &stats.ReadyVideos, &stats.TotalChannels, &stats.TotalViews,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
