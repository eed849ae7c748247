package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RefreshWorker listens for PostgreSQL NOTIFY on the 'video_changes'
// channel (fired by the upload pipeline when engagement counters move) and
// batches cache invalidations. If 500 counter updates land in one window,
// the trending cache is dropped once, not 500 times.
type RefreshWorker struct {
	pool    *pgxpool.Pool
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // video IDs seen since the last flush
}

// NewRefreshWorker creates a cache invalidation worker.
func NewRefreshWorker(pool *pgxpool.Pool, cache *CacheService) *RefreshWorker {
	return &RefreshWorker{
		pool:    pool,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start begins listening for video_changes notifications and processing
// batches. It reconnects with a fixed backoff on listen errors.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Printf("refresh-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("refresh-worker: stopping (context cancelled)")
				return
			}
			log.Printf("refresh-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("refresh-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on video_changes,
// and collects notifications into the pending set.
func (w *RefreshWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN video_changes")
	if err != nil {
		return err
	}
	log.Println("refresh-worker: listening on video_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		videoID := notification.Payload
		if videoID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[videoID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set and invalidates the cache.
func (w *RefreshWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush invalidates cached trending responses once per batch window in
// which at least one video changed.
func (w *RefreshWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	changed := len(w.pending)
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if err := w.cache.InvalidateTrending(ctx); err != nil {
		log.Printf("refresh-worker: cache invalidate error: %v", err)
		return
	}
	log.Printf("refresh-worker: trending cache invalidated (%d videos changed)", changed)
}
