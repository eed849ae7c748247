package service

import (
	"context"
	"log"
	"time"
)

// WarmupWorker periodically recomputes and caches the default trending list
// and the insights summary, so the first request after an invalidation does
// not pay the full snapshot-and-rank cost.
type WarmupWorker struct {
	svc      *TrendingService
	interval time.Duration
	stopCh   chan struct{}
}

// NewWarmupWorker creates a worker that ticks every interval.
func NewWarmupWorker(svc *TrendingService, interval time.Duration) *WarmupWorker {
	return &WarmupWorker{
		svc:      svc,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic warmup loop. It runs one tick immediately,
// then every interval.
func (w *WarmupWorker) Start(ctx context.Context) {
	log.Printf("warmup-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("warmup-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("warmup-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *WarmupWorker) Stop() {
	close(w.stopCh)
}

// tick runs one warmup cycle.
func (w *WarmupWorker) tick(ctx context.Context) {
	start := time.Now()

	if err := w.svc.WarmDefault(ctx); err != nil {
		log.Printf("warmup-worker: error: %v", err)
		return
	}

	log.Printf("warmup-worker: tick complete (%s)", time.Since(start).Round(time.Millisecond))
}
