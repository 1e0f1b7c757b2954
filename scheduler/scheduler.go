// Package scheduler drives the periodic refresh sweep that keeps
// registered profiles up to date.
package scheduler

import (
	"context"
	"time"

	"photo-indexer/logger"
	"photo-indexer/usecase"
)

// Scheduler runs a refresh sweep at a fixed interval. The sweep itself
// only enqueues jobs; the queue workers do the fetching.
type Scheduler struct {
	refresh  *usecase.RefreshProfilesUsecase
	interval time.Duration
}

func New(refresh *usecase.RefreshProfilesUsecase, interval time.Duration) *Scheduler {
	return &Scheduler{
		refresh:  refresh,
		interval: interval,
	}
}

// Start blocks until the context is cancelled, sweeping once
// immediately and then on every tick.
func (s *Scheduler) Start(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logger.Error("scheduler panic recovered", "err", r)
		}
	}()

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Logger.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	start := time.Now()
	result, err := s.refresh.Execute(ctx)
	if err != nil {
		logger.Logger.Error("refresh sweep failed", "err", err)
		return
	}
	logger.Logger.Info("refresh sweep done",
		"enqueued", result.Enqueued,
		"failed", result.Failed,
		"took", time.Since(start))
}
