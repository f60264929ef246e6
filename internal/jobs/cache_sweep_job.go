package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rotafila/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// CacheSweepJob clears every cached queue snapshot on a fixed interval, so a
// snapshot that escaped invalidation never outlives it for long. The sweep
// touches the cache only; couriers and delivery history are never mutated
// here.
type CacheSweepJob struct {
	cache    ports.QueueCache
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCacheSweepJob creates the periodic cache maintenance job.
func NewCacheSweepJob(cache ports.QueueCache, interval time.Duration, logger *slog.Logger) *CacheSweepJob {
	return &CacheSweepJob{
		cache:    cache,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "cache_sweep_job"),
	}
}

// Start begins the sweep schedule.
func (j *CacheSweepJob) Start() error {
	schedule := fmt.Sprintf("@every %s", j.interval)
	_, err := j.cron.AddFunc(schedule, func() {
		j.cache.Sweep(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cache sweep job started", "interval", j.interval.String())
	return nil
}

// Stop stops the sweep schedule.
func (j *CacheSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cache sweep job stopped")
}
