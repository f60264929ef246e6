package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"rotafila/internal/core/application/usecases/commands"
	"rotafila/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	queueReconcileJob *QueueReconcileJob
	cacheSweepJob     *CacheSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	uowFactory commands.UoWFactory,
	confirmHandler commands.ConfirmDepartureCommandHandler,
	sweepHandler commands.SweepOverdueCommandHandler,
	cache ports.QueueCache,
	settings commands.RotationSettings,
	pollInterval time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		queueReconcileJob: NewQueueReconcileJob(uowFactory, confirmHandler, sweepHandler, settings, pollInterval, logger),
		cacheSweepJob:     NewCacheSweepJob(cache, time.Hour, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.queueReconcileJob.Start(); err != nil {
		return fmt.Errorf("failed to start queue reconcile job: %w", err)
	}

	if err := jm.cacheSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.queueReconcileJob.Stop()
		return fmt.Errorf("failed to start cache sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cacheSweepJob.Stop()
	jm.queueReconcileJob.Stop()
}
