// Package jobs provides scheduled background tasks for the rotation.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the queue depends on.
//
// # Available Jobs
//
// 1. QueueReconcileJob - Polls every few seconds to confirm departures whose
// auto-advance timer was lost and to force overdue couriers back in line
// 2. CacheSweepJob - Runs hourly to drop every cached queue snapshot
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, confirmHandler, sweepHandler,
//		cache, settings, pollInterval, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs treat tick failures as transient: they log and wait for the next
// tick. The in-memory auto-advance timers remain the fast path, the
// reconcile job only covers what they miss.
package jobs
