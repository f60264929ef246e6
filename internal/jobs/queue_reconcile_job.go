package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rotafila/internal/core/application/usecases/commands"
	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/delivery"
	"rotafila/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// QueueReconcileJob is the polling safety net of the rotation. Each tick it
// confirms the departure of Called couriers whose auto-advance window
// elapsed, covering timers lost to a restart, and forces overdue couriers
// back into the line.
type QueueReconcileJob struct {
	uowFactory     commands.UoWFactory
	confirmHandler commands.ConfirmDepartureCommandHandler
	sweepHandler   commands.SweepOverdueCommandHandler
	settings       commands.RotationSettings
	interval       time.Duration
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewQueueReconcileJob creates the reconciliation job with the given poll
// interval.
func NewQueueReconcileJob(
	uowFactory commands.UoWFactory,
	confirmHandler commands.ConfirmDepartureCommandHandler,
	sweepHandler commands.SweepOverdueCommandHandler,
	settings commands.RotationSettings,
	interval time.Duration,
	logger *slog.Logger,
) *QueueReconcileJob {
	return &QueueReconcileJob{
		uowFactory:     uowFactory,
		confirmHandler: confirmHandler,
		sweepHandler:   sweepHandler,
		settings:       settings,
		interval:       interval,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "queue_reconcile_job"),
	}
}

// Start begins polling.
func (j *QueueReconcileJob) Start() error {
	schedule := fmt.Sprintf("@every %s", j.interval)
	_, err := j.cron.AddFunc(schedule, func() {
		ctx := context.Background()

		if err := j.reconcileCalled(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Auto-advance reconciliation failed", "error", err)
		}

		if err := j.sweepHandler.Handle(ctx, commands.NewSweepOverdueCommand()); err != nil {
			j.logger.ErrorContext(ctx, "Overdue sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue reconcile job started", "interval", j.interval.String())
	return nil
}

// Stop stops polling.
func (j *QueueReconcileJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Queue reconcile job stopped")
}

// reconcileCalled confirms the departure of every Called courier whose open
// event is older than the auto-advance delay. The handler re-reads the
// courier, so one that was resolved concurrently is left alone.
func (j *QueueReconcileJob) reconcileCalled(ctx context.Context) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	called, err := uow.CourierRepository().GetAllInStatus(ctx, courier.StatusCalled)
	if err != nil {
		return err
	}

	if len(called) == 0 {
		return nil
	}

	open, err := uow.EventRepository().GetAllOpen(ctx)
	if err != nil {
		return err
	}

	// Latest open event per courier; a stale event left behind must not
	// shadow the current call.
	latest := make(map[kernel.UUID]*delivery.Event, len(open))
	for _, event := range open {
		current, ok := latest[event.CourierID()]
		if !ok || event.CalledAt().After(current.CalledAt()) {
			latest[event.CourierID()] = event
		}
	}

	now := time.Now()

	for _, c := range called {
		event, ok := latest[c.ID()]
		if !ok {
			continue
		}

		if now.Sub(event.CalledAt()) < j.settings.AutoAdvanceDelay {
			continue
		}

		command, cmdErr := commands.NewConfirmDepartureCommand(c.ID())
		if cmdErr != nil {
			return cmdErr
		}

		if handleErr := j.confirmHandler.Handle(ctx, command); handleErr != nil {
			j.logger.WarnContext(ctx, "Reconciled departure failed",
				"courierId", c.ID().String(), "error", handleErr)
		}
	}

	return nil
}
