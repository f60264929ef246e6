package commands

import (
	"context"
	"log/slog"
	"time"
)

// purgeNotBeforeHour gates the purge: events from previous days survive
// until midday so the morning crew can still read yesterday's numbers.
const purgeNotBeforeHour = 12

// PurgeHistoryCommandHandler deletes delivery events older than the start
// of the current day.
type PurgeHistoryCommandHandler struct {
	uowFactory EventUoWFactory
	logger     *slog.Logger
}

// NewPurgeHistoryCommandHandler creates a handler for history purges.
func NewPurgeHistoryCommandHandler(uowFactory EventUoWFactory) PurgeHistoryCommandHandler {
	return PurgeHistoryCommandHandler{
		uowFactory: uowFactory,
		logger:     slog.With("component", "purge_history"),
	}
}

// Handle processes the purge. Before midday it does nothing.
func (h PurgeHistoryCommandHandler) Handle(ctx context.Context, command PurgeHistoryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	now := time.Now()
	if now.Hour() < purgeNotBeforeHour {
		h.logger.Debug("purge skipped before midday")
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	purged, err := uow.EventRepository().PurgeBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if purged > 0 {
		h.logger.Info("purged delivery history", "events", purged, "cutoff", cutoff)
	}

	return nil
}
