package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/ports"
)

// ConfirmDepartureCommandHandler moves a Called courier to Delivering and
// records the departure time. A stale command is dropped silently: the
// persisted status is authoritative and the transition already happened
// through another path.
type ConfirmDepartureCommandHandler struct {
	uowFactory CourierUoWFactory
	scheduler  ports.TransitionScheduler
	cache      ports.QueueCache
	logger     *slog.Logger
}

// NewConfirmDepartureCommandHandler creates a handler for departure confirmations.
func NewConfirmDepartureCommandHandler(
	uowFactory CourierUoWFactory,
	scheduler ports.TransitionScheduler,
	cache ports.QueueCache,
) ConfirmDepartureCommandHandler {
	return ConfirmDepartureCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		cache:      cache,
		logger:     slog.With("component", "confirm_departure"),
	}
}

// Handle processes the departure confirmation.
func (h ConfirmDepartureCommandHandler) Handle(ctx context.Context, command ConfirmDepartureCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	aggregate, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.ConfirmDeparture(time.Now()); err != nil {
		if errors.Is(err, courier.ErrStaleTransition) {
			h.logger.Debug("departure already confirmed, dropping",
				"courierId", command.CourierID().String())
			return nil
		}
		return err
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.scheduler.Cancel(command.CourierID())
	h.cache.Invalidate(ctx, aggregate.Unit())

	return nil
}
