package commands

import (
	"context"

	"rotafila/internal/core/ports"
)

// RemoveCourierCommandHandler deletes a courier from the roster and drops
// any pending transition timer.
type RemoveCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	scheduler  ports.TransitionScheduler
	cache      ports.QueueCache
}

// NewRemoveCourierCommandHandler creates a handler for courier removals.
func NewRemoveCourierCommandHandler(
	uowFactory CourierUoWFactory,
	scheduler ports.TransitionScheduler,
	cache ports.QueueCache,
) RemoveCourierCommandHandler {
	return RemoveCourierCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		cache:      cache,
	}
}

// Handle processes the removal.
func (h RemoveCourierCommandHandler) Handle(ctx context.Context, command RemoveCourierCommand) error {
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

	if err = courierRepo.Remove(ctx, command.CourierID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.scheduler.Cancel(command.CourierID())
	h.cache.Invalidate(ctx, aggregate.Unit())

	return nil
}
