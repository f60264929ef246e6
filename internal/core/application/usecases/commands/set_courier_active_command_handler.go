package commands

import (
	"context"
	"time"

	"rotafila/internal/core/ports"
)

// SetCourierActiveCommandHandler toggles a courier on or off duty.
type SetCourierActiveCommandHandler struct {
	uowFactory CourierUoWFactory
	scheduler  ports.TransitionScheduler
	cache      ports.QueueCache
}

// NewSetCourierActiveCommandHandler creates a handler for duty toggles.
func NewSetCourierActiveCommandHandler(
	uowFactory CourierUoWFactory,
	scheduler ports.TransitionScheduler,
	cache ports.QueueCache,
) SetCourierActiveCommandHandler {
	return SetCourierActiveCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		cache:      cache,
	}
}

// Handle processes the toggle.
func (h SetCourierActiveCommandHandler) Handle(ctx context.Context, command SetCourierActiveCommand) error {
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

	if command.Active() {
		aggregate.Activate(time.Now())
	} else {
		aggregate.Deactivate()
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if !command.Active() {
		h.scheduler.Cancel(command.CourierID())
	}
	h.cache.Invalidate(ctx, aggregate.Unit())

	return nil
}
