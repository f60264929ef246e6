package commands

import (
	"context"

	"rotafila/internal/core/ports"
)

// UpdateCourierProfileCommandHandler applies a profile patch to a courier.
type UpdateCourierProfileCommandHandler struct {
	uowFactory CourierUoWFactory
	cache      ports.QueueCache
}

// NewUpdateCourierProfileCommandHandler creates a handler for profile updates.
func NewUpdateCourierProfileCommandHandler(uowFactory CourierUoWFactory, cache ports.QueueCache) UpdateCourierProfileCommandHandler {
	return UpdateCourierProfileCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the profile update.
func (h UpdateCourierProfileCommandHandler) Handle(ctx context.Context, command UpdateCourierProfileCommand) error {
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

	patch := command.Patch()
	if patch.Name != nil {
		if err = aggregate.Rename(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Phone != nil {
		if err = aggregate.ChangePhone(*patch.Phone); err != nil {
			return err
		}
	}
	if patch.Workdays != nil {
		aggregate.SetWorkdays(*patch.Workdays)
	}
	if patch.Shift != nil {
		aggregate.SetShift(*patch.Shift)
	} else if patch.UseDefaultShift {
		aggregate.UseDefaultShift()
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.cache.Invalidate(ctx, aggregate.Unit())

	return nil
}
