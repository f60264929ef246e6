package commands

import (
	"context"
	"time"

	"rotafila/internal/core/domain/services"
	"rotafila/internal/core/ports"
)

// ReorderQueueCommandHandler applies a full queue rewrite: every courier in
// the line gets a fresh strictly increasing position following the order
// the operator submitted.
type ReorderQueueCommandHandler struct {
	uowFactory CourierUoWFactory
	cache      ports.QueueCache
	settings   RotationSettings
}

// NewReorderQueueCommandHandler creates a handler for queue reorders.
func NewReorderQueueCommandHandler(
	uowFactory CourierUoWFactory,
	cache ports.QueueCache,
	settings RotationSettings,
) ReorderQueueCommandHandler {
	return ReorderQueueCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		settings:   settings,
	}
}

// Handle processes the reorder. The submitted IDs must cover the current
// line exactly; a mismatch fails the whole operation and nothing moves.
func (h ReorderQueueCommandHandler) Handle(ctx context.Context, command ReorderQueueCommand) error {
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

	couriers, err := courierRepo.GetAllInUnit(ctx, command.Unit())
	if err != nil {
		return err
	}

	now := time.Now()
	policy := services.NewRotationPolicy()
	queue := policy.Queue(couriers, now, h.settings.DefaultShift)

	if err = policy.Reorder(queue, command.OrderedIDs(), now); err != nil {
		return err
	}

	for _, aggregate := range queue {
		if err = courierRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.cache.Invalidate(ctx, command.Unit())

	return nil
}
