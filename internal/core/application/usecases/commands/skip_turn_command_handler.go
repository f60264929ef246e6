package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/ports"
)

// SkipTurnCommandHandler moves an available courier to the tail of the
// queue. Skipping a courier who is no longer Available is a silent no-op.
type SkipTurnCommandHandler struct {
	uowFactory CourierUoWFactory
	cache      ports.QueueCache
	logger     *slog.Logger
}

// NewSkipTurnCommandHandler creates a handler for turn skips.
func NewSkipTurnCommandHandler(uowFactory CourierUoWFactory, cache ports.QueueCache) SkipTurnCommandHandler {
	return SkipTurnCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     slog.With("component", "skip_turn"),
	}
}

// Handle processes the skip.
func (h SkipTurnCommandHandler) Handle(ctx context.Context, command SkipTurnCommand) error {
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

	if err = aggregate.SkipTurn(time.Now()); err != nil {
		if errors.Is(err, courier.ErrStaleTransition) {
			h.logger.Debug("courier no longer available, dropping skip",
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

	h.cache.Invalidate(ctx, aggregate.Unit())

	return nil
}
