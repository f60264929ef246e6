package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/ports"
	"rotafila/internal/pkg/errs"
)

// MarkReturnedCommandHandler moves a courier back to Available at the tail
// of the queue and closes their open delivery event. Returning an Available
// courier is a silent no-op.
type MarkReturnedCommandHandler struct {
	uowFactory UoWFactory
	scheduler  ports.TransitionScheduler
	cache      ports.QueueCache
	logger     *slog.Logger
}

// NewMarkReturnedCommandHandler creates a handler for courier returns.
func NewMarkReturnedCommandHandler(
	uowFactory UoWFactory,
	scheduler ports.TransitionScheduler,
	cache ports.QueueCache,
) MarkReturnedCommandHandler {
	return MarkReturnedCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		cache:      cache,
		logger:     slog.With("component", "mark_returned"),
	}
}

// Handle processes the return.
func (h MarkReturnedCommandHandler) Handle(ctx context.Context, command MarkReturnedCommand) error {
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
	eventRepo := uow.EventRepository()

	aggregate, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = aggregate.Return(now); err != nil {
		if errors.Is(err, courier.ErrStaleTransition) {
			h.logger.Debug("courier already back in the queue, dropping",
				"courierId", command.CourierID().String())
			return nil
		}
		return err
	}

	if err = h.closeOpenEvent(ctx, eventRepo, command, now); err != nil {
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

// closeOpenEvent stamps the return time on the courier's open event. A
// missing event is tolerated: a call cancelled before departure may have
// been purged, and the courier still has to get back in line.
func (h MarkReturnedCommandHandler) closeOpenEvent(
	ctx context.Context,
	eventRepo ports.EventRepository,
	command MarkReturnedCommand,
	now time.Time,
) error {
	event, err := eventRepo.GetOpenByCourier(ctx, command.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.Warn("no open delivery event on return",
			"courierId", command.CourierID().String())
		return nil
	}
	if err != nil {
		return err
	}

	if err = event.MarkReturned(now); err != nil {
		return err
	}

	return eventRepo.Update(ctx, event)
}
