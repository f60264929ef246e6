package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/core/ports"
	"rotafila/internal/pkg/errs"
)

// CheckInCommandHandler activates a courier arriving for the shift and
// queues them at the tail. A courier already on duty cannot check in again;
// the caller surfaces courier.ErrAlreadyCheckedIn as a conflict.
type CheckInCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.QueueCache
	logger     *slog.Logger
}

// NewCheckInCommandHandler creates a handler for shift check-ins.
func NewCheckInCommandHandler(uowFactory UoWFactory, cache ports.QueueCache) CheckInCommandHandler {
	return CheckInCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     slog.With("component", "check_in"),
	}
}

// Handle processes the check-in.
func (h CheckInCommandHandler) Handle(ctx context.Context, command CheckInCommand) error {
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

	aggregate, err := courierRepo.GetByPhone(ctx, command.Phone())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = aggregate.CheckIn(now); err != nil {
		return err
	}

	// A courier deactivated mid-delivery may still carry an open event.
	if err = h.closeStaleEvent(ctx, eventRepo, aggregate.ID(), now); err != nil {
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

// closeStaleEvent closes an open event left behind by a courier who went
// off duty while out delivering.
func (h CheckInCommandHandler) closeStaleEvent(
	ctx context.Context,
	eventRepo ports.EventRepository,
	courierID kernel.UUID,
	now time.Time,
) error {
	event, err := eventRepo.GetOpenByCourier(ctx, courierID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	h.logger.Warn("closing stale delivery event on check-in",
		"courierId", courierID.String(), "eventId", event.ID().String())

	if err = event.MarkReturned(now); err != nil {
		return err
	}

	return eventRepo.Update(ctx, event)
}
