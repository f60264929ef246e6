package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/core/ports"
	"rotafila/internal/pkg/errs"
)

// SweepOverdueCommandHandler forces couriers stuck in Delivering past the
// overtime threshold back into the queue. Keeps the rotation alive when a
// courier forgets to check back in. Every forced return is announced on the
// unit's screens so the operator sees the rotation changed on its own.
type SweepOverdueCommandHandler struct {
	uowFactory UoWFactory
	announcer  ports.Announcer
	cache      ports.QueueCache
	settings   RotationSettings
	logger     *slog.Logger
}

// NewSweepOverdueCommandHandler creates a handler for the overtime sweep.
func NewSweepOverdueCommandHandler(
	uowFactory UoWFactory,
	announcer ports.Announcer,
	cache ports.QueueCache,
	settings RotationSettings,
) SweepOverdueCommandHandler {
	return SweepOverdueCommandHandler{
		uowFactory: uowFactory,
		announcer:  announcer,
		cache:      cache,
		settings:   settings,
		logger:     slog.With("component", "sweep_overdue"),
	}
}

// Handle processes the sweep across all units.
func (h SweepOverdueCommandHandler) Handle(ctx context.Context, command SweepOverdueCommand) error {
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

	delivering, err := courierRepo.GetAllInStatus(ctx, courier.StatusDelivering)
	if err != nil {
		return err
	}

	now := time.Now()
	touched := make(map[kernel.Unit]struct{})
	forced := make([]*courier.Courier, 0)

	for _, aggregate := range delivering {
		if !aggregate.OverdueAt(now, h.settings.OvertimeThreshold) {
			continue
		}

		h.logger.Warn("forcing overdue courier back into the queue",
			"courierId", aggregate.ID().String(),
			"unit", aggregate.Unit().String(),
			"departedAt", aggregate.DepartedAt())

		if err = aggregate.Return(now); err != nil {
			return err
		}

		if err = h.closeOpenEvent(ctx, eventRepo, aggregate.ID(), now); err != nil {
			return err
		}

		if err = courierRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		touched[aggregate.Unit()] = struct{}{}
		forced = append(forced, aggregate)
	}

	if len(touched) == 0 {
		return nil
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for unit := range touched {
		h.cache.Invalidate(ctx, unit)
	}

	for _, aggregate := range forced {
		h.announcer.Announce(aggregate.Unit(),
			fmt.Sprintf("⚠️ %s excedeu o tempo de entrega e voltou para a fila", aggregate.Name()))
	}

	return nil
}

func (h SweepOverdueCommandHandler) closeOpenEvent(
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

	if err = event.MarkReturned(now); err != nil {
		return err
	}

	return eventRepo.Update(ctx, event)
}
