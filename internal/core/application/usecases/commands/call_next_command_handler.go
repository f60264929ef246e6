package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/delivery"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/core/domain/services"
	"rotafila/internal/core/ports"
)

// CallNextCommandHandler advances the rotation of a unit: it picks the head
// of the line, marks them Called, opens a delivery event, notifies the
// courier, announces at the counter, warns the second in line, and arms the
// auto-advance timer.
//
// Persistence is the only fatal concern. Once the transaction commits, the
// call stands: a failed text or announcement is logged and the rotation
// moves on.
type CallNextCommandHandler struct {
	uowFactory     UoWFactory
	notifier       ports.Notifier
	announcer      ports.Announcer
	cache          ports.QueueCache
	scheduler      ports.TransitionScheduler
	confirmHandler ConfirmDepartureCommandHandler
	settings       RotationSettings
	logger         *slog.Logger
}

// NewCallNextCommandHandler creates a handler for call-next operations.
func NewCallNextCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	announcer ports.Announcer,
	cache ports.QueueCache,
	scheduler ports.TransitionScheduler,
	confirmHandler ConfirmDepartureCommandHandler,
	settings RotationSettings,
) CallNextCommandHandler {
	return CallNextCommandHandler{
		uowFactory:     uowFactory,
		notifier:       notifier,
		announcer:      announcer,
		cache:          cache,
		scheduler:      scheduler,
		confirmHandler: confirmHandler,
		settings:       settings,
		logger:         slog.With("component", "call_next"),
	}
}

// Handle processes the call and returns the called courier.
// Returns services.ErrQueueIsEmpty when no eligible courier is waiting.
func (h CallNextCommandHandler) Handle(ctx context.Context, command CallNextCommand) (*courier.Courier, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	eventRepo := uow.EventRepository()

	couriers, err := courierRepo.GetAllInUnit(ctx, command.Unit())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	policy := services.NewRotationPolicy()
	queue := policy.Queue(couriers, now, h.settings.DefaultShift)

	next, err := policy.Next(queue)
	if err != nil {
		return nil, err
	}

	if err = next.Call(command.BagType()); err != nil {
		return nil, err
	}

	event, err := delivery.NewEvent(kernel.NewUUID(), next.ID(), command.Unit(), command.BagType(), now)
	if err != nil {
		return nil, err
	}

	if err = courierRepo.Update(ctx, next); err != nil {
		return nil, err
	}

	if err = eventRepo.Add(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.cache.Invalidate(ctx, command.Unit())
	h.scheduler.After(next.ID(), h.settings.AutoAdvanceDelay, h.autoAdvance(next.ID()))

	h.notify(ctx, next, command.Unit(), command.Deliveries())
	h.announcer.Announce(command.Unit(), next.Name())

	if second := policy.SecondInLine(queue); second != nil {
		h.scheduler.After(second.ID(), h.settings.HeadsUpDelay, h.headsUp(second.ID(), command.Unit()))
	}

	return next, nil
}

// autoAdvance builds the timer callback that confirms the departure when the
// operator never did. The handler re-reads the courier, so a call resolved
// in the meantime makes this a no-op.
func (h CallNextCommandHandler) autoAdvance(courierID kernel.UUID) func() {
	return func() {
		command, err := NewConfirmDepartureCommand(courierID)
		if err != nil {
			return
		}

		if err := h.confirmHandler.Handle(context.Background(), command); err != nil {
			h.logger.Error("auto-advance failed",
				"courierId", courierID.String(), "error", err)
		}
	}
}

// notify texts the called courier. The delivery count decorates the message
// and is persisted nowhere else.
func (h CallNextCommandHandler) notify(ctx context.Context, next *courier.Courier, unit kernel.Unit, deliveries int) {
	text := fmt.Sprintf("🍕 Sua vez na unidade %s! Vá ao balcão.", unit)
	if deliveries > 1 {
		text = fmt.Sprintf("🍕 Sua vez na unidade %s! Vá ao balcão. São %d entregas.", unit, deliveries)
	}
	if err := h.notifier.Notify(ctx, next.Phone(), text); err != nil {
		h.logger.Warn("call notification failed",
			"courierId", next.ID().String(), "unit", unit.String(), "error", err)
	}
}

// headsUp builds the delayed warning for the courier who moved up to the
// front. At fire time the queue is re-read; the text goes out only while
// the courier still leads the line. Best effort, like every notification.
func (h CallNextCommandHandler) headsUp(courierID kernel.UUID, unit kernel.Unit) func() {
	return func() {
		ctx := context.Background()

		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			h.logger.Warn("heads-up queue read failed", "unit", unit.String(), "error", err)
			return
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		couriers, err := uow.CourierRepository().GetAllInUnit(ctx, unit)
		if err != nil {
			h.logger.Warn("heads-up queue read failed", "unit", unit.String(), "error", err)
			return
		}

		policy := services.NewRotationPolicy()
		next, err := policy.Next(policy.Queue(couriers, time.Now(), h.settings.DefaultShift))
		if err != nil || !next.ID().IsEqual(courierID) {
			return
		}

		text := fmt.Sprintf("🛵 Prepare-se, você é o próximo na unidade %s!", unit)
		if err := h.notifier.Notify(ctx, next.Phone(), text); err != nil {
			h.logger.Warn("heads-up notification failed",
				"courierId", next.ID().String(), "unit", unit.String(), "error", err)
		}
	}
}
