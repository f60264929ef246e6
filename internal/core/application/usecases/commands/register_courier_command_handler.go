package commands

import (
	"context"
	"errors"
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/ports"
)

// ErrCourierNameIsRequired is returned when registering a courier without a name.
var ErrCourierNameIsRequired = errors.New("name is required")

// RegisterCourierCommandHandler persists a new courier aggregate.
type RegisterCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	cache      ports.QueueCache
}

// NewRegisterCourierCommandHandler creates a handler for courier registrations.
func NewRegisterCourierCommandHandler(uowFactory CourierUoWFactory, cache ports.QueueCache) RegisterCourierCommandHandler {
	return RegisterCourierCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the registration.
func (h RegisterCourierCommandHandler) Handle(ctx context.Context, command RegisterCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := courier.NewCourier(
		command.CourierID(),
		command.Name(),
		command.Phone(),
		command.Unit(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.cache.Invalidate(ctx, command.Unit())

	return nil
}
