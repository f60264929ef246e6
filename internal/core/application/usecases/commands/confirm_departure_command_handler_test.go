package commands_test

import (
	"testing"
	"time"

	"rotafila/internal/core/application/usecases/commands"
	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmDepartureCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	aggregate := newCourierAt(t, "Ana", kernel.UnitItaqua, time.Now())
	require.NoError(t, aggregate.Call(courier.BagNormal))

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		courierRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	scheduler := new(MockScheduler)
	scheduler.On("Cancel", aggregate.ID()).Once()

	cache := new(MockQueueCache)
	cache.On("Invalidate", ctx, kernel.UnitItaqua).Once()

	handler := commands.NewConfirmDepartureCommandHandler(factory, scheduler, cache)

	cmd, err := commands.NewConfirmDepartureCommand(aggregate.ID())
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))
	assert.Equal(t, courier.StatusDelivering, aggregate.Status())
	assert.NotNil(t, aggregate.DepartedAt())

	uow.AssertExpectations(t)
	scheduler.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestConfirmDepartureCommandHandler_Handle_StaleIsSilentNoOp(t *testing.T) {
	ctx := t.Context()

	// Already back in the queue: the timer fired after a manual resolution.
	aggregate := newCourierAt(t, "Ana", kernel.UnitItaqua, time.Now())

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	scheduler := new(MockScheduler)
	cache := new(MockQueueCache)

	handler := commands.NewConfirmDepartureCommandHandler(factory, scheduler, cache)

	cmd, err := commands.NewConfirmDepartureCommand(aggregate.ID())
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd), "stale transition is dropped, not surfaced")
	assert.Equal(t, courier.StatusAvailable, aggregate.Status())

	courierRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
