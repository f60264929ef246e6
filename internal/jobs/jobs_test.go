package jobs_test

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"rotafila/internal/core/application/usecases/commands"
	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/delivery"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/jobs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testJobLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCalledCourier(t *testing.T, name, rawPhone string, unit kernel.Unit) *courier.Courier {
	t.Helper()

	phone, err := kernel.NewPhone(rawPhone)
	require.NoError(t, err)

	aggregate, err := courier.NewCourier(kernel.NewUUID(), name, phone, unit, time.Now())
	require.NoError(t, err)
	require.NoError(t, aggregate.Call(courier.BagNormal))

	return aggregate
}

func newOpenEvent(t *testing.T, courierID kernel.UUID, unit kernel.Unit, calledAt time.Time) *delivery.Event {
	t.Helper()

	event, err := delivery.NewEvent(kernel.NewUUID(), courierID, unit, courier.BagNormal, calledAt)
	require.NoError(t, err)

	return event
}

func Test_CacheSweepJob_TickTouchesOnlyTheCache(t *testing.T) {
	var swept atomic.Int32

	cache := new(MockQueueCache)
	cache.On("Sweep", mock.Anything).Run(func(mock.Arguments) {
		swept.Add(1)
	})

	job := jobs.NewCacheSweepJob(cache, time.Second, testJobLogger())
	require.NoError(t, job.Start())
	defer job.Stop()

	require.Eventually(t, func() bool {
		return swept.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)

	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func Test_QueueReconcileJob_ConfirmsDeparturePastTheDelay(t *testing.T) {
	settings := commands.RotationSettings{
		AutoAdvanceDelay:  15 * time.Second,
		OvertimeThreshold: 50 * time.Minute,
	}

	ana := newCalledCourier(t, "Ana", "11999990001", kernel.UnitItaqua)
	bruno := newCalledCourier(t, "Bruno", "11999990002", kernel.UnitItaqua)

	anaEvent := newOpenEvent(t, ana.ID(), kernel.UnitItaqua, time.Now().Add(-time.Minute))
	brunoEvent := newOpenEvent(t, bruno.ID(), kernel.UnitItaqua, time.Now())

	readRepo := new(MockCourierRepository)
	readRepo.On("GetAllInStatus", mock.Anything, courier.StatusCalled).
		Return([]*courier.Courier{ana, bruno}, nil)
	readRepo.On("GetAllInStatus", mock.Anything, courier.StatusDelivering).
		Return([]*courier.Courier{}, nil)

	eventRepo := new(MockEventRepository)
	eventRepo.On("GetAllOpen", mock.Anything).
		Return([]*delivery.Event{anaEvent, brunoEvent}, nil)

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("CourierRepository").Return(readRepo)
	uow.On("EventRepository").Return(eventRepo)

	uowFactory := new(MockUoWFactory)
	uowFactory.On("Create").Return(uow)

	// Only Ana's departure may be confirmed, so the confirm path knows her
	// ID alone.
	confirmRepo := new(MockCourierRepository)
	confirmRepo.On("Get", mock.Anything, ana.ID()).Return(ana, nil)
	confirmRepo.On("Update", mock.Anything, ana).Return(nil)

	confirmUoW := new(MockUoW)
	confirmUoW.On("Begin", mock.Anything).Return(nil)
	confirmUoW.On("Rollback", mock.Anything).Return(nil)
	confirmUoW.On("Commit", mock.Anything).Return(nil)
	confirmUoW.On("CourierRepository").Return(confirmRepo)

	confirmFactory := new(MockCourierUoWFactory)
	confirmFactory.On("Create").Return(confirmUoW)

	var confirmed atomic.Int32

	scheduler := new(MockScheduler)
	scheduler.On("Cancel", ana.ID()).Run(func(mock.Arguments) {
		confirmed.Add(1)
	})

	cache := new(MockQueueCache)
	cache.On("Invalidate", mock.Anything, kernel.UnitItaqua)

	announcer := new(MockAnnouncer)

	confirmHandler := commands.NewConfirmDepartureCommandHandler(confirmFactory, scheduler, cache)
	sweepHandler := commands.NewSweepOverdueCommandHandler(uowFactory, announcer, cache, settings)

	job := jobs.NewQueueReconcileJob(uowFactory, confirmHandler, sweepHandler, settings, time.Second, testJobLogger())
	require.NoError(t, job.Start())
	defer job.Stop()

	require.Eventually(t, func() bool {
		return confirmed.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)

	job.Stop()

	require.Equal(t, courier.StatusDelivering, ana.Status())
	require.Equal(t, courier.StatusCalled, bruno.Status())
	confirmRepo.AssertCalled(t, "Update", mock.Anything, ana)
	announcer.AssertNotCalled(t, "Announce", mock.Anything, mock.Anything)
}
