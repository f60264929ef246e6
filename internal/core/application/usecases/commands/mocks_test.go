package commands_test

import (
	"context"
	"time"

	"rotafila/internal/core/application/usecases/commands"
	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/delivery"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetByPhone(ctx context.Context, phone kernel.Phone) (*courier.Courier, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllInUnit(ctx context.Context, unit kernel.Unit) ([]*courier.Courier, error) {
	args := m.Called(ctx, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllInStatus(ctx context.Context, status courier.Status) ([]*courier.Courier, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEventRepository struct{ mock.Mock }

func (m *MockEventRepository) Add(ctx context.Context, e *delivery.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventRepository) Update(ctx context.Context, e *delivery.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventRepository) GetOpenByCourier(ctx context.Context, courierID kernel.UUID) (*delivery.Event, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Event), args.Error(1)
}

func (m *MockEventRepository) GetAllOpen(ctx context.Context) ([]*delivery.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Event), args.Error(1)
}

func (m *MockEventRepository) GetForPeriod(ctx context.Context, unit kernel.Unit, from, to time.Time) ([]*delivery.Event, error) {
	args := m.Called(ctx, unit, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Event), args.Error(1)
}

func (m *MockEventRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) EventRepository() ports.EventRepository {
	args := m.Called()
	return args.Get(0).(ports.EventRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockEventUoWFactory struct{ mock.Mock }

func (m *MockEventUoWFactory) Create() commands.EventUoW {
	args := m.Called()
	return args.Get(0).(commands.EventUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, phone kernel.Phone, text string) error {
	args := m.Called(ctx, phone, text)
	return args.Error(0)
}

type MockAnnouncer struct{ mock.Mock }

func (m *MockAnnouncer) Announce(unit kernel.Unit, text string) {
	m.Called(unit, text)
}

type MockQueueCache struct{ mock.Mock }

func (m *MockQueueCache) Get(ctx context.Context, unit kernel.Unit) ([]ports.QueueSnapshot, bool) {
	args := m.Called(ctx, unit)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]ports.QueueSnapshot), args.Bool(1)
}

func (m *MockQueueCache) Set(ctx context.Context, unit kernel.Unit, queue []ports.QueueSnapshot) {
	m.Called(ctx, unit, queue)
}

func (m *MockQueueCache) Invalidate(ctx context.Context, unit kernel.Unit) {
	m.Called(ctx, unit)
}

func (m *MockQueueCache) Sweep(ctx context.Context) {
	m.Called(ctx)
}

type MockScheduler struct{ mock.Mock }

func (m *MockScheduler) After(courierID kernel.UUID, delay time.Duration, fn func()) {
	m.Called(courierID, delay, fn)
}

func (m *MockScheduler) Cancel(courierID kernel.UUID) {
	m.Called(courierID)
}

func (m *MockScheduler) CancelAll() {
	m.Called()
}
