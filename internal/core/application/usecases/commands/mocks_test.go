package commands_test

import (
	"context"
	"time"

	"kds/internal/core/application/usecases/commands"
	"kds/internal/core/domain/model/order"
	"kds/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) (order.ID, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(order.ID), args.Error(1)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Scan(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) (bool, error) {
	args := m.Called(ctx, o, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, statuses []order.Status) (map[order.Status]int, error) {
	args := m.Called(ctx, statuses)
	counts, _ := args.Get(0).(map[order.Status]int)
	return counts, args.Error(1)
}

func (m *MockOrderRepository) DeleteOlderThan(
	ctx context.Context,
	threshold time.Time,
	statuses []order.Status,
	sweptAt time.Time,
) (int64, error) {
	args := m.Called(ctx, threshold, statuses, sweptAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id order.ID, deletedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, deletedAt)
	return args.Bool(0), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() ports.Clock {
	return ports.ClockFunc(func() time.Time { return fixedNow })
}

// newUoW wires a factory returning one unit of work bound to repo.
func newUoW(repo *MockOrderRepository) (*MockOrderUoWFactory, *MockOrderUoW) {
	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(repo).Maybe()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}

func restored(id order.ID, status order.Status) *order.Order {
	created := fixedNow.Add(-10 * time.Minute)
	o, err := order.RestoreOrder(id, order.SourceIFood, "Maria", "1x Açaí", status, created, created)
	if err != nil {
		panic(err)
	}
	return o
}
