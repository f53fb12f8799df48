package queries_test

import (
	"context"
	"time"

	"kds/internal/core/domain/model/order"
	"kds/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) Scan(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderReader) CountByStatus(ctx context.Context, statuses []order.Status) (map[order.Status]int, error) {
	args := m.Called(ctx, statuses)
	counts, _ := args.Get(0).(map[order.Status]int)
	return counts, args.Error(1)
}

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() ports.Clock {
	return ports.ClockFunc(func() time.Time { return fixedNow })
}

func orderAged(id order.ID, status order.Status, age time.Duration) *order.Order {
	created := fixedNow.Add(-age)
	o, err := order.RestoreOrder(id, order.SourceIFood, "Maria", "1x Açaí", status, created, created)
	if err != nil {
		panic(err)
	}
	return o
}
