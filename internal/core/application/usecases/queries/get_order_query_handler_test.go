package queries_test

import (
	"testing"
	"time"

	"kds/internal/core/application/usecases/queries"
	"kds/internal/core/domain/model/order"
	"kds/internal/core/domain/services"
	"kds/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	q, err := queries.NewGetOrderQuery(4)
	require.NoError(t, err)
	assert.Equal(t, order.ID(4), q.OrderID())

	_, err = queries.NewGetOrderQuery(0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	t.Run("returns decorated order", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		reader.On("Get", ctx, order.ID(4)).Return(orderAged(4, order.Ready, 31*time.Minute), nil).Once()

		q, _ := queries.NewGetOrderQuery(4)
		h := queries.NewGetOrderQueryHandler(reader, services.NewDefaultUrgencyPolicy(), fixedClock(), nil)
		view, err := h.Handle(ctx, q)

		require.NoError(t, err)
		assert.Equal(t, order.ID(4), view.ID)
		assert.Equal(t, order.Ready, view.Status)
		assert.Equal(t, order.UrgencyUrgent, view.Urgency)
		assert.Equal(t, "31min", view.ElapsedLabel)
	})

	t.Run("missing order", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		reader.On("Get", ctx, order.ID(4)).Return(nil, errs.NewObjectNotFoundError("order", order.ID(4))).Once()

		q, _ := queries.NewGetOrderQuery(4)
		h := queries.NewGetOrderQueryHandler(reader, services.NewDefaultUrgencyPolicy(), fixedClock(), nil)
		_, err := h.Handle(ctx, q)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("not constructed", func(t *testing.T) {
		h := queries.NewGetOrderQueryHandler(new(MockOrderReader), services.NewDefaultUrgencyPolicy(), fixedClock(), nil)
		_, err := h.Handle(t.Context(), queries.GetOrderQuery{})
		require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}
