package order_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kds/internal/core/domain/model/order"
	"kds/internal/pkg/errs"
)

var baseTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func TestNewOrder(t *testing.T) {
	t.Run("should create order in New status", func(t *testing.T) {
		o, err := order.NewOrder(order.SourceIFood, "Maria", "1x Açaí 500ml", baseTime)

		require.NoError(t, err)
		assert.Equal(t, order.ID(0), o.ID())
		assert.Equal(t, order.SourceIFood, o.Source())
		assert.Equal(t, "Maria", o.ClientName())
		assert.Equal(t, "1x Açaí 500ml", o.Description())
		assert.Equal(t, order.New, o.Status())
		assert.Equal(t, baseTime, o.CreatedAt())
		assert.Equal(t, o.CreatedAt(), o.UpdatedAt())
		assert.False(t, o.IsTerminal())
	})

	t.Run("should trim client name and description", func(t *testing.T) {
		o, err := order.NewOrder(order.SourceWhatsApp, "  João ", "\t2x Coxinha\n", baseTime)

		require.NoError(t, err)
		assert.Equal(t, "João", o.ClientName())
		assert.Equal(t, "2x Coxinha", o.Description())
	})

	t.Run("should normalize timestamps to UTC microseconds", func(t *testing.T) {
		loc := time.FixedZone("BRT", -3*60*60)
		now := time.Date(2025, 3, 14, 9, 0, 0, 123456789, loc)

		o, err := order.NewOrder(order.Source99Food, "Ana", "1x Pastel", now)

		require.NoError(t, err)
		assert.Equal(t, time.UTC, o.CreatedAt().Location())
		assert.Equal(t, 123456000, o.CreatedAt().Nanosecond())
		assert.True(t, o.CreatedAt().Equal(now.Truncate(time.Microsecond)))
	})

	t.Run("should reject whitespace-only fields", func(t *testing.T) {
		o, err := order.NewOrder(order.SourceIFood, "   ", "\n", baseTime)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "client_name")
		assert.Contains(t, err.Error(), "description")
	})

	t.Run("should reject unknown source", func(t *testing.T) {
		o, err := order.NewOrder(order.Source("fax"), "Maria", "1x Açaí", baseTime)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
	})

	t.Run("should reject zero time", func(t *testing.T) {
		_, err := order.NewOrder(order.SourceIFood, "Maria", "1x Açaí", time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore persisted order", func(t *testing.T) {
		updated := baseTime.Add(5 * time.Minute)

		o, err := order.RestoreOrder(7, order.SourceIFood, "Maria", "1x Açaí", order.Ready, baseTime, updated)

		require.NoError(t, err)
		assert.Equal(t, order.ID(7), o.ID())
		assert.Equal(t, order.Ready, o.Status())
		assert.Equal(t, updated, o.UpdatedAt())
		assert.NoError(t, o.Validate())
	})

	t.Run("should accept channels unknown to this build", func(t *testing.T) {
		o, err := order.RestoreOrder(1, order.Source("rappi"), "Maria", "1x Açaí", order.New, baseTime, baseTime)

		require.NoError(t, err)
		assert.Equal(t, order.Source("rappi"), o.Source())
	})

	t.Run("should reject invalid rows", func(t *testing.T) {
		cases := map[string]func() (*order.Order, error){
			"zero id": func() (*order.Order, error) {
				return order.RestoreOrder(0, order.SourceIFood, "Maria", "x", order.New, baseTime, baseTime)
			},
			"empty source": func() (*order.Order, error) {
				return order.RestoreOrder(1, "", "Maria", "x", order.New, baseTime, baseTime)
			},
			"unknown status": func() (*order.Order, error) {
				return order.RestoreOrder(1, order.SourceIFood, "Maria", "x", order.Unknown, baseTime, baseTime)
			},
			"updated before created": func() (*order.Order, error) {
				return order.RestoreOrder(1, order.SourceIFood, "Maria", "x", order.New, baseTime, baseTime.Add(-time.Second))
			},
		}

		for name, restore := range cases {
			t.Run(name, func(t *testing.T) {
				o, err := restore()

				require.Error(t, err)
				assert.Nil(t, o)
				assert.True(t, errs.IsValidation(err))
			})
		}
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_IsEqual(t *testing.T) {
	a, _ := order.RestoreOrder(1, order.SourceIFood, "Maria", "x", order.New, baseTime, baseTime)
	b, _ := order.RestoreOrder(1, order.SourceWhatsApp, "João", "y", order.Ready, baseTime, baseTime)
	c, _ := order.RestoreOrder(2, order.SourceIFood, "Maria", "x", order.New, baseTime, baseTime)
	unsaved, _ := order.NewOrder(order.SourceIFood, "Maria", "x", baseTime)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(nil))
	assert.False(t, unsaved.IsEqual(unsaved))
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("should walk the happy path", func(t *testing.T) {
		o, _ := order.NewOrder(order.SourceIFood, "Maria", "1x Açaí", baseTime)

		for i, next := range []order.Status{order.Preparing, order.Ready, order.Dispatched} {
			before := o.Status()
			now := baseTime.Add(time.Duration(i+1) * time.Minute)

			previous, err := o.TransitionTo(next, now)

			require.NoError(t, err)
			assert.Equal(t, before, previous)
			assert.Equal(t, next, o.Status())
			assert.Equal(t, now, o.UpdatedAt())
		}
		assert.True(t, o.IsTerminal())
		assert.Equal(t, baseTime, o.CreatedAt())
	})

	t.Run("should keep updated_at strictly increasing when the clock stalls", func(t *testing.T) {
		o, _ := order.NewOrder(order.SourceIFood, "Maria", "1x Açaí", baseTime)

		_, err := o.TransitionTo(order.Preparing, baseTime)
		require.NoError(t, err)
		first := o.UpdatedAt()

		_, err = o.TransitionTo(order.Ready, baseTime.Add(-time.Hour))
		require.NoError(t, err)

		assert.True(t, first.After(baseTime))
		assert.True(t, o.UpdatedAt().After(first))
	})

	t.Run("should reject transitions out of terminal statuses", func(t *testing.T) {
		o, _ := order.RestoreOrder(3, order.SourceIFood, "Maria", "x", order.Cancelled, baseTime, baseTime)

		previous, err := o.TransitionTo(order.Preparing, baseTime.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, previous)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, baseTime, o.UpdatedAt())
	})

	t.Run("should reject skipping a step", func(t *testing.T) {
		o, _ := order.NewOrder(order.SourceIFood, "Maria", "x", baseTime)

		_, err := o.TransitionTo(order.Dispatched, baseTime.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.New, o.Status())
	})
}

func TestCompareForDisplay(t *testing.T) {
	mk := func(id order.ID, status order.Status, created time.Time) *order.Order {
		o, err := order.RestoreOrder(id, order.SourceIFood, "c", "d", status, created, created)
		require.NoError(t, err)
		return o
	}

	orders := []*order.Order{
		mk(1, order.Ready, baseTime),
		mk(2, order.New, baseTime.Add(2*time.Minute)),
		mk(3, order.New, baseTime.Add(time.Minute)),
		mk(5, order.Preparing, baseTime),
		mk(4, order.Preparing, baseTime),
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return order.CompareForDisplay(orders[i], orders[j]) < 0
	})

	ids := make([]order.ID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	assert.Equal(t, []order.ID{3, 2, 4, 5, 1}, ids)
}
