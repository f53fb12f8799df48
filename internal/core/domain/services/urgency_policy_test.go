package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kds/internal/core/domain/model/order"
	"kds/internal/core/domain/services"
	"kds/internal/pkg/errs"
)

func TestNewUrgencyPolicy(t *testing.T) {
	t.Run("should accept increasing thresholds", func(t *testing.T) {
		p, err := services.NewUrgencyPolicy(10*time.Minute, 20*time.Minute)

		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, p.WarningAfter())
		assert.Equal(t, 20*time.Minute, p.UrgentAfter())
	})

	t.Run("should reject non-positive warning threshold", func(t *testing.T) {
		_, err := services.NewUrgencyPolicy(0, 20*time.Minute)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "warning_after")
	})

	t.Run("should reject urgent threshold not above warning", func(t *testing.T) {
		_, err := services.NewUrgencyPolicy(20*time.Minute, 20*time.Minute)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "urgent_after")
	})

	t.Run("default policy uses 15 and 30 minutes", func(t *testing.T) {
		p := services.NewDefaultUrgencyPolicy()

		assert.Equal(t, 15*time.Minute, p.WarningAfter())
		assert.Equal(t, 30*time.Minute, p.UrgentAfter())
	})
}

func TestUrgencyPolicy_Classify(t *testing.T) {
	policy := services.NewDefaultUrgencyPolicy()
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		age      time.Duration
		expected order.Urgency
	}{
		{"just created", 0, order.UrgencyNormal},
		{"14 minutes 59 seconds", 14*time.Minute + 59*time.Second, order.UrgencyNormal},
		{"exactly 15 minutes", 15 * time.Minute, order.UrgencyWarning},
		{"29 minutes", 29 * time.Minute, order.UrgencyWarning},
		{"exactly 30 minutes", 30 * time.Minute, order.UrgencyUrgent},
		{"two hours", 2 * time.Hour, order.UrgencyUrgent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			elapsed, err := policy.Classify(now.Add(-tc.age), now)

			require.NoError(t, err)
			assert.Equal(t, tc.age, elapsed.Duration)
			assert.Equal(t, tc.expected, elapsed.Urgency)
		})
	}

	t.Run("zero created_at yields normal with error", func(t *testing.T) {
		elapsed, err := policy.Classify(time.Time{}, now)

		require.ErrorIs(t, err, services.ErrCreatedAtIsZero)
		assert.Equal(t, time.Duration(0), elapsed.Duration)
		assert.Equal(t, order.UrgencyNormal, elapsed.Urgency)
	})

	t.Run("future created_at yields normal with error", func(t *testing.T) {
		elapsed, err := policy.Classify(now.Add(time.Hour), now)

		require.ErrorIs(t, err, services.ErrCreatedAtInFuture)
		assert.Equal(t, services.Elapsed{Urgency: order.UrgencyNormal}, elapsed)
		assert.Equal(t, "0min", elapsed.Label())
	})
}

func TestUrgencyPolicy_ClassifySubMinuteThresholds(t *testing.T) {
	policy, err := services.NewUrgencyPolicy(90*time.Second, 150*time.Second)
	require.NoError(t, err)
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		age      time.Duration
		expected order.Urgency
		label    string
	}{
		{89 * time.Second, order.UrgencyNormal, "1min"},
		{90 * time.Second, order.UrgencyWarning, "1min"},
		{100 * time.Second, order.UrgencyWarning, "1min"},
		{149 * time.Second, order.UrgencyWarning, "2min"},
		{150 * time.Second, order.UrgencyUrgent, "2min"},
	}

	for _, tc := range cases {
		t.Run(tc.age.String(), func(t *testing.T) {
			elapsed, err := policy.Classify(now.Add(-tc.age), now)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, elapsed.Urgency)
			assert.Equal(t, tc.label, elapsed.Label())
		})
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := map[time.Duration]string{
		0:                               "0min",
		59 * time.Second:                "0min",
		12 * time.Minute:                "12min",
		12*time.Minute + 59*time.Second: "12min",
		time.Hour + 5*time.Minute:       "1h 5min",
		3 * time.Hour:                   "3h 0min",
		-time.Minute:                    "0min",
	}

	for d, expected := range cases {
		assert.Equal(t, expected, services.FormatElapsed(d), d.String())
	}
}
