//go:build unit

package booking_test

import (
	"math/rand"
	"testing"
	"time"

	"chargeshare/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeCalculatorQuote(t *testing.T) {
	calc := booking.NewFeeCalculator(1000) // 10%

	cases := []struct {
		name               string
		rateCents          int64
		duration           time.Duration
		durationHundredths int64
		totalCents         int64
		feeCents           int64
	}{
		{
			name:      "two hours at five dollars",
			rateCents: 500, duration: 2 * time.Hour,
			durationHundredths: 200, totalCents: 1000, feeCents: 100,
		},
		{
			name:      "ninety minutes at five dollars",
			rateCents: 500, duration: 90 * time.Minute,
			durationHundredths: 150, totalCents: 750, feeCents: 75,
		},
		{
			name:      "one minute at one dollar",
			rateCents: 100, duration: time.Minute,
			durationHundredths: 2, totalCents: 2, feeCents: 0,
		},
		{
			name:      "half a hundredth-hour rounds up",
			rateCents: 100, duration: 18 * time.Second,
			durationHundredths: 1, totalCents: 1, feeCents: 0,
		},
		{
			name:      "odd rate forces cent rounding",
			rateCents: 333, duration: 45 * time.Minute,
			durationHundredths: 75, totalCents: 250, feeCents: 25,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			slot := slotAt(time.Hour, time.Hour+c.duration)
			quote := calc.Quote(c.rateCents, slot)

			assert.Equal(t, c.durationHundredths, quote.DurationHundredths)
			assert.Equal(t, c.totalCents, quote.TotalCents)
			assert.Equal(t, c.feeCents, quote.FeeCents)
			assert.Equal(t, c.totalCents-c.feeCents, quote.OwnerEarningsCents)
			assert.True(t, quote.Consistent())
		})
	}
}

func TestFeeCalculatorClampsRate(t *testing.T) {
	slot := slotAt(time.Hour, 2*time.Hour)

	t.Run("negative rate charges no fee", func(t *testing.T) {
		quote := booking.NewFeeCalculator(-100).Quote(500, slot)
		assert.Zero(t, quote.FeeCents)
		assert.Equal(t, quote.TotalCents, quote.OwnerEarningsCents)
	})

	t.Run("rate above 100 percent charges no fee", func(t *testing.T) {
		quote := booking.NewFeeCalculator(10001).Quote(500, slot)
		assert.Zero(t, quote.FeeCents)
	})

	t.Run("full commission takes everything", func(t *testing.T) {
		quote := booking.NewFeeCalculator(10000).Quote(500, slot)
		assert.Equal(t, quote.TotalCents, quote.FeeCents)
		assert.Zero(t, quote.OwnerEarningsCents)
	})
}

// Whatever the inputs, fee plus earnings must recompose the total exactly.
func TestQuoteAlwaysConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		rate := rng.Int63n(100000) + 1
		bps := rng.Int63n(10001)
		minutes := rng.Int63n(24*60-1) + 1

		calc := booking.NewFeeCalculator(bps)
		slot := slotAt(time.Hour, time.Hour+time.Duration(minutes)*time.Minute)
		quote := calc.Quote(rate, slot)

		require.True(t, quote.Consistent(),
			"rate=%d bps=%d minutes=%d quote=%+v", rate, bps, minutes, quote)
		require.GreaterOrEqual(t, quote.FeeCents, int64(0))
		require.GreaterOrEqual(t, quote.OwnerEarningsCents, int64(0))
		require.LessOrEqual(t, quote.FeeCents, quote.TotalCents)
	}
}

func TestQuoteDurationHours(t *testing.T) {
	quote := booking.Quote{DurationHundredths: 150}
	assert.InDelta(t, 1.5, quote.DurationHours(), 1e-9)
}
