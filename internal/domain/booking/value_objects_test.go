//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"chargeshare/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func slotAt(startOffset, endOffset time.Duration) booking.TimeSlot {
	return booking.ReconstructTimeSlot(baseTime.Add(startOffset), baseTime.Add(endOffset))
}

func TestNewTimeSlot(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		errIs error
	}{
		{name: "valid future slot", start: baseTime.Add(time.Hour), end: baseTime.Add(3 * time.Hour)},
		{name: "zero start", start: time.Time{}, end: baseTime.Add(time.Hour), errIs: booking.ErrMalformedSlot},
		{name: "zero end", start: baseTime.Add(time.Hour), end: time.Time{}, errIs: booking.ErrMalformedSlot},
		{name: "end equals start", start: baseTime.Add(time.Hour), end: baseTime.Add(time.Hour), errIs: booking.ErrInvalidInterval},
		{name: "end before start", start: baseTime.Add(2 * time.Hour), end: baseTime.Add(time.Hour), errIs: booking.ErrInvalidInterval},
		{name: "start equals now", start: baseTime, end: baseTime.Add(time.Hour), errIs: booking.ErrPastStart},
		{name: "start in the past", start: baseTime.Add(-time.Hour), end: baseTime.Add(time.Hour), errIs: booking.ErrPastStart},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			slot, err := booking.NewTimeSlot(c.start, c.end, baseTime)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.start, slot.Start())
			assert.Equal(t, c.end, slot.End())
		})
	}

	t.Run("interval shape checked before past start", func(t *testing.T) {
		// Both checks would fail; the interval error must win.
		_, err := booking.NewTimeSlot(baseTime.Add(-time.Hour), baseTime.Add(-2*time.Hour), baseTime)
		require.ErrorIs(t, err, booking.ErrInvalidInterval)
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	base := slotAt(time.Hour, 3*time.Hour)

	cases := []struct {
		name     string
		other    booking.TimeSlot
		overlaps bool
	}{
		{name: "identical", other: slotAt(time.Hour, 3*time.Hour), overlaps: true},
		{name: "contained", other: slotAt(90*time.Minute, 2*time.Hour), overlaps: true},
		{name: "containing", other: slotAt(0, 4*time.Hour), overlaps: true},
		{name: "partial overlap at end", other: slotAt(2*time.Hour, 4*time.Hour), overlaps: true},
		{name: "partial overlap at start", other: slotAt(0, 90*time.Minute), overlaps: true},
		{name: "back to back after", other: slotAt(3*time.Hour, 5*time.Hour), overlaps: false},
		{name: "back to back before", other: slotAt(0, time.Hour), overlaps: false},
		{name: "disjoint", other: slotAt(5*time.Hour, 6*time.Hour), overlaps: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.overlaps, base.Overlaps(c.other))
			assert.Equal(t, c.overlaps, c.other.Overlaps(base))
		})
	}
}

func TestAccessCode(t *testing.T) {
	t.Run("shape", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code := booking.NewAccessCode()
			require.Len(t, code.String(), 6)
			for _, r := range code.String() {
				assert.True(t, strings.ContainsRune("ABCDEFGHJKMNPQRSTUVWXYZ23456789", r),
					"unexpected character %q in access code", r)
			}
		}
	})

	t.Run("no ambiguous glyphs", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code := booking.NewAccessCode().String()
			assert.NotContains(t, code, "0")
			assert.NotContains(t, code, "O")
			assert.NotContains(t, code, "1")
			assert.NotContains(t, code, "I")
			assert.NotContains(t, code, "L")
		}
	})

	t.Run("zero value", func(t *testing.T) {
		assert.True(t, booking.AccessCode("").IsZero())
		assert.False(t, booking.NewAccessCode().IsZero())
	})
}
