//go:build unit

package charger_test

import (
	"testing"
	"time"

	"chargeshare/internal/domain/charger"
	"chargeshare/tests/common/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newApprovedCharger(t *testing.T) *charger.Charger {
	t.Helper()
	return charger.ReconstructCharger(
		uuid.New(), uuid.New(), "Garage charger", charger.StatusApproved, 500,
		charger.Availability{}, now, now,
	)
}

func TestNewCharger(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, err := charger.NewCharger(uuid.New(), "Driveway socket", 350, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, c.ID())
		assert.Equal(t, charger.StatusPending, c.Status())
		assert.Empty(t, c.Availability().Schedule)
		assert.Equal(t, now, c.CreatedAt())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := charger.NewCharger(uuid.New(), "", 350, now)
		testutil.RequireErrorIs(t, err, charger.ErrEmptyName)
	})

	t.Run("non-positive rate", func(t *testing.T) {
		_, err := charger.NewCharger(uuid.New(), "Driveway socket", 0, now)
		testutil.RequireErrorIs(t, err, charger.ErrInvalidHourlyRate)

		_, err = charger.NewCharger(uuid.New(), "Driveway socket", -100, now)
		testutil.RequireErrorIs(t, err, charger.ErrInvalidHourlyRate)
	})
}

func TestUpdateAvailability(t *testing.T) {
	t.Run("replaces schedule and blocked dates", func(t *testing.T) {
		c := newApprovedCharger(t)
		next := charger.Availability{
			Schedule:     []charger.WeeklyWindow{{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}},
			BlockedDates: []charger.Date{charger.DateOf(now.AddDate(0, 0, 7))},
		}

		require.NoError(t, c.UpdateAvailability(next, now))
		if diff := cmp.Diff(next, c.Availability()); diff != "" {
			t.Errorf("availability mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects invalid window", func(t *testing.T) {
		c := newApprovedCharger(t)
		next := charger.Availability{
			Schedule: []charger.WeeklyWindow{{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"}},
		}

		testutil.RequireErrorIs(t, c.UpdateAvailability(next, now), charger.ErrInvalidWindow)
	})

	t.Run("rejects new blocked date in the past", func(t *testing.T) {
		c := newApprovedCharger(t)
		next := charger.Availability{
			BlockedDates: []charger.Date{charger.DateOf(now.AddDate(0, 0, -1))},
		}

		testutil.RequireErrorIs(t, c.UpdateAvailability(next, now), charger.ErrBlockedDateInPast)
	})

	t.Run("blocking today is allowed", func(t *testing.T) {
		c := newApprovedCharger(t)
		next := charger.Availability{
			BlockedDates: []charger.Date{charger.DateOf(now)},
		}

		require.NoError(t, c.UpdateAvailability(next, now))
	})

	t.Run("already-present past dates survive resubmission", func(t *testing.T) {
		pastDate := charger.DateOf(now.AddDate(0, 0, -30))
		c := charger.ReconstructCharger(
			uuid.New(), uuid.New(), "Garage charger", charger.StatusApproved, 500,
			charger.Availability{BlockedDates: []charger.Date{pastDate}}, now, now,
		)

		next := charger.Availability{
			BlockedDates: []charger.Date{pastDate, charger.DateOf(now.AddDate(0, 0, 3))},
		}
		require.NoError(t, c.UpdateAvailability(next, now))
		assert.Len(t, c.Availability().BlockedDates, 2)
	})
}

func TestChargerStatus(t *testing.T) {
	assert.True(t, charger.StatusApproved.IsBookable())
	assert.False(t, charger.StatusPending.IsBookable())
	assert.False(t, charger.StatusRejected.IsBookable())
}

func TestIsOwnedBy(t *testing.T) {
	ownerID := uuid.New()
	c := charger.ReconstructCharger(
		uuid.New(), ownerID, "Garage charger", charger.StatusApproved, 500,
		charger.Availability{}, now, now,
	)

	assert.True(t, c.IsOwnedBy(ownerID))
	assert.False(t, c.IsOwnedBy(uuid.New()))
}
