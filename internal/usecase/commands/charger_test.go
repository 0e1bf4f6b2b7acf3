//go:build unit

package commands_test

import (
	"context"
	"testing"

	"chargeshare/internal/domain/charger"
	"chargeshare/internal/domain/user"
	reqdto "chargeshare/internal/handler/dto/request"
	"chargeshare/internal/pkg/clock"
	"chargeshare/internal/usecase/commands"
	"chargeshare/internal/usecase/queries"
	"chargeshare/tests/common/builder"
	"chargeshare/tests/common/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chargerFixture struct {
	store *fakeStore
	cmds  commands.ChargerCommands
}

func newChargerFixture() *chargerFixture {
	store := newFakeStore()
	q := queries.NewChargerQueries(&fakeChargerReadStore{store: store})
	return &chargerFixture{
		store: store,
		cmds:  commands.NewChargerUseCase(newFakeUoW(store), q, clock.NewMockClock(builder.BaseTime)),
	}
}

func weekdayMornings() reqdto.UpdateAvailabilityRequest {
	return reqdto.UpdateAvailabilityRequest{
		Schedule: []reqdto.WeeklyWindowRequest{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00"},
			{DayOfWeek: 2, StartTime: "08:00", EndTime: "12:00"},
		},
		BlockedDates: []string{"2026-09-10"},
	}
}

func TestUpdateChargerAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("owner replaces the schedule", func(t *testing.T) {
		f := newChargerFixture()
		chg := builder.NewChargerBuilder()
		f.store.putCharger(chg.BuildSnapshot())

		view, err := f.cmds.UpdateAvailability(ctx, chg.ID, chg.OwnerID, user.RoleUser, weekdayMornings())
		require.NoError(t, err)

		assert.Len(t, view.Availability.Schedule, 2)
		require.Len(t, view.Availability.BlockedDates, 1)
		assert.Equal(t, charger.Date{Year: 2026, Month: 9, Day: 10}, view.Availability.BlockedDates[0])

		stored := f.store.chargers[chg.ID]
		assert.Len(t, stored.Availability.Schedule, 2)
	})

	t.Run("admin may manage any charger", func(t *testing.T) {
		f := newChargerFixture()
		chg := builder.NewChargerBuilder()
		f.store.putCharger(chg.BuildSnapshot())

		_, err := f.cmds.UpdateAvailability(ctx, chg.ID, uuid.New(), user.RoleAdmin, weekdayMornings())
		require.NoError(t, err)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		f := newChargerFixture()
		chg := builder.NewChargerBuilder()
		f.store.putCharger(chg.BuildSnapshot())

		_, err := f.cmds.UpdateAvailability(ctx, chg.ID, uuid.New(), user.RoleUser, weekdayMornings())
		testutil.RequireErrorIs(t, err, commands.ErrNotChargerOwner)

		stored := f.store.chargers[chg.ID]
		assert.Empty(t, stored.Availability.Schedule)
	})

	t.Run("unknown charger", func(t *testing.T) {
		f := newChargerFixture()

		_, err := f.cmds.UpdateAvailability(ctx, uuid.New(), uuid.New(), user.RoleAdmin, weekdayMornings())
		testutil.RequireErrorIs(t, err, commands.ErrChargerNotFound)
	})

	t.Run("invalid window", func(t *testing.T) {
		f := newChargerFixture()
		chg := builder.NewChargerBuilder()
		f.store.putCharger(chg.BuildSnapshot())

		req := reqdto.UpdateAvailabilityRequest{
			Schedule: []reqdto.WeeklyWindowRequest{{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"}},
		}
		_, err := f.cmds.UpdateAvailability(ctx, chg.ID, chg.OwnerID, user.RoleUser, req)
		testutil.RequireErrorIs(t, err, commands.ErrInvalidAvailability)
	})

	t.Run("malformed blocked date", func(t *testing.T) {
		f := newChargerFixture()
		chg := builder.NewChargerBuilder()
		f.store.putCharger(chg.BuildSnapshot())

		req := reqdto.UpdateAvailabilityRequest{BlockedDates: []string{"10/09/2026"}}
		_, err := f.cmds.UpdateAvailability(ctx, chg.ID, chg.OwnerID, user.RoleUser, req)
		testutil.RequireErrorIs(t, err, commands.ErrInvalidAvailability)
	})

	t.Run("new blocked date in the past", func(t *testing.T) {
		f := newChargerFixture()
		chg := builder.NewChargerBuilder()
		f.store.putCharger(chg.BuildSnapshot())

		req := reqdto.UpdateAvailabilityRequest{BlockedDates: []string{"2026-08-25"}}
		_, err := f.cmds.UpdateAvailability(ctx, chg.ID, chg.OwnerID, user.RoleUser, req)
		testutil.RequireErrorIs(t, err, commands.ErrBlockedDateInPast)
	})

	t.Run("clearing availability reopens the charger", func(t *testing.T) {
		f := newChargerFixture()
		chg := builder.NewChargerBuilder().With(func(b *builder.ChargerBuilder) {
			b.Availability = charger.Availability{
				Schedule: []charger.WeeklyWindow{{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00"}},
			}
		})
		f.store.putCharger(chg.BuildSnapshot())

		view, err := f.cmds.UpdateAvailability(ctx, chg.ID, chg.OwnerID, user.RoleUser, reqdto.UpdateAvailabilityRequest{})
		require.NoError(t, err)
		assert.Empty(t, view.Availability.Schedule)
		assert.Empty(t, view.Availability.BlockedDates)
	})
}
