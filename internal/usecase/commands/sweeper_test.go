//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"chargeshare/internal/domain/booking"
	"chargeshare/internal/infra"
	"chargeshare/internal/pkg/clock"
	"chargeshare/internal/usecase/commands"
	"chargeshare/tests/common/builder"
	"chargeshare/tests/common/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepDueCompletions(t *testing.T) {
	ctx := context.Background()

	t.Run("completes overdue active bookings only", func(t *testing.T) {
		store := newFakeStore()
		// Two days past every builder slot's end time.
		mock := clock.NewMockClock(builder.BaseTime.Add(72 * time.Hour))
		sweeper := commands.NewCompletionSweeper(newFakeUoW(store), mock)

		chg := builder.NewChargerBuilder()
		store.putCharger(chg.BuildSnapshot())

		seed := func(status booking.Status, endOffset time.Duration) uuid.UUID {
			b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
				b.ChargerID = chg.ID
				b.OwnerID = chg.OwnerID
				b.End = builder.BaseTime.Add(endOffset)
			})
			snap := b.BuildSnapshot(status)
			store.putBooking(snap)
			return snap.ID
		}

		overdueID := seed(booking.StatusActive, 26*time.Hour)
		runningID := seed(booking.StatusActive, 96*time.Hour)
		pendingID := seed(booking.StatusPending, 26*time.Hour)
		cancelledID := seed(booking.StatusCancelled, 26*time.Hour)

		swept, err := sweeper.SweepDueCompletions(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, swept)

		status, _ := store.bookingStatus(overdueID)
		assert.Equal(t, booking.StatusCompleted, status)

		snap := store.bookings[overdueID]
		assert.Equal(t, booking.PaymentCompleted, snap.PaymentStatus)
		require.NotNil(t, snap.PaymentProcessedAt)
		assert.Equal(t, mock.Now(), *snap.PaymentProcessedAt)

		assert.Equal(t, []string{"booking_status_changed"}, store.topics(),
			"auto-completion notifies like a user-driven transition")

		for id, want := range map[uuid.UUID]booking.Status{
			runningID:   booking.StatusActive,
			pendingID:   booking.StatusPending,
			cancelledID: booking.StatusCancelled,
		} {
			status, _ := store.bookingStatus(id)
			assert.Equal(t, want, status)
		}
	})

	t.Run("nothing due", func(t *testing.T) {
		store := newFakeStore()
		mock := clock.NewMockClock(builder.BaseTime)
		sweeper := commands.NewCompletionSweeper(newFakeUoW(store), mock)

		swept, err := sweeper.SweepDueCompletions(ctx)
		require.NoError(t, err)
		assert.Zero(t, swept)
	})

	t.Run("listing failure aborts the run", func(t *testing.T) {
		store := newFakeStore()
		store.overdueErr = infra.WrapRepoErr("connection reset", errNoRows)
		sweeper := commands.NewCompletionSweeper(newFakeUoW(store), clock.NewMockClock(builder.BaseTime))

		_, err := sweeper.SweepDueCompletions(ctx)
		testutil.RequireErrorIs(t, err, commands.ErrDatabaseOperationFailed)
	})

	t.Run("per-booking failure is skipped, not fatal", func(t *testing.T) {
		store := newFakeStore()
		mock := clock.NewMockClock(builder.BaseTime.Add(72 * time.Hour))
		sweeper := commands.NewCompletionSweeper(newFakeUoW(store), mock)

		chg := builder.NewChargerBuilder()
		store.putCharger(chg.BuildSnapshot())
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ChargerID = chg.ID
			b.OwnerID = chg.OwnerID
		})
		store.putBooking(b.BuildSnapshot(booking.StatusActive))

		store.updateStatusErr = infra.WrapRepoErr("connection reset", errNoRows)

		swept, err := sweeper.SweepDueCompletions(ctx)
		require.NoError(t, err)
		assert.Zero(t, swept)
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		store := newFakeStore()
		mock := clock.NewMockClock(builder.BaseTime.Add(72 * time.Hour))
		sweeper := commands.NewCompletionSweeper(newFakeUoW(store), mock)

		chg := builder.NewChargerBuilder()
		store.putCharger(chg.BuildSnapshot())
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ChargerID = chg.ID
			b.OwnerID = chg.OwnerID
		})
		store.putBooking(b.BuildSnapshot(booking.StatusActive))

		swept, err := sweeper.SweepDueCompletions(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, swept)

		swept, err = sweeper.SweepDueCompletions(ctx)
		require.NoError(t, err)
		assert.Zero(t, swept)
	})
}
