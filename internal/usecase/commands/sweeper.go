package commands

import (
	"context"
	"log/slog"
	"time"

	"chargeshare/internal/domain/booking"
	"chargeshare/internal/infra"
	"chargeshare/internal/pkg/clock"
	"chargeshare/internal/pkg/errs"
	"chargeshare/internal/usecase/shared"

	"github.com/google/uuid"
)

const sweepBatchSize = 100

type CompletionSweeper interface {
	// SweepDueCompletions moves active bookings whose end time has passed to
	// completed and settles their payment. Returns the number swept.
	SweepDueCompletions(ctx context.Context) (int, error)
}

type completionSweeperImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCompletionSweeper(uow shared.UnitOfWork, clock clock.Clock) CompletionSweeper {
	return &completionSweeperImpl{uow: uow, clock: clock}
}

func (s *completionSweeperImpl) SweepDueCompletions(ctx context.Context) (int, error) {
	now := s.clock.Now()

	due, err := s.uow.CommandReads().OverdueActiveBookings(ctx, now, sweepBatchSize)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	swept := 0
	for _, id := range due {
		if err := s.completeOne(ctx, id, now); err != nil {
			// Keep sweeping; the next run retries whatever failed here.
			slog.Warn("failed to complete overdue booking", "booking_id", id, "error", err)
			continue
		}
		swept++
	}
	return swept, nil
}

func (s *completionSweeperImpl) completeOne(ctx context.Context, id uuid.UUID, now time.Time) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity := snapshot.ToDomain()
		if entity.Status() == booking.StatusCompleted {
			return nil
		}
		if err := entity.CompleteBySystem(now); err != nil {
			return err
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), entity, snapshot.Status); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				// Someone else moved the booking after our read; the next run
				// re-evaluates it.
				return nil
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return enqueueBookingNotification(ctx, tx, id, "booking_status_changed", now)
	})
}
