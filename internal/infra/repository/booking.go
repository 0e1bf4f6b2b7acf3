package repository

import (
	"context"
	"errors"

	"chargeshare/internal/domain/booking"
	"chargeshare/internal/infra"
	"chargeshare/internal/infra/db"
	"chargeshare/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgForeignKeyViolated = "23503"
	pgExclusionViolation = "23P01"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	pricing := b.Pricing()
	payment := b.Payment()

	_, err := tx.Exec(ctx, `
		INSERT INTO bookings (
			id, charger_id, user_id, start_time, end_time, status,
			hourly_rate_cents, duration_hundredths, total_cents,
			platform_fee_cents, owner_earnings_cents, fee_rate_bps,
			payment_status, payment_processed_at, access_code,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		b.ID(), b.ChargerID(), b.UserID(), b.Slot().Start(), b.Slot().End(), b.Status().String(),
		pricing.HourlyRateCents, pricing.DurationHundredths, pricing.TotalCents,
		pricing.FeeCents, pricing.OwnerEarningsCents, pricing.FeeRateBps,
		string(payment.Status), pgconv.TimePtrToPgtype(payment.ProcessedAt), string(b.AccessCode()),
		b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return uuid.Nil, classifyWriteErr("failed to create booking", err)
	}

	return b.ID(), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking, expected booking.Status) error {
	payment := b.Payment()

	tag, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $2,
		    payment_status = $3,
		    payment_processed_at = $4,
		    access_code = $5,
		    updated_at = $6
		WHERE id = $1 AND status = $7`,
		b.ID(), b.Status().String(),
		string(payment.Status), pgconv.TimePtrToPgtype(payment.ProcessedAt),
		string(b.AccessCode()), b.UpdatedAt(),
		expected.String(),
	)
	if err != nil {
		return classifyWriteErr("failed to update booking status", err)
	}
	// Bookings are never deleted, so zero rows means the status moved under us.
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

func classifyWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgForeignKeyViolated:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
