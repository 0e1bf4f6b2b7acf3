package repository

import (
	"context"
	"encoding/json"
	"time"

	"chargeshare/internal/domain/booking"
	"chargeshare/internal/domain/charger"
	"chargeshare/internal/infra"
	"chargeshare/internal/infra/db"
	"chargeshare/internal/pkg/pgconv"
	"chargeshare/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CommandReads serves the write side's validation lookups. Unlike the read
// stores it returns snapshots that reconstruct into aggregates.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(db db.DBTX) *CommandReads {
	return &CommandReads{db: db}
}

func (r *CommandReads) ChargerByID(ctx context.Context, id uuid.UUID) (*shared.ChargerSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, owner_id, name, status, hourly_rate_cents, availability, created_at, updated_at
		FROM chargers
		WHERE id = $1`, id)

	var (
		snapshot         shared.ChargerSnapshot
		status           string
		availabilityJSON []byte
	)
	err := row.Scan(
		&snapshot.ID, &snapshot.OwnerID, &snapshot.Name, &status,
		&snapshot.HourlyRateCents, &availabilityJSON,
		&snapshot.CreatedAt, &snapshot.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("charger not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find charger by ID", err)
	}

	snapshot.Status = charger.Status(status)
	if err := json.Unmarshal(availabilityJSON, &snapshot.Availability); err != nil {
		return nil, infra.WrapRepoErr("failed to decode charger availability", err)
	}
	return &snapshot, nil
}

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT b.id, b.charger_id, b.user_id, c.owner_id,
		       b.start_time, b.end_time, b.status,
		       b.hourly_rate_cents, b.duration_hundredths, b.total_cents,
		       b.platform_fee_cents, b.owner_earnings_cents, b.fee_rate_bps,
		       b.payment_status, b.payment_processed_at, b.access_code,
		       b.created_at, b.updated_at
		FROM bookings b
		JOIN chargers c ON c.id = b.charger_id
		WHERE b.id = $1`, id)

	var (
		snapshot      shared.BookingSnapshot
		status        string
		paymentStatus string
		processedAt   pgtype.Timestamptz
	)
	err := row.Scan(
		&snapshot.ID, &snapshot.ChargerID, &snapshot.UserID, &snapshot.OwnerID,
		&snapshot.StartTime, &snapshot.EndTime, &status,
		&snapshot.HourlyRateCents, &snapshot.DurationHundredths, &snapshot.TotalCents,
		&snapshot.FeeCents, &snapshot.OwnerEarningsCents, &snapshot.FeeRateBps,
		&paymentStatus, &processedAt, &snapshot.AccessCode,
		&snapshot.CreatedAt, &snapshot.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	snapshot.Status = booking.Status(status)
	snapshot.PaymentStatus = booking.PaymentStatus(paymentStatus)
	snapshot.PaymentProcessedAt = pgconv.TimePtrFromPgtype(processedAt)
	return &snapshot, nil
}

func (r *CommandReads) BlockingSlotsForCharger(ctx context.Context, chargerID uuid.UUID, statuses []booking.Status) ([]booking.TimeSlot, error) {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}

	rows, err := r.db.Query(ctx, `
		SELECT start_time, end_time
		FROM bookings
		WHERE charger_id = $1 AND status = ANY($2)`,
		chargerID, names)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocking slots", err)
	}
	defer rows.Close()

	slots := make([]booking.TimeSlot, 0)
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocking slot", err)
		}
		slots = append(slots, booking.ReconstructTimeSlot(start, end))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocking slots", err)
	}
	return slots, nil
}

func (r *CommandReads) OverdueActiveBookings(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id
		FROM bookings
		WHERE status = 'active' AND end_time <= $1
		ORDER BY end_time
		LIMIT $2`, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overdue bookings", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan overdue booking ID", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate overdue bookings", err)
	}
	return ids, nil
}
