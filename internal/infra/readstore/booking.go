package readstore

import (
	"context"

	"chargeshare/internal/infra"
	"chargeshare/internal/infra/db"
	"chargeshare/internal/pkg/pgconv"
	"chargeshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingViewColumns = `
	b.id, b.charger_id, c.name, b.user_id, c.owner_id,
	b.start_time, b.end_time, b.status,
	b.hourly_rate_cents, b.duration_hundredths, b.total_cents,
	b.platform_fee_cents, b.owner_earnings_cents,
	b.payment_status, b.payment_processed_at, b.access_code,
	b.created_at, b.updated_at`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT`+bookingViewColumns+`
		FROM bookings b
		JOIN chargers c ON c.id = b.charger_id
		WHERE b.id = $1`, id)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.charger_id, c.name, b.start_time, b.end_time, b.status, b.total_cents, b.created_at
		FROM bookings b
		JOIN chargers c ON c.id = b.charger_id
		WHERE b.user_id = $1
		ORDER BY b.start_time DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	return scanBookingListItems(rows)
}

func (r *BookingReadStore) FindByChargerID(ctx context.Context, chargerID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.charger_id, c.name, b.start_time, b.end_time, b.status, b.total_cents, b.created_at
		FROM bookings b
		JOIN chargers c ON c.id = b.charger_id
		WHERE b.charger_id = $1
		ORDER BY b.start_time DESC`, chargerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by charger", err)
	}
	defer rows.Close()

	return scanBookingListItems(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		view        queries.BookingView
		processedAt pgtype.Timestamptz
		accessCode  string
	)
	err := row.Scan(
		&view.ID, &view.ChargerID, &view.ChargerName, &view.UserID, &view.OwnerID,
		&view.StartTime, &view.EndTime, &view.Status,
		&view.HourlyRateCents, &view.DurationHundredths, &view.TotalCents,
		&view.PlatformFeeCents, &view.OwnerEarningsCents,
		&view.PaymentStatus, &processedAt, &accessCode,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.PaymentProcessedAt = pgconv.TimePtrFromPgtype(processedAt)
	if accessCode != "" {
		view.AccessCode = &accessCode
	}
	return &view, nil
}

func scanBookingListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	result := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.ChargerID, &item.ChargerName,
			&item.StartTime, &item.EndTime, &item.Status,
			&item.TotalCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}
