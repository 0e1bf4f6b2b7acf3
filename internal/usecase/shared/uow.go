package shared

import (
	"context"
	"time"

	"chargeshare/internal/domain/booking"
	"chargeshare/internal/domain/charger"
	"chargeshare/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Chargers() ChargerRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ChargerByID(ctx context.Context, id uuid.UUID) (*ChargerSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// BlockingSlotsForCharger returns the slots of bookings whose status is in
	// the given set, the conflict detector's input.
	BlockingSlotsForCharger(ctx context.Context, chargerID uuid.UUID, statuses []booking.Status) ([]booking.TimeSlot, error)
	// OverdueActiveBookings lists active bookings whose end has passed.
	OverdueActiveBookings(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error)
}

type ChargerSnapshot struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Name            string
	Status          charger.Status
	HourlyRateCents int64
	Availability    charger.Availability
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s *ChargerSnapshot) ToDomain() *charger.Charger {
	return charger.ReconstructCharger(
		s.ID, s.OwnerID, s.Name, s.Status, s.HourlyRateCents, s.Availability, s.CreatedAt, s.UpdatedAt,
	)
}

type BookingSnapshot struct {
	ID                 uuid.UUID
	ChargerID          uuid.UUID
	UserID             uuid.UUID
	OwnerID            uuid.UUID
	StartTime          time.Time
	EndTime            time.Time
	Status             booking.Status
	HourlyRateCents    int64
	DurationHundredths int64
	TotalCents         int64
	FeeCents           int64
	OwnerEarningsCents int64
	FeeRateBps         int64
	PaymentStatus      booking.PaymentStatus
	PaymentProcessedAt *time.Time
	AccessCode         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (s *BookingSnapshot) ToDomain() *booking.Booking {
	return booking.ReconstructBooking(
		s.ID, s.ChargerID, s.UserID, s.OwnerID,
		booking.ReconstructTimeSlot(s.StartTime, s.EndTime),
		s.Status,
		booking.Quote{
			HourlyRateCents:    s.HourlyRateCents,
			DurationHundredths: s.DurationHundredths,
			TotalCents:         s.TotalCents,
			FeeCents:           s.FeeCents,
			OwnerEarningsCents: s.OwnerEarningsCents,
			FeeRateBps:         s.FeeRateBps,
		},
		booking.Payment{Status: s.PaymentStatus, ProcessedAt: s.PaymentProcessedAt},
		booking.AccessCode(s.AccessCode),
		s.CreatedAt, s.UpdatedAt,
	)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// UpdateStatus persists the mutable transition fields: status, payment
	// state, access code, updated_at. The write only applies while the stored
	// status still equals expected; otherwise it fails with a conflict, so a
	// transition committed after the caller's read is never overwritten.
	UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking, expected booking.Status) error
}

type ChargerRepository interface {
	UpdateAvailability(ctx context.Context, tx db.DBTX, c *charger.Charger) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
