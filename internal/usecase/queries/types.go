package queries

import (
	"time"

	"chargeshare/internal/domain/charger"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	ChargerID          uuid.UUID  `json:"charger_id"`
	ChargerName        string     `json:"charger_name"`
	UserID             uuid.UUID  `json:"user_id"`
	OwnerID            uuid.UUID  `json:"owner_id"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	Status             string     `json:"status"`
	HourlyRateCents    int64      `json:"hourly_rate_cents"`
	DurationHundredths int64      `json:"duration_hundredths"`
	TotalCents         int64      `json:"total_cents"`
	PlatformFeeCents   int64      `json:"platform_fee_cents"`
	OwnerEarningsCents int64      `json:"owner_earnings_cents"`
	PaymentStatus      string     `json:"payment_status"`
	PaymentProcessedAt *time.Time `json:"payment_processed_at,omitempty"`
	AccessCode         *string    `json:"access_code,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID          uuid.UUID `json:"id"`
	ChargerID   uuid.UUID `json:"charger_id"`
	ChargerName string    `json:"charger_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"total_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

type ChargerView struct {
	ID              uuid.UUID            `json:"id"`
	OwnerID         uuid.UUID            `json:"owner_id"`
	Name            string               `json:"name"`
	Status          string               `json:"status"`
	HourlyRateCents int64                `json:"hourly_rate_cents"`
	Availability    charger.Availability `json:"availability"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

const RoleAdmin = "admin"
