package response

import (
	"time"

	"chargeshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ChargerID          uuid.UUID  `json:"chargerId"`
	ChargerName        string     `json:"chargerName"`
	UserID             uuid.UUID  `json:"userId"`
	OwnerID            uuid.UUID  `json:"ownerId"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            time.Time  `json:"endTime"`
	Status             string     `json:"status"`
	HourlyRateCents    int64      `json:"hourlyRateCents"`
	DurationHundredths int64      `json:"durationHundredths"`
	TotalCents         int64      `json:"totalCents"`
	PlatformFeeCents   int64      `json:"platformFeeCents"`
	OwnerEarningsCents int64      `json:"ownerEarningsCents"`
	PaymentStatus      string     `json:"paymentStatus"`
	PaymentProcessedAt *time.Time `json:"paymentProcessedAt,omitempty"`
	AccessCode         *string    `json:"accessCode,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID          uuid.UUID `json:"id"`
	ChargerID   uuid.UUID `json:"chargerId"`
	ChargerName string    `json:"chargerName"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"totalCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                 rm.ID,
		ChargerID:          rm.ChargerID,
		ChargerName:        rm.ChargerName,
		UserID:             rm.UserID,
		OwnerID:            rm.OwnerID,
		StartTime:          rm.StartTime,
		EndTime:            rm.EndTime,
		Status:             rm.Status,
		HourlyRateCents:    rm.HourlyRateCents,
		DurationHundredths: rm.DurationHundredths,
		TotalCents:         rm.TotalCents,
		PlatformFeeCents:   rm.PlatformFeeCents,
		OwnerEarningsCents: rm.OwnerEarningsCents,
		PaymentStatus:      rm.PaymentStatus,
		PaymentProcessedAt: rm.PaymentProcessedAt,
		AccessCode:         rm.AccessCode,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:          rm.ID,
		ChargerID:   rm.ChargerID,
		ChargerName: rm.ChargerName,
		StartTime:   rm.StartTime,
		EndTime:     rm.EndTime,
		Status:      rm.Status,
		TotalCents:  rm.TotalCents,
		CreatedAt:   rm.CreatedAt,
	}
}

func FromBookingListItems(rms []*queries.BookingListItem) []*BookingListResponse {
	out := make([]*BookingListResponse, 0, len(rms))
	for _, rm := range rms {
		out = append(out, FromBookingListItem(rm))
	}
	return out
}
