package request

import (
	"time"

	"chargeshare/internal/domain/booking"
	"chargeshare/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ChargerID uuid.UUID `json:"charger_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type ChangeBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r ChangeBookingStatusRequest) ToDomain() (booking.Status, error) {
	status, err := booking.NewStatus(r.Status)
	if err != nil {
		return "", errs.Wrap(err, "invalid target status")
	}
	return status, nil
}
