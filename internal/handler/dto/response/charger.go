package response

import (
	"time"

	"chargeshare/internal/domain/charger"
	"chargeshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ChargerResponse struct {
	ID              uuid.UUID            `json:"id"`
	OwnerID         uuid.UUID            `json:"ownerId"`
	Name            string               `json:"name"`
	Status          string               `json:"status"`
	HourlyRateCents int64                `json:"hourlyRateCents"`
	Availability    charger.Availability `json:"availability"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

func FromChargerView(rm *queries.ChargerView) *ChargerResponse {
	return &ChargerResponse{
		ID:              rm.ID,
		OwnerID:         rm.OwnerID,
		Name:            rm.Name,
		Status:          rm.Status,
		HourlyRateCents: rm.HourlyRateCents,
		Availability:    rm.Availability,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}
