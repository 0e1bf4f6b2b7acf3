//go:build unit || e2e

package builder

import (
	"time"

	domcharger "chargeshare/internal/domain/charger"
	"chargeshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type ChargerBuilder struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Name            string
	Status          domcharger.Status
	HourlyRateCents int64
	Availability    domcharger.Availability
	Now             time.Time
}

func NewChargerBuilder() *ChargerBuilder {
	return &ChargerBuilder{
		ID:              uuid.New(),
		OwnerID:         uuid.New(),
		Name:            "Garage charger",
		Status:          domcharger.StatusApproved,
		HourlyRateCents: 500,
		Availability:    domcharger.Availability{},
		Now:             BaseTime,
	}
}

func (c *ChargerBuilder) With(mutate func(*ChargerBuilder)) *ChargerBuilder {
	mutate(c)
	return c
}

func (c *ChargerBuilder) BuildDomain() *domcharger.Charger {
	return domcharger.ReconstructCharger(
		c.ID, c.OwnerID, c.Name, c.Status, c.HourlyRateCents, c.Availability, c.Now, c.Now,
	)
}

func (c *ChargerBuilder) BuildSnapshot() *shared.ChargerSnapshot {
	return &shared.ChargerSnapshot{
		ID:              c.ID,
		OwnerID:         c.OwnerID,
		Name:            c.Name,
		Status:          c.Status,
		HourlyRateCents: c.HourlyRateCents,
		Availability:    c.Availability,
		CreatedAt:       c.Now,
		UpdatedAt:       c.Now,
	}
}
