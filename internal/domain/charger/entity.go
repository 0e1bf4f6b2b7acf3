package charger

import (
	"time"

	"chargeshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidHourlyRate = errs.New("hourly rate must be positive")
	ErrBlockedDateInPast = errs.New("blocked date is in the past")
	ErrNotOwner          = errs.New("charger is not owned by actor")
	ErrEmptyName         = errs.New("charger name is required")
)

// Charger is a listed charging point. Availability is owned exclusively by
// this aggregate; the booking flow never mutates it.
type Charger struct {
	id              uuid.UUID
	ownerID         uuid.UUID
	name            string
	status          Status
	hourlyRateCents int64
	availability    Availability
	createdAt       time.Time
	updatedAt       time.Time
}

func NewCharger(ownerID uuid.UUID, name string, hourlyRateCents int64, now time.Time) (*Charger, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if hourlyRateCents <= 0 {
		return nil, ErrInvalidHourlyRate
	}

	return &Charger{
		id:              uuid.New(),
		ownerID:         ownerID,
		name:            name,
		status:          StatusPending,
		hourlyRateCents: hourlyRateCents,
		availability:    Availability{},
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructCharger(
	id, ownerID uuid.UUID,
	name string,
	status Status,
	hourlyRateCents int64,
	availability Availability,
	createdAt, updatedAt time.Time,
) *Charger {
	return &Charger{
		id:              id,
		ownerID:         ownerID,
		name:            name,
		status:          status,
		hourlyRateCents: hourlyRateCents,
		availability:    availability,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// UpdateAvailability replaces the weekly schedule and blocked dates. Newly
// added blocked dates must not be in the past; dates already present are not
// re-validated.
func (c *Charger) UpdateAvailability(next Availability, now time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}

	today := DateOf(now)
	existing := make(map[Date]struct{}, len(c.availability.BlockedDates))
	for _, d := range c.availability.BlockedDates {
		existing[d] = struct{}{}
	}
	for _, d := range next.BlockedDates {
		if _, ok := existing[d]; ok {
			continue
		}
		if d.Before(today) {
			return errs.Mark(errs.Newf("blocked date %s already passed", d), ErrBlockedDateInPast)
		}
	}

	c.availability = next
	c.updatedAt = now
	return nil
}

func (c *Charger) ID() uuid.UUID              { return c.id }
func (c *Charger) OwnerID() uuid.UUID         { return c.ownerID }
func (c *Charger) Name() string               { return c.name }
func (c *Charger) Status() Status             { return c.status }
func (c *Charger) HourlyRateCents() int64     { return c.hourlyRateCents }
func (c *Charger) Availability() Availability { return c.availability }
func (c *Charger) CreatedAt() time.Time       { return c.createdAt }
func (c *Charger) UpdatedAt() time.Time       { return c.updatedAt }

func (c *Charger) IsOwnedBy(userID uuid.UUID) bool {
	return c.ownerID == userID
}
