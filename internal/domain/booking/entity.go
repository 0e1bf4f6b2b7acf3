package booking

import (
	"time"

	"chargeshare/internal/domain/user"
	"chargeshare/internal/pkg/clock"
	"chargeshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrMalformedSlot          = errs.New("malformed booking slot")
	ErrInvalidInterval        = errs.New("end time must be after start time")
	ErrPastStart              = errs.New("start time must be in the future")
	ErrInvalidStatus          = errs.New("invalid booking status")
	ErrIllegalTransition      = errs.New("illegal status transition")
	ErrUnauthorizedTransition = errs.New("actor is not allowed to perform this transition")
	ErrSelfBooking            = errs.New("owner cannot book their own charger")
	ErrInvalidRate            = errs.New("hourly rate must be positive")
	ErrPricingInconsistent    = errs.New("pricing breakdown does not recompose total")
)

// ChargerSpec is the denormalized charger data a booking copies at creation.
// Later charger-ownership or price changes never touch existing bookings.
type ChargerSpec struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	HourlyRateCents int64
}

type Services struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

// Actor is whoever is attempting a state change.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) isAdmin() bool {
	return a.Role.IsAdmin()
}

type Payment struct {
	Status      PaymentStatus
	ProcessedAt *time.Time
}

// Booking is created in pending state and only ever mutated through its
// transition methods. Cancelled and completed bookings are retained, never
// deleted.
type Booking struct {
	id         uuid.UUID
	chargerID  uuid.UUID
	userID     uuid.UUID
	ownerID    uuid.UUID
	slot       TimeSlot
	status     Status
	pricing    Quote
	payment    Payment
	accessCode AccessCode
	createdAt  time.Time
	updatedAt  time.Time
}

func NewBooking(services *Services, chg ChargerSpec, userID uuid.UUID, slot TimeSlot) (*Booking, error) {
	if userID == chg.OwnerID {
		return nil, ErrSelfBooking
	}
	if chg.HourlyRateCents <= 0 {
		return nil, ErrInvalidRate
	}

	quote := services.PriceCalculator.Quote(chg.HourlyRateCents, slot)
	if !quote.Consistent() {
		return nil, ErrPricingInconsistent
	}

	now := services.Clock.Now()
	return &Booking{
		id:         uuid.New(),
		chargerID:  chg.ID,
		userID:     userID,
		ownerID:    chg.OwnerID,
		slot:       slot,
		status:     StatusPending,
		pricing:    quote,
		payment:    Payment{Status: PaymentPending},
		accessCode: NewAccessCode(),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructBooking(
	id, chargerID, userID, ownerID uuid.UUID,
	slot TimeSlot,
	status Status,
	pricing Quote,
	payment Payment,
	accessCode AccessCode,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		chargerID:  chargerID,
		userID:     userID,
		ownerID:    ownerID,
		slot:       slot,
		status:     status,
		pricing:    pricing,
		payment:    payment,
		accessCode: accessCode,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Transition moves the booking along one edge of the status graph.
// Cancellation belongs to the requesting user, every forward move belongs to
// the charger owner; admins may do either. Transition side effects are
// applied here and nowhere else.
func (b *Booking) Transition(to Status, actor Actor, now time.Time) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if !b.status.CanTransitionTo(to) {
		return errs.Mark(
			errs.Newf("cannot move booking from %s to %s", b.status, to),
			ErrIllegalTransition,
		)
	}
	if err := b.authorize(to, actor); err != nil {
		return err
	}

	switch to {
	case StatusConfirmed:
		if b.accessCode.IsZero() {
			b.accessCode = NewAccessCode()
		}
	case StatusCompleted:
		b.payment.Status = PaymentCompleted
		b.payment.ProcessedAt = &now
	}

	b.status = to
	b.updatedAt = now
	return nil
}

// CancelDirect is the self-service cancellation path, narrower than the
// transition table: it only applies while the booking is pending or
// confirmed. An active booking can still be cancelled through Transition.
func (b *Booking) CancelDirect(actor Actor, now time.Time) error {
	if b.status != StatusPending && b.status != StatusConfirmed {
		return errs.Mark(
			errs.Newf("booking in status %s cannot be self-service cancelled", b.status),
			ErrIllegalTransition,
		)
	}
	return b.Transition(StatusCancelled, actor, now)
}

// CompleteBySystem is the sweeper path: it completes an active booking whose
// end has passed, and is a no-op when the booking is already completed.
func (b *Booking) CompleteBySystem(now time.Time) error {
	switch b.status {
	case StatusCompleted:
		return nil
	case StatusActive:
		b.payment.Status = PaymentCompleted
		b.payment.ProcessedAt = &now
		b.status = StatusCompleted
		b.updatedAt = now
		return nil
	default:
		return errs.Mark(
			errs.Newf("cannot auto-complete booking in status %s", b.status),
			ErrIllegalTransition,
		)
	}
}

func (b *Booking) authorize(to Status, actor Actor) error {
	if actor.isAdmin() {
		return nil
	}
	switch to {
	case StatusCancelled:
		if actor.ID != b.userID {
			return errs.Mark(errs.New("only the requesting user may cancel"), ErrUnauthorizedTransition)
		}
	default:
		if actor.ID != b.ownerID {
			return errs.Mark(errs.New("only the charger owner may advance a booking"), ErrUnauthorizedTransition)
		}
	}
	return nil
}

// DiscloseAccessCode returns the access code once the booking has left
// pending; before that neither party sees it.
func (b *Booking) DiscloseAccessCode() (AccessCode, bool) {
	if b.status == StatusPending {
		return "", false
	}
	return b.accessCode, true
}

func (b *Booking) IsParty(userID uuid.UUID) bool {
	return b.userID == userID || b.ownerID == userID
}

func (b *Booking) HasEnded(now time.Time) bool {
	return !now.Before(b.slot.End())
}

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) ChargerID() uuid.UUID   { return b.chargerID }
func (b *Booking) UserID() uuid.UUID      { return b.userID }
func (b *Booking) OwnerID() uuid.UUID     { return b.ownerID }
func (b *Booking) Slot() TimeSlot         { return b.slot }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) Pricing() Quote         { return b.pricing }
func (b *Booking) Payment() Payment       { return b.payment }
func (b *Booking) AccessCode() AccessCode { return b.accessCode }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time   { return b.updatedAt }
