package queries

import (
	"context"

	"chargeshare/internal/domain/booking"
	"chargeshare/internal/domain/user"
	"chargeshare/internal/infra"
	"chargeshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrChargerNotFound = errs.New("charger not found")
	ErrNotChargerOwner = errs.New("charger bookings are visible to the owner only")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	FindByChargerID(ctx context.Context, chargerID uuid.UUID) ([]*BookingListItem, error)
}

type ChargerReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ChargerView, error)
}

type BookingQueries interface {
	// GetByID is visible to the two parties and admins; the access code is
	// withheld while the booking is still pending.
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses actor checks for read-after-write inside commands.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	ListByCharger(ctx context.Context, actorID uuid.UUID, actorRole user.Role, chargerID uuid.UUID) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	chargers ChargerReadStore
}

func NewBookingQueries(bookings BookingReadStore, chargers ChargerReadStore) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, chargers: chargers}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	// Non-parties learn nothing, not even existence.
	if !actorRole.IsAdmin() && view.UserID != actorID && view.OwnerID != actorID {
		return nil, ErrBookingNotFound
	}

	redactAccessCode(view)
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	redactAccessCode(view)
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	return q.bookings.FindByUserID(ctx, userID)
}

func (q *bookingQueriesImpl) ListByCharger(ctx context.Context, actorID uuid.UUID, actorRole user.Role, chargerID uuid.UUID) ([]*BookingListItem, error) {
	chg, err := q.chargers.FindByID(ctx, chargerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrChargerNotFound
		}
		return nil, err
	}
	if !actorRole.IsAdmin() && chg.OwnerID != actorID {
		return nil, ErrNotChargerOwner
	}
	return q.bookings.FindByChargerID(ctx, chargerID)
}

func redactAccessCode(view *BookingView) {
	if view.Status == booking.StatusPending.String() {
		view.AccessCode = nil
	}
}
