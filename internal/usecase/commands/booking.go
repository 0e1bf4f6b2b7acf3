package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"chargeshare/internal/domain/booking"
	"chargeshare/internal/domain/charger"
	"chargeshare/internal/domain/user"
	reqdto "chargeshare/internal/handler/dto/request"
	"chargeshare/internal/infra"
	"chargeshare/internal/pkg/clock"
	"chargeshare/internal/pkg/errs"
	"chargeshare/internal/usecase/queries"
	"chargeshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrMalformedRequest        = errs.New("malformed booking request")
	ErrInvalidInterval         = errs.New("end time must be after start time")
	ErrPastStart               = errs.New("start time must be in the future")
	ErrChargerNotFound         = errs.New("charger not found")
	ErrChargerUnavailable      = errs.New("charger is not available for booking")
	ErrSelfBookingForbidden    = errs.New("owners cannot book their own charger")
	ErrDateBlocked             = errs.New("requested date is blocked by the owner")
	ErrOutsideSchedule         = errs.New("requested slot is outside the charger schedule")
	ErrSlotTaken               = errs.New("slot conflicts with an existing booking")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrIllegalTransition       = errs.New("illegal status transition")
	ErrUnauthorized            = errs.New("actor is not allowed to perform this transition")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	ChangeBookingStatus(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole user.Role, target booking.Status) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole user.Role) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	calculator     booking.PriceCalculator
	clock          clock.Clock
	locks          chargerLocks
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	calculator booking.PriceCalculator,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		calculator:     calculator,
		clock:          clock,
	}
}

// chargerLocks serializes check-and-insert per charger within this process.
// The exclusion constraint on the bookings table covers concurrent writers
// on other instances. Entries are reference counted and removed on last
// release, so the map is bounded by in-flight requests rather than by every
// charger ever booked.
type chargerLocks struct {
	mu sync.Mutex
	m  map[uuid.UUID]*chargerLock
}

type chargerLock struct {
	sync.Mutex
	refs int
}

func (l *chargerLocks) lock(id uuid.UUID) *chargerLock {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[uuid.UUID]*chargerLock)
	}
	cl, ok := l.m[id]
	if !ok {
		cl = &chargerLock{}
		l.m[id] = cl
	}
	cl.refs++
	l.mu.Unlock()

	cl.Lock()
	return cl
}

func (l *chargerLocks) unlock(id uuid.UUID, cl *chargerLock) {
	cl.Unlock()

	l.mu.Lock()
	cl.refs--
	if cl.refs == 0 {
		delete(l.m, id)
	}
	l.mu.Unlock()
}

func (u *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
) (*queries.BookingView, error) {
	now := u.clock.Now()

	slot, err := booking.NewTimeSlot(req.StartTime, req.EndTime, now)
	if err != nil {
		return nil, markSlotError(err)
	}

	chargerEntity, err := u.validateAndGetCharger(ctx, req.ChargerID)
	if err != nil {
		return nil, err
	}

	if chargerEntity.OwnerID() == userID {
		return nil, ErrSelfBookingForbidden
	}

	availability := chargerEntity.Availability()
	if availability.IsDateBlocked(slot.Start()) {
		return nil, ErrDateBlocked
	}
	if !availability.WithinSchedule(slot.Start(), slot.End()) {
		if window, ok := availability.WindowOn(slot.Start().Weekday()); ok {
			return nil, errs.Mark(errs.Newf("available window is %s", window.String()), ErrOutsideSchedule)
		}
		return nil, errs.Mark(errs.Newf("no availability window on %s", slot.Start().Weekday()), ErrOutsideSchedule)
	}

	spec := booking.ChargerSpec{
		ID:              chargerEntity.ID(),
		OwnerID:         chargerEntity.OwnerID(),
		HourlyRateCents: chargerEntity.HourlyRateCents(),
	}
	bookingEntity, err := booking.NewBooking(&booking.Services{
		Clock:           u.clock,
		PriceCalculator: u.calculator,
	}, spec, userID, slot)
	if err != nil {
		return nil, markDomainError(err)
	}

	cl := u.locks.lock(chargerEntity.ID())
	defer u.locks.unlock(chargerEntity.ID(), cl)

	var bookingID uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		slots, err := tx.Reads().BlockingSlotsForCharger(ctx, chargerEntity.ID(), booking.BlockingStatuses)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if booking.HasConflict(slot, slots) {
			return ErrSlotTaken
		}

		bookingID, err = tx.Bookings().Create(ctx, tx.DB(), bookingEntity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrSlotTaken
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return enqueueBookingNotification(ctx, tx, bookingID, "booking_created", u.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	view, err := u.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingUseCaseImpl) ChangeBookingStatus(
	ctx context.Context,
	bookingID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
	target booking.Status,
) (*queries.BookingView, error) {
	return u.transition(ctx, bookingID, func(b *booking.Booking) error {
		return b.Transition(target, booking.Actor{ID: actorID, Role: actorRole}, u.clock.Now())
	})
}

func (u *bookingUseCaseImpl) CancelBooking(
	ctx context.Context,
	bookingID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
) (*queries.BookingView, error) {
	return u.transition(ctx, bookingID, func(b *booking.Booking) error {
		return b.CancelDirect(booking.Actor{ID: actorID, Role: actorRole}, u.clock.Now())
	})
}

func (u *bookingUseCaseImpl) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	apply func(b *booking.Booking) error,
) (*queries.BookingView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		bookingEntity := snapshot.ToDomain()
		if err := apply(bookingEntity); err != nil {
			return markTransitionError(err)
		}

		// The status predicate in UpdateStatus loses against a transition
		// committed after our read; the booking is no longer in a state that
		// allows this move.
		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingEntity, snapshot.Status); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrIllegalTransition)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return enqueueBookingNotification(ctx, tx, bookingID, "booking_status_changed", u.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	view, err := u.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingUseCaseImpl) validateAndGetCharger(ctx context.Context, chargerID uuid.UUID) (*charger.Charger, error) {
	snapshot, err := u.uow.CommandReads().ChargerByID(ctx, chargerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrChargerNotFound
		}
		return nil, errs.Mark(err, ErrChargerNotFound)
	}

	entity := snapshot.ToDomain()
	if !entity.Status().IsBookable() {
		return nil, ErrChargerUnavailable
	}
	return entity, nil
}

func enqueueBookingNotification(
	ctx context.Context,
	tx shared.Tx,
	bookingID uuid.UUID,
	topic string,
	runAt time.Time,
) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, payload, runAt); err != nil {
		slog.Warn("failed to enqueue notification job", "booking_id", bookingID, "error", err)
	}
	return nil
}

func markSlotError(err error) error {
	switch {
	case errs.Is(err, booking.ErrMalformedSlot):
		return errs.Mark(err, ErrMalformedRequest)
	case errs.Is(err, booking.ErrInvalidInterval):
		return errs.Mark(err, ErrInvalidInterval)
	case errs.Is(err, booking.ErrPastStart):
		return errs.Mark(err, ErrPastStart)
	default:
		return errs.Mark(err, ErrMalformedRequest)
	}
}

func markDomainError(err error) error {
	switch {
	case errs.Is(err, booking.ErrSelfBooking):
		return errs.Mark(err, ErrSelfBookingForbidden)
	case errs.Is(err, booking.ErrInvalidRate), errs.Is(err, booking.ErrPricingInconsistent):
		return errs.Mark(err, ErrChargerUnavailable)
	default:
		return errs.Mark(err, ErrMalformedRequest)
	}
}

func markTransitionError(err error) error {
	switch {
	case errs.Is(err, booking.ErrIllegalTransition), errs.Is(err, booking.ErrInvalidStatus):
		return errs.Mark(err, ErrIllegalTransition)
	case errs.Is(err, booking.ErrUnauthorizedTransition):
		return errs.Mark(err, ErrUnauthorized)
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
