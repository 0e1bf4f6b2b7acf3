//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"chargeshare/internal/domain/booking"
	"chargeshare/internal/domain/charger"
	"chargeshare/internal/infra"
	"chargeshare/internal/infra/db"
	"chargeshare/internal/pkg/errs"
	"chargeshare/internal/usecase/queries"
	"chargeshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var errNoRows = errs.New("no rows in result set")

// fakeStore is the in-memory backing for the fake unit of work. All maps are
// guarded by mu so the concurrency tests are race-clean.
type fakeStore struct {
	mu       sync.Mutex
	chargers map[uuid.UUID]*shared.ChargerSnapshot
	bookings map[uuid.UUID]*shared.BookingSnapshot

	notificationTopics []string

	// injectable failures
	blockingSlotsErr error
	createErr        error
	updateStatusErr  error
	overdueErr       error

	// afterBookingRead runs after BookingByID returns its copy, outside the
	// store lock. Interleaving tests use it to commit a competing write
	// between a transition's read and its status update.
	afterBookingRead func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		chargers: make(map[uuid.UUID]*shared.ChargerSnapshot),
		bookings: make(map[uuid.UUID]*shared.BookingSnapshot),
	}
}

func (s *fakeStore) putCharger(snap *shared.ChargerSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chargers[snap.ID] = snap
}

func (s *fakeStore) putBooking(snap *shared.BookingSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[snap.ID] = snap
}

func (s *fakeStore) bookingStatus(id uuid.UUID) (booking.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.bookings[id]
	if !ok {
		return "", false
	}
	return snap.Status, true
}

func (s *fakeStore) topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.notificationTopics...)
}

type fakeUoW struct {
	store *fakeStore
}

func newFakeUoW(store *fakeStore) *fakeUoW {
	return &fakeUoW{store: store}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Bookings() shared.BookingRepository          { return &fakeBookingRepo{store: t.store} }
func (t *fakeTx) Chargers() shared.ChargerRepository          { return &fakeChargerRepo{store: t.store} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &fakeNotificationRepo{store: t.store} }
func (t *fakeTx) Reads() shared.CommandReads                  { return &fakeReads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                                 { return nil }

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) ChargerByID(_ context.Context, id uuid.UUID) (*shared.ChargerSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap, ok := r.store.chargers[id]
	if !ok {
		return nil, infra.WrapRepoErr("charger not found", errNoRows, infra.KindNotFound)
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	r.store.mu.Lock()
	snap, ok := r.store.bookings[id]
	if !ok {
		r.store.mu.Unlock()
		return nil, infra.WrapRepoErr("booking not found", errNoRows, infra.KindNotFound)
	}
	cp := *snap
	hook := r.store.afterBookingRead
	r.store.mu.Unlock()

	if hook != nil {
		hook()
	}
	return &cp, nil
}

func (r *fakeReads) BlockingSlotsForCharger(_ context.Context, chargerID uuid.UUID, statuses []booking.Status) ([]booking.TimeSlot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.blockingSlotsErr != nil {
		return nil, r.store.blockingSlotsErr
	}

	blocking := make(map[booking.Status]bool, len(statuses))
	for _, st := range statuses {
		blocking[st] = true
	}

	var slots []booking.TimeSlot
	for _, snap := range r.store.bookings {
		if snap.ChargerID == chargerID && blocking[snap.Status] {
			slots = append(slots, booking.ReconstructTimeSlot(snap.StartTime, snap.EndTime))
		}
	}
	return slots, nil
}

func (r *fakeReads) OverdueActiveBookings(_ context.Context, now time.Time, limit int32) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.overdueErr != nil {
		return nil, r.store.overdueErr
	}

	var due []uuid.UUID
	for id, snap := range r.store.bookings {
		if snap.Status == booking.StatusActive && !snap.EndTime.After(now) {
			due = append(due, id)
		}
		if int32(len(due)) >= limit {
			break
		}
	}
	return due, nil
}

type fakeBookingRepo struct {
	store *fakeStore
}

// Create mirrors the exclusion constraint on the bookings table: an insert
// overlapping a blocking booking on the same charger fails with a conflict.
func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.createErr != nil {
		return uuid.Nil, r.store.createErr
	}

	for _, existing := range r.store.bookings {
		if existing.ChargerID != b.ChargerID() || !existing.Status.IsBlocking() {
			continue
		}
		if b.Slot().Overlaps(booking.ReconstructTimeSlot(existing.StartTime, existing.EndTime)) {
			return uuid.Nil, infra.WrapRepoErr("booking overlaps existing slot", errNoRows, infra.KindConflict)
		}
	}

	r.store.bookings[b.ID()] = snapshotFromDomain(b)
	return b.ID(), nil
}

// UpdateStatus mirrors the guarded write: it only applies while the stored
// status still equals expected.
func (r *fakeBookingRepo) UpdateStatus(_ context.Context, _ db.DBTX, b *booking.Booking, expected booking.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.updateStatusErr != nil {
		return r.store.updateStatusErr
	}
	snap, ok := r.store.bookings[b.ID()]
	if !ok || snap.Status != expected {
		return infra.WrapRepoErr("booking status changed concurrently", errNoRows, infra.KindConflict)
	}

	r.store.bookings[b.ID()] = snapshotFromDomain(b)
	return nil
}

type fakeChargerRepo struct {
	store *fakeStore
}

func (r *fakeChargerRepo) UpdateAvailability(_ context.Context, _ db.DBTX, c *charger.Charger) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap, ok := r.store.chargers[c.ID()]
	if !ok {
		return infra.WrapRepoErr("charger not found", errNoRows, infra.KindNotFound)
	}
	snap.Availability = c.Availability()
	snap.UpdatedAt = c.UpdatedAt()
	return nil
}

type fakeNotificationRepo struct {
	store *fakeStore
}

func (r *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, _, topic string, _ []byte, _ time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.notificationTopics = append(r.store.notificationTopics, topic)
	return nil
}

func snapshotFromDomain(b *booking.Booking) *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:                 b.ID(),
		ChargerID:          b.ChargerID(),
		UserID:             b.UserID(),
		OwnerID:            b.OwnerID(),
		StartTime:          b.Slot().Start(),
		EndTime:            b.Slot().End(),
		Status:             b.Status(),
		HourlyRateCents:    b.Pricing().HourlyRateCents,
		DurationHundredths: b.Pricing().DurationHundredths,
		TotalCents:         b.Pricing().TotalCents,
		FeeCents:           b.Pricing().FeeCents,
		OwnerEarningsCents: b.Pricing().OwnerEarningsCents,
		FeeRateBps:         b.Pricing().FeeRateBps,
		PaymentStatus:      b.Payment().Status,
		PaymentProcessedAt: b.Payment().ProcessedAt,
		AccessCode:         string(b.AccessCode()),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
}

// Read-side fakes backed by the same store, so commands can be wired with the
// real query implementations.
type fakeBookingReadStore struct {
	store *fakeStore
}

func (r *fakeBookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", errNoRows, infra.KindNotFound)
	}
	return viewFromSnapshot(snap, r.store.chargers[snap.ChargerID]), nil
}

func (r *fakeBookingReadStore) FindByUserID(_ context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var items []*queries.BookingListItem
	for _, snap := range r.store.bookings {
		if snap.UserID == userID {
			items = append(items, listItemFromSnapshot(snap, r.store.chargers[snap.ChargerID]))
		}
	}
	return items, nil
}

func (r *fakeBookingReadStore) FindByChargerID(_ context.Context, chargerID uuid.UUID) ([]*queries.BookingListItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var items []*queries.BookingListItem
	for _, snap := range r.store.bookings {
		if snap.ChargerID == chargerID {
			items = append(items, listItemFromSnapshot(snap, r.store.chargers[snap.ChargerID]))
		}
	}
	return items, nil
}

type fakeChargerReadStore struct {
	store *fakeStore
}

func (r *fakeChargerReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ChargerView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap, ok := r.store.chargers[id]
	if !ok {
		return nil, infra.WrapRepoErr("charger not found", errNoRows, infra.KindNotFound)
	}
	return &queries.ChargerView{
		ID:              snap.ID,
		OwnerID:         snap.OwnerID,
		Name:            snap.Name,
		Status:          snap.Status.String(),
		HourlyRateCents: snap.HourlyRateCents,
		Availability:    snap.Availability,
		CreatedAt:       snap.CreatedAt,
		UpdatedAt:       snap.UpdatedAt,
	}, nil
}

func viewFromSnapshot(snap *shared.BookingSnapshot, chg *shared.ChargerSnapshot) *queries.BookingView {
	view := &queries.BookingView{
		ID:                 snap.ID,
		ChargerID:          snap.ChargerID,
		UserID:             snap.UserID,
		OwnerID:            snap.OwnerID,
		StartTime:          snap.StartTime,
		EndTime:            snap.EndTime,
		Status:             snap.Status.String(),
		HourlyRateCents:    snap.HourlyRateCents,
		DurationHundredths: snap.DurationHundredths,
		TotalCents:         snap.TotalCents,
		PlatformFeeCents:   snap.FeeCents,
		OwnerEarningsCents: snap.OwnerEarningsCents,
		PaymentStatus:      string(snap.PaymentStatus),
		PaymentProcessedAt: snap.PaymentProcessedAt,
		CreatedAt:          snap.CreatedAt,
		UpdatedAt:          snap.UpdatedAt,
	}
	if snap.AccessCode != "" {
		code := snap.AccessCode
		view.AccessCode = &code
	}
	if chg != nil {
		view.ChargerName = chg.Name
	}
	return view
}

func listItemFromSnapshot(snap *shared.BookingSnapshot, chg *shared.ChargerSnapshot) *queries.BookingListItem {
	item := &queries.BookingListItem{
		ID:         snap.ID,
		ChargerID:  snap.ChargerID,
		StartTime:  snap.StartTime,
		EndTime:    snap.EndTime,
		Status:     snap.Status.String(),
		TotalCents: snap.TotalCents,
		CreatedAt:  snap.CreatedAt,
	}
	if chg != nil {
		item.ChargerName = chg.Name
	}
	return item
}
