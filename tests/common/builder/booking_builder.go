//go:build unit || e2e

package builder

import (
	"time"

	dombooking "chargeshare/internal/domain/booking"
	reqdto "chargeshare/internal/handler/dto/request"
	"chargeshare/internal/pkg/clock"
	"chargeshare/internal/usecase/queries"
	"chargeshare/internal/usecase/shared"

	"github.com/google/uuid"
)

// BaseTime is the fixed "now" every builder anchors to, so slot validation
// never depends on the wall clock.
var BaseTime = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	ChargerID       uuid.UUID
	OwnerID         uuid.UUID
	UserID          uuid.UUID
	HourlyRateCents int64
	FeeRateBps      int64
	Start           time.Time
	End             time.Time
	Now             time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ChargerID:       uuid.New(),
		OwnerID:         uuid.New(),
		UserID:          uuid.New(),
		HourlyRateCents: 500,
		FeeRateBps:      1000,
		Start:           BaseTime.Add(24 * time.Hour),
		End:             BaseTime.Add(26 * time.Hour),
		Now:             BaseTime,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Services() *dombooking.Services {
	return &dombooking.Services{
		Clock:           clock.NewMockClock(b.Now),
		PriceCalculator: dombooking.NewFeeCalculator(b.FeeRateBps),
	}
}

func (b *BookingBuilder) Spec() dombooking.ChargerSpec {
	return dombooking.ChargerSpec{
		ID:              b.ChargerID,
		OwnerID:         b.OwnerID,
		HourlyRateCents: b.HourlyRateCents,
	}
}

func (b *BookingBuilder) BuildSlot() (dombooking.TimeSlot, error) {
	return dombooking.NewTimeSlot(b.Start, b.End, b.Now)
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	slot, err := b.BuildSlot()
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(b.Services(), b.Spec(), b.UserID, slot)
}

// BuildDomainInStatus reconstructs a booking already moved to the given
// status, for transition tests that start mid-lifecycle.
func (b *BookingBuilder) BuildDomainInStatus(status dombooking.Status) *dombooking.Booking {
	quote := dombooking.NewFeeCalculator(b.FeeRateBps).
		Quote(b.HourlyRateCents, dombooking.ReconstructTimeSlot(b.Start, b.End))

	accessCode := dombooking.NewAccessCode()
	payment := dombooking.Payment{Status: dombooking.PaymentPending}
	if status == dombooking.StatusCompleted {
		processedAt := b.Now
		payment = dombooking.Payment{Status: dombooking.PaymentCompleted, ProcessedAt: &processedAt}
	}

	return dombooking.ReconstructBooking(
		uuid.New(), b.ChargerID, b.UserID, b.OwnerID,
		dombooking.ReconstructTimeSlot(b.Start, b.End),
		status, quote, payment, accessCode,
		b.Now, b.Now,
	)
}

func (b *BookingBuilder) BuildCreateRequest() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ChargerID: b.ChargerID,
		StartTime: b.Start,
		EndTime:   b.End,
	}
}

func (b *BookingBuilder) BuildView(status dombooking.Status) *queries.BookingView {
	quote := dombooking.NewFeeCalculator(b.FeeRateBps).
		Quote(b.HourlyRateCents, dombooking.ReconstructTimeSlot(b.Start, b.End))

	view := &queries.BookingView{
		ID:                 uuid.New(),
		ChargerID:          b.ChargerID,
		ChargerName:        "Garage charger",
		UserID:             b.UserID,
		OwnerID:            b.OwnerID,
		StartTime:          b.Start,
		EndTime:            b.End,
		Status:             status.String(),
		HourlyRateCents:    quote.HourlyRateCents,
		DurationHundredths: quote.DurationHundredths,
		TotalCents:         quote.TotalCents,
		PlatformFeeCents:   quote.FeeCents,
		OwnerEarningsCents: quote.OwnerEarningsCents,
		PaymentStatus:      dombooking.PaymentPending.String(),
		CreatedAt:          b.Now,
		UpdatedAt:          b.Now,
	}
	if status != dombooking.StatusPending {
		code := string(dombooking.NewAccessCode())
		view.AccessCode = &code
	}
	return view
}

func (b *BookingBuilder) BuildSnapshot(status dombooking.Status) *shared.BookingSnapshot {
	quote := dombooking.NewFeeCalculator(b.FeeRateBps).
		Quote(b.HourlyRateCents, dombooking.ReconstructTimeSlot(b.Start, b.End))

	return &shared.BookingSnapshot{
		ID:                 uuid.New(),
		ChargerID:          b.ChargerID,
		UserID:             b.UserID,
		OwnerID:            b.OwnerID,
		StartTime:          b.Start,
		EndTime:            b.End,
		Status:             status,
		HourlyRateCents:    quote.HourlyRateCents,
		DurationHundredths: quote.DurationHundredths,
		TotalCents:         quote.TotalCents,
		FeeCents:           quote.FeeCents,
		OwnerEarningsCents: quote.OwnerEarningsCents,
		FeeRateBps:         quote.FeeRateBps,
		PaymentStatus:      dombooking.PaymentPending,
		AccessCode:         string(dombooking.NewAccessCode()),
		CreatedAt:          b.Now,
		UpdatedAt:          b.Now,
	}
}
