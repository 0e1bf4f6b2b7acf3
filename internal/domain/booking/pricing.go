package booking

// Quote is the full monetary breakdown of a booking. All amounts are integer
// cents; the duration is held in hundredths of an hour so every rounding step
// stays in integer arithmetic.
type Quote struct {
	HourlyRateCents    int64
	DurationHundredths int64
	TotalCents         int64
	FeeCents           int64
	OwnerEarningsCents int64
	FeeRateBps         int64
}

// Consistent reports the invariant that must hold for every persisted quote:
// fee and earnings recompose the total to the cent.
func (q Quote) Consistent() bool {
	return q.FeeCents+q.OwnerEarningsCents == q.TotalCents
}

func (q Quote) DurationHours() float64 {
	return float64(q.DurationHundredths) / 100.0
}

type PriceCalculator interface {
	Quote(hourlyRateCents int64, slot TimeSlot) Quote
}

// FeeCalculator derives the price breakdown from the hourly rate and the slot
// duration. The platform commission is injected once at construction; call
// sites never carry their own rate literal.
type FeeCalculator struct {
	feeRateBps int64
}

func NewFeeCalculator(feeRateBps int64) *FeeCalculator {
	if feeRateBps < 0 || feeRateBps > 10000 {
		feeRateBps = 0
	}
	return &FeeCalculator{feeRateBps: feeRateBps}
}

// Quote rounds half-up at each declared step: duration to hundredth-hours,
// total to cents, fee to cents. Owner earnings are derived by subtraction so
// fee+earnings always equals the total exactly.
func (c *FeeCalculator) Quote(hourlyRateCents int64, slot TimeSlot) Quote {
	seconds := int64(slot.Duration().Seconds())
	durationHundredths := roundHalfUpDiv(seconds*100, 3600)
	totalCents := roundHalfUpDiv(hourlyRateCents*durationHundredths, 100)
	feeCents := roundHalfUpDiv(totalCents*c.feeRateBps, 10000)

	return Quote{
		HourlyRateCents:    hourlyRateCents,
		DurationHundredths: durationHundredths,
		TotalCents:         totalCents,
		FeeCents:           feeCents,
		OwnerEarningsCents: totalCents - feeCents,
		FeeRateBps:         c.feeRateBps,
	}
}

// roundHalfUpDiv divides num by den rounding half away from zero. Operands
// are non-negative in every pricing path.
func roundHalfUpDiv(num, den int64) int64 {
	return (num + den/2) / den
}
