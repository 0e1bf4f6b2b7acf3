package booking

import (
	"crypto/rand"
	"fmt"
	"time"
)

// TimeSlot is a half-open interval [start, end) of absolute instants.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

// NewTimeSlot validates interval shape in the order callers report it:
// end must follow start, then start must be in the future.
func NewTimeSlot(start, end, now time.Time) (TimeSlot, error) {
	if start.IsZero() || end.IsZero() {
		return TimeSlot{}, ErrMalformedSlot
	}
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidInterval
	}
	if !start.After(now) {
		return TimeSlot{}, ErrPastStart
	}

	return TimeSlot{start: start, end: end}, nil
}

// ReconstructTimeSlot rebuilds a slot from storage without re-running the
// future-start check.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps uses half-open semantics: touching slots do not overlap, so
// back-to-back bookings are legal.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

// accessCodeAlphabet excludes glyphs that read ambiguously on a charger
// sticker (0/O, 1/I/L).
const accessCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const accessCodeLength = 6

type AccessCode string

func NewAccessCode() AccessCode {
	buf := make([]byte, accessCodeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is unrecoverable for code generation
		panic("access code entropy unavailable: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = accessCodeAlphabet[int(b)%len(accessCodeAlphabet)]
	}
	return AccessCode(buf)
}

func (a AccessCode) String() string {
	return string(a)
}

func (a AccessCode) IsZero() bool {
	return a == ""
}
