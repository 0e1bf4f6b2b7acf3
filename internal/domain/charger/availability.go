package charger

import (
	"fmt"
	"time"

	"chargeshare/internal/pkg/errs"
)

var (
	ErrInvalidWindow      = errs.New("invalid availability window")
	ErrInvalidBlockedDate = errs.New("invalid blocked date")
)

// WeeklyWindow is one recurring availability window. Times are wall-clock
// "HH:MM" local to the charger's declared location; no timezone conversion
// is applied anywhere in the schedule checks.
type WeeklyWindow struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0=Sunday .. 6=Saturday
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (w WeeklyWindow) Validate() error {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return errs.Mark(errs.Newf("dayOfWeek %d out of range", w.DayOfWeek), ErrInvalidWindow)
	}
	startMin, err := parseClock(w.StartTime)
	if err != nil {
		return errs.Mark(err, ErrInvalidWindow)
	}
	endMin, err := parseClock(w.EndTime)
	if err != nil {
		return errs.Mark(err, ErrInvalidWindow)
	}
	if startMin >= endMin {
		return errs.Mark(errs.Newf("window %s-%s does not start before it ends", w.StartTime, w.EndTime), ErrInvalidWindow)
	}
	return nil
}

func (w WeeklyWindow) String() string {
	return fmt.Sprintf("%s %s-%s", time.Weekday(w.DayOfWeek), w.StartTime, w.EndTime)
}

// Date is a calendar day; wall-clock components are ignored for membership.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Availability is the owner-declared general availability of a charger,
// independent of existing bookings. An empty schedule means available 24/7.
type Availability struct {
	Schedule     []WeeklyWindow `json:"schedule"`
	BlockedDates []Date         `json:"blockedDates"`
}

func (a Availability) Validate() error {
	for _, w := range a.Schedule {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (a Availability) IsDateBlocked(t time.Time) bool {
	day := DateOf(t)
	for _, d := range a.BlockedDates {
		if d == day {
			return true
		}
	}
	return false
}

// WindowOn returns the first window declared for the given weekday.
func (a Availability) WindowOn(day time.Weekday) (WeeklyWindow, bool) {
	for _, w := range a.Schedule {
		if w.DayOfWeek == int(day) {
			return w, true
		}
	}
	return WeeklyWindow{}, false
}

// WithinSchedule reports whether [start,end) fits the declared weekly
// schedule. Slots that cross midnight into another schedule day are not
// supported and always fail when a schedule is declared.
func (a Availability) WithinSchedule(start, end time.Time) bool {
	if len(a.Schedule) == 0 {
		return true
	}

	w, ok := a.WindowOn(start.Weekday())
	if !ok {
		return false
	}
	if DateOf(start) != DateOf(end) {
		return false
	}

	windowStart := anchorClock(start, w.StartTime)
	windowEnd := anchorClock(start, w.EndTime)
	return !start.Before(windowStart) && !end.After(windowEnd)
}

// anchorClock places an "HH:MM" wall-clock time on ref's calendar date.
func anchorClock(ref time.Time, clock string) time.Time {
	minutes, err := parseClock(clock)
	if err != nil {
		return time.Time{}
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), minutes/60, minutes%60, 0, 0, ref.Location())
}

func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, errs.Newf("malformed clock time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, errs.Newf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}
