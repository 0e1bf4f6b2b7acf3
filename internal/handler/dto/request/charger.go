package request

import (
	"time"

	"chargeshare/internal/domain/charger"
	"chargeshare/internal/pkg/errs"
)

type WeeklyWindowRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateAvailabilityRequest struct {
	Schedule     []WeeklyWindowRequest `json:"schedule"`
	BlockedDates []string              `json:"blocked_dates"` // YYYY-MM-DD
}

func (r UpdateAvailabilityRequest) ToDomain() (charger.Availability, error) {
	schedule := make([]charger.WeeklyWindow, 0, len(r.Schedule))
	for _, w := range r.Schedule {
		schedule = append(schedule, charger.WeeklyWindow{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	blocked := make([]charger.Date, 0, len(r.BlockedDates))
	for _, s := range r.BlockedDates {
		day, err := time.Parse("2006-01-02", s)
		if err != nil {
			return charger.Availability{}, errs.Mark(
				errs.Wrap(err, "blocked dates must be YYYY-MM-DD"),
				charger.ErrInvalidBlockedDate,
			)
		}
		blocked = append(blocked, charger.DateOf(day))
	}

	availability := charger.Availability{Schedule: schedule, BlockedDates: blocked}
	if err := availability.Validate(); err != nil {
		return charger.Availability{}, err
	}
	return availability, nil
}
