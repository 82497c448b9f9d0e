package scheduling

import (
	"time"

	"github.com/medagenda/clinic-scheduler/internal/models"
)

// DayWindow resolves a staff member's working window on the given date
// from the per-weekday rows. ok is false when the staff member does not
// work that day or the row is malformed.
func DayWindow(rows []models.WorkingHours, date time.Time) (Window, bool) {
	weekday := int(date.Weekday())

	for _, wh := range rows {
		if wh.Weekday != weekday || !wh.Active {
			continue
		}
		start, okStart := atClock(date, wh.StartTime)
		end, okEnd := atClock(date, wh.EndTime)
		if !okStart || !okEnd || !end.After(start) {
			return Window{}, false
		}
		return Window{Start: start, End: end}, true
	}
	return Window{}, false
}

// WithinWorkingHours reports whether the whole window fits inside the
// staff member's working hours for that day.
func WithinWorkingHours(rows []models.WorkingHours, w Window) bool {
	day, ok := DayWindow(rows, w.Start)
	if !ok {
		return false
	}
	return !w.Start.Before(day.Start) && !w.End.After(day.End)
}

// ValidateWorkingHours checks a bulk working-hours update before it is
// accepted: weekday in range and, on active days, start < end.
func ValidateWorkingHours(rows []models.WorkingHours) bool {
	for _, wh := range rows {
		if wh.Weekday < 0 || wh.Weekday > 6 {
			return false
		}
		if !wh.Active {
			continue
		}
		start, okStart := parseClock(wh.StartTime)
		end, okEnd := parseClock(wh.EndTime)
		if !okStart || !okEnd || !end.After(start) {
			return false
		}
	}
	return true
}

func atClock(date time.Time, hm string) (time.Time, bool) {
	t, ok := parseClock(hm)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}

func parseClock(hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
