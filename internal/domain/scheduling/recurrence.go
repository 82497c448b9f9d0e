package scheduling

import (
	"time"

	"github.com/medagenda/clinic-scheduler/internal/httperr"
)

// ===============================
// Recurrence
// ===============================

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

type Pattern struct {
	Frequency Frequency
	Interval  int
	EndDate   time.Time
}

func (p Pattern) Validate() error {
	switch p.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return httperr.ErrBusiness("invalid_frequency")
	}
	if p.Interval < 1 {
		return httperr.ErrBusiness("invalid_interval")
	}
	if p.EndDate.IsZero() {
		return httperr.ErrBusiness("missing_end_date")
	}
	return nil
}

func (p Pattern) step(w Window) Window {
	switch p.Frequency {
	case FrequencyDaily:
		return Window{
			Start: w.Start.AddDate(0, 0, p.Interval),
			End:   w.End.AddDate(0, 0, p.Interval),
		}
	case FrequencyWeekly:
		return Window{
			Start: w.Start.AddDate(0, 0, 7*p.Interval),
			End:   w.End.AddDate(0, 0, 7*p.Interval),
		}
	default: // monthly
		return Window{
			Start: w.Start.AddDate(0, p.Interval, 0),
			End:   w.End.AddDate(0, p.Interval, 0),
		}
	}
}

// Occurrences expands the base window into the ordered series, base
// first. An occurrence whose start falls on the end date is still
// included; the first start past the end of that day stops generation.
// maxCount bounds pathological patterns.
func Occurrences(base Window, p Pattern, maxCount int) ([]Window, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if maxCount < 1 {
		maxCount = 1
	}

	limit := endOfDay(p.EndDate, base.Start.Location())

	out := []Window{base}
	cur := base
	for len(out) < maxCount {
		cur = p.step(cur)
		if cur.Start.After(limit) {
			break
		}
		out = append(out, cur)
	}
	return out, nil
}

func endOfDay(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, loc)
}
