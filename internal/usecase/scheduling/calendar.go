package scheduling

import (
	"context"
	"time"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/dto"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

type CalendarScope string

const (
	ScopeDay   CalendarScope = "day"
	ScopeWeek  CalendarScope = "week"
	ScopeMonth CalendarScope = "month"
)

type CalendarDay struct {
	Date         string                   `json:"date"`
	Appointments []dto.AppointmentSummary `json:"appointments"`
	Counts       map[string]int           `json:"counts"`
}

type CalendarView struct {
	Scope        CalendarScope  `json:"scope"`
	Start        time.Time      `json:"start"`
	End          time.Time      `json:"end"`
	Days         []CalendarDay  `json:"days"`
	Total        int            `json:"total"`
	StatusCounts map[string]int `json:"status_counts"`
}

// CalendarQuery is a read-only projection over the current appointment
// snapshot; it never mutates state.
type CalendarQuery struct {
	repo domain.Repository
}

func NewCalendarQuery(repo domain.Repository) *CalendarQuery {
	return &CalendarQuery{repo: repo}
}

// Execute builds a day, week (Monday-based) or month view, grouped per
// day with summary counts. staffID 0 covers all staff.
func (uc *CalendarQuery) Execute(
	ctx context.Context,
	scope CalendarScope,
	date time.Time,
	staffID uint,
) (*CalendarView, error) {

	start, end, err := rangeFor(scope, date)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListBetween(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}

	view := &CalendarView{
		Scope:        scope,
		Start:        start,
		End:          end,
		Total:        len(appointments),
		StatusCounts: map[string]int{},
	}

	byDay := map[string][]dto.AppointmentSummary{}
	countsByDay := map[string]map[string]int{}

	for _, ap := range appointments {
		view.StatusCounts[ap.Status]++

		key := ap.StartTime.Format("2006-01-02")
		byDay[key] = append(byDay[key], summarize(ap))
		if countsByDay[key] == nil {
			countsByDay[key] = map[string]int{}
		}
		countsByDay[key][ap.Status]++
	}

	for cur := start; cur.Before(end); cur = cur.AddDate(0, 0, 1) {
		key := cur.Format("2006-01-02")
		day := CalendarDay{
			Date:         key,
			Appointments: byDay[key],
			Counts:       countsByDay[key],
		}
		if day.Appointments == nil {
			day.Appointments = []dto.AppointmentSummary{}
		}
		if day.Counts == nil {
			day.Counts = map[string]int{}
		}
		view.Days = append(view.Days, day)
	}

	return view, nil
}

func rangeFor(scope CalendarScope, date time.Time) (time.Time, time.Time, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	switch scope {
	case ScopeDay:
		return dayStart, dayStart.AddDate(0, 0, 1), nil
	case ScopeWeek:
		// Monday-based week.
		offset := (int(dayStart.Weekday()) + 6) % 7
		weekStart := dayStart.AddDate(0, 0, -offset)
		return weekStart, weekStart.AddDate(0, 0, 7), nil
	case ScopeMonth:
		monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		return monthStart, monthStart.AddDate(0, 1, 0), nil
	}
	return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_scope")
}

func summarize(ap models.Appointment) dto.AppointmentSummary {
	s := dto.AppointmentSummary{
		ID:          ap.ID,
		BookingRef:  ap.BookingRef,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime,
		Status:      ap.Status,
		ClientName:  ap.Client.Name,
		StaffName:   ap.Staff.Name,
		ServiceName: ap.Service.Name,
	}
	if ap.Room != nil {
		s.RoomName = ap.Room.Name
	}
	return s
}
