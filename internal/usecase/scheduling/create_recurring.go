package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-scheduler/internal/audit"
	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
	"github.com/medagenda/clinic-scheduler/internal/reminders"
)

type CreateRecurringInput struct {
	Base    CreateAppointmentInput
	Pattern domain.Pattern
}

// RecurringResult lists the created series in time order (parent first)
// plus the occurrences skipped for contention.
type RecurringResult struct {
	Appointments []models.Appointment `json:"appointments"`
	Skipped      []domain.Conflict    `json:"skipped,omitempty"`
}

type CreateRecurringSeries struct {
	repo   domain.Repository
	policy domain.Policy
	audit  *audit.Dispatcher
	now    func() time.Time

	reminderOffsets []time.Duration
}

func NewCreateRecurringSeries(
	repo domain.Repository,
	policy domain.Policy,
	auditor *audit.Dispatcher,
	reminderOffsets []time.Duration,
	now func() time.Time,
) *CreateRecurringSeries {
	if now == nil {
		now = time.Now
	}
	return &CreateRecurringSeries{
		repo:            repo,
		policy:          policy,
		audit:           auditor,
		reminderOffsets: reminderOffsets,
		now:             now,
	}
}

// Execute expands the base appointment into a series. Well-formedness
// is strict: a single malformed occurrence aborts the whole series.
// Contention is best-effort: a double-booked occurrence is skipped,
// recorded, and the series continues. The parent is element 0 and
// children link back to it.
func (uc *CreateRecurringSeries) Execute(
	ctx context.Context,
	in CreateRecurringInput,
) (*RecurringResult, error) {

	svc, err := uc.repo.GetService(ctx, in.Base.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	duration := time.Duration(svc.DurationMin) * time.Minute
	if in.Base.DurationMin > 0 {
		duration = time.Duration(in.Base.DurationMin) * time.Minute
	}
	base := domain.Window{Start: in.Base.Start, End: in.Base.Start.Add(duration)}

	occurrences, err := domain.Occurrences(base, in.Pattern, uc.policy.MaxOccurrences)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	hours, err := uc.repo.GetWorkingHoursForStaff(ctx, in.Base.StaffID)
	if err != nil {
		return nil, err
	}

	var accepted []domain.Window
	var skipped []domain.Conflict

	// Occurrences are checked in strictly increasing time order.
	for _, occ := range occurrences {
		if err := domain.ValidateWindow(occ, now, uc.policy); err != nil {
			return nil, err
		}
		if !domain.WithinWorkingHours(hours, occ) {
			return nil, httperr.ErrBusiness("outside_working_hours")
		}

		staffBusy, roomBusy, err := uc.repo.ListOverlapping(
			ctx, in.Base.StaffID, in.Base.RoomID, occ.Start, occ.End,
		)
		if err != nil {
			return nil, err
		}

		if conflicts := domain.DetectDoubleBookings(occ, 0, staffBusy, roomBusy); len(conflicts) > 0 {
			skipped = append(skipped, conflicts...)
			continue
		}
		accepted = append(accepted, occ)
	}

	if len(accepted) == 0 {
		return &RecurringResult{Skipped: skipped}, nil
	}

	pattern := &models.RecurrencePattern{
		Frequency: string(in.Pattern.Frequency),
		Interval:  in.Pattern.Interval,
		EndDate:   in.Pattern.EndDate,
	}

	build := func(w domain.Window) models.Appointment {
		return models.Appointment{
			BookingRef:    uuid.New(),
			ClientID:      in.Base.ClientID,
			StaffID:       in.Base.StaffID,
			ServiceID:     in.Base.ServiceID,
			RoomID:        in.Base.RoomID,
			StartTime:     w.Start,
			EndTime:       w.End,
			Status:        string(domain.InitialStatus()),
			Notes:         in.Base.Notes,
			EstimatedCost: svc.Price,
		}
	}

	parent := build(accepted[0])
	children := make([]models.Appointment, 0, len(accepted)-1)
	for _, w := range accepted[1:] {
		children = append(children, build(w))
	}

	if err := uc.repo.CreateSeries(ctx, pattern, &parent, children); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	series := append([]models.Appointment{parent}, children...)

	for i := range series {
		if rs := reminders.Plan(&series[i], now, uc.reminderOffsets); len(rs) > 0 {
			if err := uc.repo.CreateReminders(ctx, rs); err != nil {
				return nil, err
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		StaffID:  &in.Base.StaffID,
		Action:   "recurring_series_created",
		Entity:   "appointment",
		EntityID: &parent.ID,
		Metadata: map[string]any{
			"occurrences": len(series),
			"skipped":     len(skipped),
		},
	})

	return &RecurringResult{Appointments: series, Skipped: skipped}, nil
}
