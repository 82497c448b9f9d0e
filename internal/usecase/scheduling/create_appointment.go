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

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	StaffID   uint
	ServiceID uint
	RoomID    *uint

	Start time.Time

	// DurationMin overrides the service default when > 0.
	DurationMin int

	Notes string
}

// CreateResult is a sum: either Appointment is set, or Conflicts
// carries the contention the caller should act on. Contention is
// normal output here, not an error.
type CreateResult struct {
	Appointment *models.Appointment `json:"appointment,omitempty"`
	Conflicts   []domain.Conflict   `json:"conflicts,omitempty"`
	Suggestion  *domain.TimeSlot    `json:"suggestion,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	policy domain.Policy
	audit  *audit.Dispatcher
	now    func() time.Time

	reminderOffsets []time.Duration
}

func NewCreateAppointment(
	repo domain.Repository,
	policy domain.Policy,
	auditor *audit.Dispatcher,
	reminderOffsets []time.Duration,
	now func() time.Time,
) *CreateAppointment {
	if now == nil {
		now = time.Now
	}
	return &CreateAppointment{
		repo:            repo,
		policy:          policy,
		audit:           auditor,
		reminderOffsets: reminderOffsets,
		now:             now,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateResult, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	duration := time.Duration(svc.DurationMin) * time.Minute
	if in.DurationMin > 0 {
		duration = time.Duration(in.DurationMin) * time.Minute
	}
	window := domain.Window{Start: in.Start, End: in.Start.Add(duration)}

	now := uc.now()

	// Malformed requests are rejected here, never persisted.
	if err := domain.ValidateWindow(window, now, uc.policy); err != nil {
		return nil, err
	}

	hours, err := uc.repo.GetWorkingHoursForStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}
	if !domain.WithinWorkingHours(hours, window) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// Fast-path conflict check with friendly suggestions; storage
	// enforces the same rule again under locks.
	staffBusy, roomBusy, err := uc.repo.ListOverlapping(
		ctx, in.StaffID, in.RoomID, window.Start, window.End,
	)
	if err != nil {
		return nil, err
	}

	if conflicts := domain.DetectDoubleBookings(window, 0, staffBusy, roomBusy); len(conflicts) > 0 {
		return uc.withSuggestion(ctx, in.StaffID, window, duration, conflicts)
	}

	ap := &models.Appointment{
		BookingRef:    uuid.New(),
		ClientID:      in.ClientID,
		StaffID:       in.StaffID,
		ServiceID:     in.ServiceID,
		RoomID:        in.RoomID,
		StartTime:     window.Start,
		EndTime:       window.End,
		Status:        string(domain.InitialStatus()),
		Notes:         in.Notes,
		EstimatedCost: svc.Price,
	}

	if err := uc.repo.CreateAppointmentLocked(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") || httperr.IsExclusionConflict(err) {
			// A concurrent booking won the race between our snapshot
			// check and the insert. Re-detect so the caller still gets
			// typed conflicts instead of a bare error.
			staffBusy, roomBusy, lerr := uc.repo.ListOverlapping(
				ctx, in.StaffID, in.RoomID, window.Start, window.End,
			)
			if lerr == nil {
				if conflicts := domain.DetectDoubleBookings(window, 0, staffBusy, roomBusy); len(conflicts) > 0 {
					return uc.withSuggestion(ctx, in.StaffID, window, duration, conflicts)
				}
			}
			return &CreateResult{Conflicts: []domain.Conflict{{
				Type:         domain.ConflictStaffDoubleBooking,
				Description:  "slot was taken by a concurrent booking",
				ConflictTime: window.Start,
			}}}, nil
		}
		return nil, err
	}

	if rs := reminders.Plan(ap, now, uc.reminderOffsets); len(rs) > 0 {
		if err := uc.repo.CreateReminders(ctx, rs); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		StaffID:  &in.StaffID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &CreateResult{Appointment: ap}, nil
}

// withSuggestion attaches the nearest free slot for the same staff and
// day to a contention result.
func (uc *CreateAppointment) withSuggestion(
	ctx context.Context,
	staffID uint,
	window domain.Window,
	duration time.Duration,
	conflicts []domain.Conflict,
) (*CreateResult, error) {

	res := &CreateResult{Conflicts: conflicts}

	slot, err := nearestFreeSlot(ctx, uc.repo, staffID, window.Start, duration, window.Start)
	if err != nil || slot == nil {
		return res, nil
	}

	res.Suggestion = slot
	text := "nearest free slot: " + slot.Start.Format("15:04") + "-" + slot.End.Format("15:04")
	for i := range res.Conflicts {
		if res.Conflicts[i].Contention() {
			res.Conflicts[i].Suggestion = text
		}
	}
	return res, nil
}
