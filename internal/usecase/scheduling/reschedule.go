package scheduling

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/medagenda/clinic-scheduler/internal/audit"
	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
)

// RescheduleAppointment replaces the time window and re-runs conflict
// detection; the status is preserved. Rescheduling onto the current
// window is a no-op that never self-conflicts.
type RescheduleAppointment struct {
	repo   domain.Repository
	policy domain.Policy
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	policy domain.Policy,
	auditor *audit.Dispatcher,
	now func() time.Time,
) *RescheduleAppointment {
	if now == nil {
		now = time.Now
	}
	return &RescheduleAppointment{repo: repo, policy: policy, audit: auditor, now: now}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	id uint,
	start time.Time,
	end time.Time,
) (*CreateResult, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	window := domain.Window{Start: start, End: end}
	if err := domain.ValidateWindow(window, uc.now(), uc.policy); err != nil {
		return nil, err
	}

	hours, err := uc.repo.GetWorkingHoursForStaff(ctx, ap.StaffID)
	if err != nil {
		return nil, err
	}
	if !domain.WithinWorkingHours(hours, window) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	staffBusy, roomBusy, err := uc.repo.ListOverlapping(
		ctx, ap.StaffID, ap.RoomID, window.Start, window.End,
	)
	if err != nil {
		return nil, err
	}

	if conflicts := domain.DetectDoubleBookings(window, ap.ID, staffBusy, roomBusy); len(conflicts) > 0 {
		res := &CreateResult{Conflicts: conflicts}
		if slot, serr := nearestFreeSlot(
			ctx, uc.repo, ap.StaffID, window.Start, window.Duration(), window.Start,
		); serr == nil && slot != nil {
			res.Suggestion = slot
		}
		return res, nil
	}

	if err := domain.Reschedule(ap, window.Start, window.End); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointmentLocked(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") || httperr.IsExclusionConflict(err) {
			return &CreateResult{Conflicts: []domain.Conflict{{
				Type:         domain.ConflictStaffDoubleBooking,
				Description:  "slot was taken by a concurrent booking",
				ConflictTime: window.Start,
			}}}, nil
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StaffID:  &ap.StaffID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &CreateResult{Appointment: ap}, nil
}
