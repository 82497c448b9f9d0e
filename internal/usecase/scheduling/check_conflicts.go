package scheduling

import (
	"context"
	"time"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
)

type CheckConflictsInput struct {
	StaffID uint
	RoomID  *uint
	Start   time.Time
	End     time.Time

	// ExcludeAppointmentID lets a reschedule dry-run ignore the
	// appointment's own current window.
	ExcludeAppointmentID uint
}

// CheckConflicts is the dry-run detector: nothing is persisted, so
// validity failures come back as typed conflict data alongside the
// double bookings instead of aborting the call. Checks run in a fixed
// order and all of them execute.
type CheckConflicts struct {
	repo   domain.Repository
	policy domain.Policy
	now    func() time.Time
}

func NewCheckConflicts(
	repo domain.Repository,
	policy domain.Policy,
	now func() time.Time,
) *CheckConflicts {
	if now == nil {
		now = time.Now
	}
	return &CheckConflicts{repo: repo, policy: policy, now: now}
}

func (uc *CheckConflicts) Execute(
	ctx context.Context,
	in CheckConflictsInput,
) ([]domain.Conflict, error) {

	window := domain.Window{Start: in.Start, End: in.End}

	conflicts := domain.ValidityConflicts(window, uc.now(), uc.policy)

	hours, err := uc.repo.GetWorkingHoursForStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}
	if window.End.After(window.Start) && !domain.WithinWorkingHours(hours, window) {
		conflicts = append(conflicts, domain.Conflict{
			Type:         domain.ConflictOutsideHours,
			Description:  "outside the staff member's working hours",
			ConflictTime: window.Start,
		})
	}

	// A degenerate window cannot double-book anything.
	if !window.End.After(window.Start) {
		return conflicts, nil
	}

	staffBusy, roomBusy, err := uc.repo.ListOverlapping(
		ctx, in.StaffID, in.RoomID, window.Start, window.End,
	)
	if err != nil {
		return nil, err
	}

	booking := domain.DetectDoubleBookings(window, in.ExcludeAppointmentID, staffBusy, roomBusy)
	if len(booking) > 0 {
		if slot, err := nearestFreeSlot(
			ctx, uc.repo, in.StaffID, window.Start, window.Duration(), window.Start,
		); err == nil && slot != nil {
			text := "nearest free slot: " + slot.Start.Format("15:04") + "-" + slot.End.Format("15:04")
			for i := range booking {
				booking[i].Suggestion = text
			}
		}
	}

	return append(conflicts, booking...), nil
}
