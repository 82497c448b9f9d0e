package scheduling

import (
	"context"
	"time"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute generates the day's candidate slots for a staff member. A day
// without configured working hours yields an empty sequence, not an
// error. Slots are computed fresh on every call; nothing is cached.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	staffID uint,
	date time.Time,
	durationMin int,
) ([]domain.TimeSlot, error) {

	if durationMin < 1 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	return slotsForDay(ctx, uc.repo, staffID, date, time.Duration(durationMin)*time.Minute)
}

// slotsForDay is shared by availability, best-slot search and conflict
// suggestions.
func slotsForDay(
	ctx context.Context,
	repo domain.Repository,
	staffID uint,
	date time.Time,
	duration time.Duration,
) ([]domain.TimeSlot, error) {

	hours, err := repo.GetWorkingHoursForStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	window, ok := domain.DayWindow(hours, date)
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	busy, err := repo.ListForStaffBetween(ctx, staffID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	return domain.BuildSlots(window, duration, busy), nil
}

func nearestFreeSlot(
	ctx context.Context,
	repo domain.Repository,
	staffID uint,
	date time.Time,
	duration time.Duration,
	anchor time.Time,
) (*domain.TimeSlot, error) {

	slots, err := slotsForDay(ctx, repo, staffID, date, duration)
	if err != nil {
		return nil, err
	}
	return domain.NearestAvailable(slots, anchor), nil
}
