package scheduling

import (
	"context"
	"time"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
)

type SlotSuggestion struct {
	Found bool             `json:"found"`
	Date  string           `json:"date,omitempty"`
	Slot  *domain.TimeSlot `json:"slot,omitempty"`
}

// FindBestSlot looks for the free slot nearest the preferred hour on
// the requested day, then sweeps the following days up to the search
// horizon.
type FindBestSlot struct {
	repo   domain.Repository
	policy domain.Policy
}

func NewFindBestSlot(repo domain.Repository, policy domain.Policy) *FindBestSlot {
	return &FindBestSlot{repo: repo, policy: policy}
}

func (uc *FindBestSlot) Execute(
	ctx context.Context,
	staffID uint,
	serviceID uint,
	preferredDate time.Time,
) (*SlotSuggestion, error) {

	svc, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	duration := time.Duration(svc.DurationMin) * time.Minute
	if duration <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	for offset := 0; offset <= uc.policy.SearchHorizonDays; offset++ {
		day := preferredDate.AddDate(0, 0, offset)
		anchor := time.Date(
			day.Year(), day.Month(), day.Day(),
			uc.policy.PreferredHour, 0, 0, 0,
			day.Location(),
		)

		slot, err := nearestFreeSlot(ctx, uc.repo, staffID, day, duration, anchor)
		if err != nil {
			return nil, err
		}
		if slot != nil {
			return &SlotSuggestion{
				Found: true,
				Date:  day.Format("2006-01-02"),
				Slot:  slot,
			}, nil
		}
	}

	return &SlotSuggestion{Found: false}, nil
}
