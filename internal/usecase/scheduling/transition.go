package scheduling

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/medagenda/clinic-scheduler/internal/audit"
	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

type TransitionPayload struct {
	Reason     string
	Notes      string
	ActualCost *float64
}

// Transition drives a single lifecycle event through the state machine
// and its side effects. Unsent reminders are discarded once the
// appointment leaves the active states.
type Transition struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewTransition(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	now func() time.Time,
) *Transition {
	if now == nil {
		now = time.Now
	}
	return &Transition{repo: repo, audit: auditor, now: now}
}

func (uc *Transition) Execute(
	ctx context.Context,
	id uint,
	ev domain.Event,
	payload TransitionPayload,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if err := domain.Apply(ap, ev, uc.now(), payload.Reason, payload.Notes, payload.ActualCost); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if domain.Status(ap.Status).Terminal() {
		if err := uc.repo.DeleteUnsentReminders(ctx, ap.ID); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		StaffID:  &ap.StaffID,
		Action:   "appointment_" + string(ev),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
