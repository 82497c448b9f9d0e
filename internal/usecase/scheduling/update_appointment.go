package scheduling

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/medagenda/clinic-scheduler/internal/audit"
	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

// UpdateAppointmentInput patches the non-lifecycle fields. Status and
// the time window are deliberately absent: status moves only through
// transitions, the window only through reschedule.
type UpdateAppointmentInput struct {
	Notes         *string
	EstimatedCost *float64
	ActualCost    *float64
	PaymentStatus *string
	Rating        *int
	Feedback      *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{repo: repo, audit: auditor}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.EstimatedCost != nil {
		ap.EstimatedCost = *in.EstimatedCost
	}
	if in.ActualCost != nil {
		ap.ActualCost = *in.ActualCost
	}
	if in.PaymentStatus != nil {
		ap.PaymentStatus = *in.PaymentStatus
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, httperr.ErrBusiness("invalid_rating")
		}
		ap.Rating = in.Rating
	}
	if in.Feedback != nil {
		ap.Feedback = *in.Feedback
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StaffID:  &ap.StaffID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
