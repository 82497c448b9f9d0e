package scheduling

import (
	"strings"
	"time"

	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Status is never assigned outside these functions; they are the only
// place where lifecycle timestamps are written.

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time, reason string) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return httperr.ErrBusiness("cancellation_reason_required")
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancellationReason = reason
	return nil
}

func Complete(ap *models.Appointment, now time.Time, actualCost *float64, notes string) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	if actualCost != nil {
		ap.ActualCost = *actualCost
	}
	if notes != "" {
		ap.Notes = notes
	}
	return nil
}

func MarkNoShow(ap *models.Appointment, notes string) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	if notes != "" {
		ap.Notes = notes
	}
	return nil
}

// Reschedule moves the time window only; status is preserved. Conflict
// detection against the new window is the caller's responsibility.
func Reschedule(ap *models.Appointment, start, end time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.StartTime = start
	ap.EndTime = end
	return nil
}

func Apply(ap *models.Appointment, ev Event, now time.Time, reason, notes string, actualCost *float64) error {
	switch ev {
	case EventConfirm:
		return Confirm(ap, now)
	case EventCancel:
		return Cancel(ap, now, reason)
	case EventComplete:
		return Complete(ap, now, actualCost, notes)
	case EventNoShow:
		return MarkNoShow(ap, notes)
	}
	return httperr.ErrBusiness("invalid_event")
}
