package scheduling

import (
	"context"
	"time"

	"github.com/medagenda/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// CreateAppointmentLocked inserts after re-checking for overlap
	// under row locks; it is the storage backstop for the
	// check-then-act race and fails with a time_conflict business
	// error when a concurrent booking won.
	CreateAppointmentLocked(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointmentLocked persists a moved time window with the
	// same locked overlap re-check, ignoring the appointment's own row.
	UpdateAppointmentLocked(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Conflict / availability reads --------
	ListOverlapping(
		ctx context.Context,
		staffID uint,
		roomID *uint,
		start time.Time,
		end time.Time,
	) (staffBusy []models.Appointment, roomBusy []models.Appointment, err error)

	// ListForStaffBetween returns the active (non-cancelled) bookings
	// used to mark slots busy.
	ListForStaffBetween(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// ListBetween returns appointments of every status in the range;
	// staffID 0 means all staff.
	ListBetween(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Recurrence --------
	CreateSeries(
		ctx context.Context,
		pattern *models.RecurrencePattern,
		parent *models.Appointment,
		children []models.Appointment,
	) error

	// -------- Working hours --------
	GetWorkingHoursForStaff(
		ctx context.Context,
		staffID uint,
	) ([]models.WorkingHours, error)

	ReplaceWorkingHours(
		ctx context.Context,
		staffID uint,
		rows []models.WorkingHours,
	) error

	ListAllWorkingHours(
		ctx context.Context,
	) ([]models.WorkingHours, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Reminders --------
	CreateReminders(
		ctx context.Context,
		reminders []models.Reminder,
	) error

	DeleteUnsentReminders(
		ctx context.Context,
		appointmentID uint,
	) error

	ListDueReminders(
		ctx context.Context,
		now time.Time,
		limit int,
	) ([]models.Reminder, error)

	MarkReminderSent(
		ctx context.Context,
		id uint,
		now time.Time,
	) error
}
