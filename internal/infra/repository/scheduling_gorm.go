package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Staff").
		Preload("Service").
		Preload("Room").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) CreateAppointmentLocked(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoOverlap(tx, ap.StaffID, ap.RoomID, ap.StartTime, ap.EndTime, 0); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *SchedulingGormRepository) UpdateAppointmentLocked(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoOverlap(tx, ap.StaffID, ap.RoomID, ap.StartTime, ap.EndTime, ap.ID); err != nil {
			return err
		}
		return tx.Save(ap).Error
	})
}

func (r *SchedulingGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// assertNoOverlap re-checks under FOR UPDATE locks right before the
// write; the exclusion constraint in the schema is the final word.
func assertNoOverlap(
	tx *gorm.DB,
	staffID uint,
	roomID *uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	q := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"staff_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			staffID, "cancelled", end, start,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	if roomID != nil {
		q := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"room_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				*roomID, "cancelled", end, start,
			)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	return nil
}

// --------------------------------------------------
// Conflict / availability reads
// --------------------------------------------------

func (r *SchedulingGormRepository) ListOverlapping(
	ctx context.Context,
	staffID uint,
	roomID *uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, []models.Appointment, error) {

	var staffBusy []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			staffID, "cancelled", end, start,
		).
		Order("id ASC").
		Find(&staffBusy).Error; err != nil {
		return nil, nil, err
	}

	var roomBusy []models.Appointment
	if roomID != nil {
		if err := r.db.WithContext(ctx).
			Where(
				"room_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				*roomID, "cancelled", end, start,
			).
			Order("id ASC").
			Find(&roomBusy).Error; err != nil {
			return nil, nil, err
		}
	}

	return staffBusy, roomBusy, nil
}

func (r *SchedulingGormRepository) ListForStaffBetween(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "staff_id", "start_time", "end_time", "status").
		Where(
			"staff_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			staffID, "cancelled", end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *SchedulingGormRepository) ListBetween(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Staff").
		Preload("Service").
		Preload("Room").
		Where("start_time >= ? AND start_time < ?", start, end)

	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Recurrence
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateSeries(
	ctx context.Context,
	pattern *models.RecurrencePattern,
	parent *models.Appointment,
	children []models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pattern).Error; err != nil {
			return err
		}

		parent.RecurrencePatternID = &pattern.ID
		if err := tx.Create(parent).Error; err != nil {
			return err
		}

		for i := range children {
			children[i].ParentAppointmentID = &parent.ID
		}
		if len(children) > 0 {
			if err := tx.Create(&children).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *SchedulingGormRepository) GetWorkingHoursForStaff(
	ctx context.Context,
	staffID uint,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *SchedulingGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	staffID uint,
	rows []models.WorkingHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", staffID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].StaffID = staffID
		}
		if len(rows) > 0 {
			return tx.Create(&rows).Error
		}
		return nil
	})
}

func (r *SchedulingGormRepository) ListAllWorkingHours(
	ctx context.Context,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Order("staff_id ASC, weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *SchedulingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateReminders(
	ctx context.Context,
	reminders []models.Reminder,
) error {

	if len(reminders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&reminders).Error
}

func (r *SchedulingGormRepository) DeleteUnsentReminders(
	ctx context.Context,
	appointmentID uint,
) error {

	return r.db.WithContext(ctx).
		Where("appointment_id = ? AND sent = ?", appointmentID, false).
		Delete(&models.Reminder{}).Error
}

func (r *SchedulingGormRepository) ListDueReminders(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]models.Reminder, error) {

	var due []models.Reminder
	if err := r.db.WithContext(ctx).
		Preload("Appointment").
		Preload("Appointment.Client").
		Preload("Appointment.Staff").
		Preload("Appointment.Service").
		Where("sent = ? AND scheduled_for <= ?", false, now).
		Order("scheduled_for ASC").
		Limit(limit).
		Find(&due).Error; err != nil {
		return nil, err
	}
	return due, nil
}

func (r *SchedulingGormRepository) MarkReminderSent(
	ctx context.Context,
	id uint,
	now time.Time,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("id = ?", id).
		Updates(map[string]any{"sent": true, "sent_at": now}).Error
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
