package scheduling

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

// repoStub is an in-memory Repository for use case tests. Fields are
// preloaded per test; writes are recorded for assertions.
type repoStub struct {
	appointments map[uint]*models.Appointment
	services     map[uint]*models.Service
	hours        []models.WorkingHours
	staffBusy    []models.Appointment
	roomBusy     []models.Appointment
	busy         []models.Appointment
	between      []models.Appointment

	// staffBusyLater, when set, replaces staffBusy from the second
	// ListOverlapping call on. Used to simulate a lost insert race.
	staffBusyLater []models.Appointment
	overlapCalls   int

	nextID uint

	created          []*models.Appointment
	updated          []*models.Appointment
	reminders        []models.Reminder
	deletedReminders []uint

	seriesParent   *models.Appointment
	seriesChildren []models.Appointment
	seriesPattern  *models.RecurrencePattern

	createLockedErr error
	updateLockedErr error
}

func newRepoStub() *repoStub {
	return &repoStub{
		appointments: map[uint]*models.Appointment{},
		services:     map[uint]*models.Service{},
		nextID:       100,
	}
}

var _ domain.Repository = (*repoStub)(nil)

func (s *repoStub) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, ok := s.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (s *repoStub) CreateAppointmentLocked(ctx context.Context, ap *models.Appointment) error {
	if s.createLockedErr != nil {
		return s.createLockedErr
	}
	s.nextID++
	ap.ID = s.nextID
	s.created = append(s.created, ap)
	s.appointments[ap.ID] = ap
	return nil
}

func (s *repoStub) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	s.updated = append(s.updated, ap)
	s.appointments[ap.ID] = ap
	return nil
}

func (s *repoStub) UpdateAppointmentLocked(ctx context.Context, ap *models.Appointment) error {
	if s.updateLockedErr != nil {
		return s.updateLockedErr
	}
	s.updated = append(s.updated, ap)
	s.appointments[ap.ID] = ap
	return nil
}

func (s *repoStub) DeleteAppointment(ctx context.Context, id uint) error {
	if _, ok := s.appointments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.appointments, id)
	return nil
}

func (s *repoStub) ListOverlapping(ctx context.Context, staffID uint, roomID *uint, start, end time.Time) ([]models.Appointment, []models.Appointment, error) {
	s.overlapCalls++
	if s.overlapCalls > 1 && s.staffBusyLater != nil {
		return s.staffBusyLater, s.roomBusy, nil
	}
	return s.staffBusy, s.roomBusy, nil
}

func (s *repoStub) ListForStaffBetween(ctx context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	return s.busy, nil
}

func (s *repoStub) ListBetween(ctx context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	return s.between, nil
}

func (s *repoStub) CreateSeries(ctx context.Context, pattern *models.RecurrencePattern, parent *models.Appointment, children []models.Appointment) error {
	s.nextID++
	parent.ID = s.nextID
	for i := range children {
		s.nextID++
		children[i].ID = s.nextID
		children[i].ParentAppointmentID = &parent.ID
	}
	s.seriesPattern = pattern
	s.seriesParent = parent
	s.seriesChildren = children
	return nil
}

func (s *repoStub) GetWorkingHoursForStaff(ctx context.Context, staffID uint) ([]models.WorkingHours, error) {
	return s.hours, nil
}

func (s *repoStub) ReplaceWorkingHours(ctx context.Context, staffID uint, rows []models.WorkingHours) error {
	s.hours = rows
	return nil
}

func (s *repoStub) ListAllWorkingHours(ctx context.Context) ([]models.WorkingHours, error) {
	return s.hours, nil
}

func (s *repoStub) GetService(ctx context.Context, id uint) (*models.Service, error) {
	svc, ok := s.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return svc, nil
}

func (s *repoStub) CreateReminders(ctx context.Context, reminders []models.Reminder) error {
	s.reminders = append(s.reminders, reminders...)
	return nil
}

func (s *repoStub) DeleteUnsentReminders(ctx context.Context, appointmentID uint) error {
	s.deletedReminders = append(s.deletedReminders, appointmentID)
	return nil
}

func (s *repoStub) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error) {
	var due []models.Reminder
	for _, r := range s.reminders {
		if !r.Sent && !r.ScheduledFor.After(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

func (s *repoStub) MarkReminderSent(ctx context.Context, id uint, now time.Time) error {
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders[i].Sent = true
			s.reminders[i].SentAt = &now
		}
	}
	return nil
}
