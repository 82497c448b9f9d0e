package reminders

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
)

const dispatchBatchSize = 200

// Publisher is what the scheduler needs from the queue.
type Publisher interface {
	Publish(ctx context.Context, task DueTask) error
}

// Scheduler scans for due reminders once a minute and hands them to the
// dispatch queue. It never delivers anything itself.
type Scheduler struct {
	repo  domain.Repository
	queue Publisher
	log   zerolog.Logger
	cron  *cron.Cron
	now   func() time.Time
}

func NewScheduler(
	repo domain.Repository,
	queue Publisher,
	log zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		repo:  repo,
		queue: queue,
		log:   log.With().Str("component", "reminder-scheduler").Logger(),
		now:   time.Now,
	}
}

func (s *Scheduler) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("* * * * *", s.DispatchDue); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Msg("reminder scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// DispatchDue publishes every unsent reminder whose time has come and
// marks it sent. A failed publish leaves the reminder unsent for the
// next tick.
func (s *Scheduler) DispatchDue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	due, err := s.repo.ListDueReminders(ctx, s.now(), dispatchBatchSize)
	if err != nil {
		s.log.Error().Err(err).Msg("listing due reminders")
		return
	}

	for _, r := range due {
		task := DueTask{
			TaskRef:       r.TaskRef,
			AppointmentID: r.AppointmentID,
			Kind:          r.Kind,
			StartTime:     r.Appointment.StartTime,
			ClientName:    r.Appointment.Client.Name,
			ClientPhone:   r.Appointment.Client.Phone,
			ClientEmail:   r.Appointment.Client.Email,
			StaffName:     r.Appointment.Staff.Name,
			ServiceName:   r.Appointment.Service.Name,
		}

		if err := s.queue.Publish(ctx, task); err != nil {
			s.log.Error().Err(err).Uint("reminder_id", r.ID).Msg("publishing reminder")
			continue
		}
		if err := s.repo.MarkReminderSent(ctx, r.ID, s.now()); err != nil {
			s.log.Error().Err(err).Uint("reminder_id", r.ID).Msg("marking reminder sent")
			continue
		}
		s.log.Info().
			Uint("appointment_id", r.AppointmentID).
			Str("kind", r.Kind).
			Msg("reminder dispatched")
	}
}
