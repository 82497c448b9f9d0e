package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

func TestPlan(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	now := start.Add(-48 * time.Hour)
	ap := &models.Appointment{ID: 3, StartTime: start}

	got := Plan(ap, now, []time.Duration{24 * time.Hour, time.Hour, 30 * time.Minute})

	if len(got) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(got))
	}
	if !got[0].ScheduledFor.Equal(start.Add(-24 * time.Hour)) {
		t.Errorf("first reminder at %v", got[0].ScheduledFor)
	}
	if got[0].Kind != "24h" || got[1].Kind != "1h" || got[2].Kind != "30m" {
		t.Errorf("kinds = %s %s %s", got[0].Kind, got[1].Kind, got[2].Kind)
	}
	for i, r := range got {
		if r.AppointmentID != 3 {
			t.Errorf("reminder %d appointment id = %d", i, r.AppointmentID)
		}
		if r.Sent {
			t.Errorf("reminder %d already sent", i)
		}
	}
}

func TestPlanDropsPastOffsets(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	now := start.Add(-2 * time.Hour)
	ap := &models.Appointment{ID: 3, StartTime: start}

	got := Plan(ap, now, []time.Duration{24 * time.Hour, time.Hour})

	if len(got) != 1 || got[0].Kind != "1h" {
		t.Fatalf("expected only the 1h reminder, got %+v", got)
	}
}

func TestPlanIgnoresNonPositiveOffsets(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{ID: 3, StartTime: start}

	if got := Plan(ap, start.Add(-72*time.Hour), []time.Duration{0, -time.Hour}); len(got) != 0 {
		t.Fatalf("expected nothing, got %+v", got)
	}
}

// schedulerRepoStub overrides only what DispatchDue touches.
type schedulerRepoStub struct {
	domain.Repository

	due  []models.Reminder
	sent []uint
}

func (s *schedulerRepoStub) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error) {
	return s.due, nil
}

func (s *schedulerRepoStub) MarkReminderSent(ctx context.Context, id uint, now time.Time) error {
	s.sent = append(s.sent, id)
	return nil
}

type publisherStub struct {
	tasks []DueTask
	err   error
}

func (p *publisherStub) Publish(ctx context.Context, task DueTask) error {
	if p.err != nil {
		return p.err
	}
	p.tasks = append(p.tasks, task)
	return nil
}

func TestDispatchDue(t *testing.T) {
	repo := &schedulerRepoStub{
		due: []models.Reminder{
			{ID: 1, AppointmentID: 3, Kind: "24h"},
			{ID: 2, AppointmentID: 4, Kind: "1h"},
		},
	}
	queue := &publisherStub{}

	s := NewScheduler(repo, queue, zerolog.Nop())
	s.DispatchDue()

	if len(queue.tasks) != 2 {
		t.Fatalf("published %d tasks", len(queue.tasks))
	}
	if queue.tasks[0].AppointmentID != 3 || queue.tasks[0].Kind != "24h" {
		t.Errorf("task 0 = %+v", queue.tasks[0])
	}
	if len(repo.sent) != 2 || repo.sent[0] != 1 || repo.sent[1] != 2 {
		t.Errorf("sent = %v", repo.sent)
	}
}

func TestDispatchDueFailedPublishLeavesUnsent(t *testing.T) {
	repo := &schedulerRepoStub{
		due: []models.Reminder{{ID: 1, AppointmentID: 3, Kind: "24h"}},
	}
	queue := &publisherStub{err: errors.New("redis down")}

	s := NewScheduler(repo, queue, zerolog.Nop())
	s.DispatchDue()

	if len(repo.sent) != 0 {
		t.Fatalf("failed publish must not mark sent, got %v", repo.sent)
	}
}
