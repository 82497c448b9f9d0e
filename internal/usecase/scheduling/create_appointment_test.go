package scheduling

import (
	"context"
	"testing"
	"time"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

func at(h, m int) time.Time {
	return time.Date(2026, 9, 14, h, m, 0, 0, time.UTC) // Monday
}

func fixedNow() time.Time { return at(8, 0) }

func stubWithService() *repoStub {
	repo := newRepoStub()
	repo.services[1] = &models.Service{ID: 1, Name: "Consultation", DurationMin: 30, Price: 80, Active: true}
	repo.hours = []models.WorkingHours{
		{StaffID: 2, Weekday: 1, Active: true, StartTime: "08:00", EndTime: "18:00"},
	}
	return repo
}

func TestCreateAppointmentHappyPath(t *testing.T) {
	repo := stubWithService()
	uc := NewCreateAppointment(repo, domain.DefaultPolicy(), nil, []time.Duration{24 * time.Hour, time.Hour}, fixedNow)

	res, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:  5,
		StaffID:   2,
		ServiceID: 1,
		Start:     at(10, 0),
		Notes:     "first visit",
	})
	if err != nil {
		t.Fatal(err)
	}

	ap := res.Appointment
	if ap == nil {
		t.Fatalf("expected an appointment, got %+v", res)
	}
	if !ap.EndTime.Equal(at(10, 30)) {
		t.Errorf("end = %v, want service duration applied", ap.EndTime)
	}
	if ap.Status != "scheduled" {
		t.Errorf("status = %s", ap.Status)
	}
	if ap.EstimatedCost != 80 {
		t.Errorf("estimated cost = %v", ap.EstimatedCost)
	}
	if ap.BookingRef.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("booking ref not assigned")
	}

	// Start is under 24h away, so only the 1h reminder survives.
	if len(repo.reminders) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(repo.reminders))
	}
	if !repo.reminders[0].ScheduledFor.Equal(at(9, 0)) {
		t.Errorf("reminder at %v, want 09:00", repo.reminders[0].ScheduledFor)
	}
}

func TestCreateAppointmentDurationOverride(t *testing.T) {
	repo := stubWithService()
	uc := NewCreateAppointment(repo, domain.DefaultPolicy(), nil, nil, fixedNow)

	res, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID: 5, StaffID: 2, ServiceID: 1,
		Start:       at(10, 0),
		DurationMin: 45,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Appointment.EndTime.Equal(at(10, 45)) {
		t.Errorf("end = %v, want 10:45", res.Appointment.EndTime)
	}
}

func TestCreateAppointmentUnknownService(t *testing.T) {
	repo := newRepoStub()
	uc := NewCreateAppointment(repo, domain.DefaultPolicy(), nil, nil, fixedNow)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID: 5, StaffID: 2, ServiceID: 99, Start: at(10, 0),
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("err = %v, want service_not_found", err)
	}
}

func TestCreateAppointmentValidityRejected(t *testing.T) {
	repo := stubWithService()
	uc := NewCreateAppointment(repo, domain.DefaultPolicy(), nil, nil, fixedNow)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID: 5, StaffID: 2, ServiceID: 1,
		Start: at(6, 0), // the day before now, outside grace
	})
	if _, ok := httperr.IsAnyBusiness(err); !ok {
		t.Fatalf("malformed request must be a business error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Error("nothing may be persisted on rejection")
	}
}

func TestCreateAppointmentOutsideStaffHours(t *testing.T) {
	repo := stubWithService()
	repo.hours = []models.WorkingHours{
		{StaffID: 2, Weekday: 1, Active: true, StartTime: "08:00", EndTime: "12:00"},
	}
	uc := NewCreateAppointment(repo, domain.DefaultPolicy(), nil, nil, fixedNow)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID: 5, StaffID: 2, ServiceID: 1, Start: at(14, 0),
	})
	if !httperr.IsBusiness(err, "outside_working_hours") {
		t.Fatalf("err = %v, want outside_working_hours", err)
	}
}

func TestCreateAppointmentContentionReturnsConflictsAndSuggestion(t *testing.T) {
	repo := stubWithService()
	taken := models.Appointment{
		ID: 7, StaffID: 2, StartTime: at(10, 0), EndTime: at(10, 30), Status: "confirmed",
	}
	repo.staffBusy = []models.Appointment{taken}
	repo.busy = []models.Appointment{taken}

	uc := NewCreateAppointment(repo, domain.DefaultPolicy(), nil, nil, fixedNow)

	res, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID: 5, StaffID: 2, ServiceID: 1, Start: at(10, 0),
	})
	if err != nil {
		t.Fatalf("contention must not be an error: %v", err)
	}
	if res.Appointment != nil {
		t.Fatal("no appointment may be created on contention")
	}
	if len(res.Conflicts) != 1 || res.Conflicts[0].Type != domain.ConflictStaffDoubleBooking {
		t.Fatalf("conflicts = %+v", res.Conflicts)
	}
	if res.Conflicts[0].ConflictingAppointmentID == nil || *res.Conflicts[0].ConflictingAppointmentID != 7 {
		t.Errorf("conflicting id = %v", res.Conflicts[0].ConflictingAppointmentID)
	}
	if res.Suggestion == nil {
		t.Fatal("expected a suggested slot")
	}
	if res.Suggestion.Start.Equal(at(10, 0)) {
		t.Error("suggestion must not be the contested slot")
	}
	if res.Conflicts[0].Suggestion == "" {
		t.Error("contention conflict should carry the suggestion text")
	}
}

func TestCreateAppointmentLostRaceReDetects(t *testing.T) {
	repo := stubWithService()
	repo.createLockedErr = httperr.ErrBusiness("time_conflict")
	winner := models.Appointment{
		ID: 9, StaffID: 2, StartTime: at(10, 0), EndTime: at(10, 30), Status: "scheduled",
	}
	// The snapshot check sees nothing; the re-listing after the failed
	// insert sees the winner.
	repo.staffBusyLater = []models.Appointment{winner}
	repo.busy = []models.Appointment{winner}

	uc := NewCreateAppointment(repo, domain.DefaultPolicy(), nil, nil, fixedNow)

	res, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID: 5, StaffID: 2, ServiceID: 1, Start: at(10, 0),
	})
	if err != nil {
		t.Fatalf("lost race must surface as conflicts, got error %v", err)
	}
	if res.Appointment != nil || len(res.Conflicts) == 0 {
		t.Fatalf("res = %+v", res)
	}
}
