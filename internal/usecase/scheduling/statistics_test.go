package scheduling

import (
	"context"
	"math"
	"testing"

	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestGetStatistics(t *testing.T) {
	repo := newRepoStub()
	repo.between = []models.Appointment{
		{ID: 1, StaffID: 2, Status: "completed", ActualCost: 100, StartTime: at(9, 0), EndTime: at(10, 0)},
		{ID: 2, StaffID: 2, Status: "completed", ActualCost: 50, StartTime: at(10, 0), EndTime: at(11, 0)},
		{ID: 3, StaffID: 2, Status: "cancelled", StartTime: at(11, 0), EndTime: at(12, 0)},
		{ID: 4, StaffID: 3, Status: "no_show", StartTime: at(9, 0), EndTime: at(10, 0)},
		{ID: 5, StaffID: 3, Status: "scheduled", EstimatedCost: 999, StartTime: at(14, 0), EndTime: at(15, 0)},
	}
	repo.hours = []models.WorkingHours{
		{StaffID: 2, Weekday: 1, Active: true, StartTime: "08:00", EndTime: "18:00"},
		{StaffID: 3, Weekday: 1, Active: true, StartTime: "09:00", EndTime: "13:00"},
	}

	uc := NewGetStatistics(repo)

	// A single Monday.
	stats, err := uc.Execute(context.Background(), at(0, 0), at(0, 0).AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}

	if stats.Total != 5 {
		t.Errorf("total = %d", stats.Total)
	}
	if stats.ByStatus["completed"] != 2 || stats.ByStatus["cancelled"] != 1 || stats.ByStatus["no_show"] != 1 {
		t.Errorf("by status = %v", stats.ByStatus)
	}
	if !approx(stats.CompletionRate, 0.4) {
		t.Errorf("completion rate = %v", stats.CompletionRate)
	}
	if !approx(stats.CancellationRate, 0.2) {
		t.Errorf("cancellation rate = %v", stats.CancellationRate)
	}
	if !approx(stats.NoShowRate, 0.2) {
		t.Errorf("no-show rate = %v", stats.NoShowRate)
	}
	// Only completed appointments earn revenue.
	if !approx(stats.Revenue, 150) {
		t.Errorf("revenue = %v", stats.Revenue)
	}

	if len(stats.Utilization) != 2 {
		t.Fatalf("utilization = %+v", stats.Utilization)
	}
	// Sorted by staff id. Cancelled hours do not count as booked.
	u2, u3 := stats.Utilization[0], stats.Utilization[1]
	if u2.StaffID != 2 || !approx(u2.BookedHours, 2) || !approx(u2.AvailableHours, 10) || !approx(u2.Utilization, 0.2) {
		t.Errorf("staff 2 = %+v", u2)
	}
	if u3.StaffID != 3 || !approx(u3.BookedHours, 2) || !approx(u3.AvailableHours, 4) || !approx(u3.Utilization, 0.5) {
		t.Errorf("staff 3 = %+v", u3)
	}
}

func TestGetStatisticsEmptyRange(t *testing.T) {
	uc := NewGetStatistics(newRepoStub())

	stats, err := uc.Execute(context.Background(), at(0, 0), at(0, 0).AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 0 || stats.CompletionRate != 0 || stats.Revenue != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestGetStatisticsInvalidRange(t *testing.T) {
	uc := NewGetStatistics(newRepoStub())

	_, err := uc.Execute(context.Background(), at(0, 0), at(0, 0))
	if !httperr.IsBusiness(err, "invalid_range") {
		t.Fatalf("err = %v, want invalid_range", err)
	}
}
