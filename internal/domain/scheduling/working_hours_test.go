package scheduling

import (
	"testing"

	"github.com/medagenda/clinic-scheduler/internal/models"
)

// 2026-09-14 is a Monday (weekday 1).
var mondayHours = []models.WorkingHours{
	{StaffID: 1, Weekday: 1, Active: true, StartTime: "08:00", EndTime: "17:00"},
	{StaffID: 1, Weekday: 2, Active: false, StartTime: "08:00", EndTime: "17:00"},
}

func TestDayWindow(t *testing.T) {
	w, ok := DayWindow(mondayHours, day(0, 0))
	if !ok {
		t.Fatal("expected a window on Monday")
	}
	if !w.Start.Equal(day(8, 0)) || !w.End.Equal(day(17, 0)) {
		t.Errorf("window = %v-%v", w.Start, w.End)
	}

	// Tuesday row exists but is inactive.
	if _, ok := DayWindow(mondayHours, day(0, 0).AddDate(0, 0, 1)); ok {
		t.Error("inactive day must yield no window")
	}

	// Wednesday has no row at all.
	if _, ok := DayWindow(mondayHours, day(0, 0).AddDate(0, 0, 2)); ok {
		t.Error("unconfigured day must yield no window")
	}
}

func TestWithinWorkingHours(t *testing.T) {
	cases := []struct {
		name string
		w    Window
		want bool
	}{
		{"inside", Window{Start: day(9, 0), End: day(10, 0)}, true},
		{"exact fit", Window{Start: day(8, 0), End: day(17, 0)}, true},
		{"starts too early", Window{Start: day(7, 30), End: day(8, 30)}, false},
		{"runs past closing", Window{Start: day(16, 30), End: day(17, 30)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WithinWorkingHours(mondayHours, tc.w); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidateWorkingHours(t *testing.T) {
	cases := []struct {
		name string
		rows []models.WorkingHours
		want bool
	}{
		{"ok", mondayHours, true},
		{"weekday out of range", []models.WorkingHours{{Weekday: 7, Active: true, StartTime: "08:00", EndTime: "17:00"}}, false},
		{"start after end", []models.WorkingHours{{Weekday: 1, Active: true, StartTime: "17:00", EndTime: "08:00"}}, false},
		{"bad clock string", []models.WorkingHours{{Weekday: 1, Active: true, StartTime: "8am", EndTime: "17:00"}}, false},
		{"inactive row unparsed", []models.WorkingHours{{Weekday: 1, Active: false, StartTime: "", EndTime: ""}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateWorkingHours(tc.rows); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
