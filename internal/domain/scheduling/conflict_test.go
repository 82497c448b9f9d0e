package scheduling

import (
	"testing"
	"time"

	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

func TestWindowOverlapsIsHalfOpen(t *testing.T) {
	a := Window{Start: day(9, 0), End: day(10, 0)}

	cases := []struct {
		name string
		b    Window
		want bool
	}{
		{"identical", Window{Start: day(9, 0), End: day(10, 0)}, true},
		{"contained", Window{Start: day(9, 15), End: day(9, 45)}, true},
		{"straddles start", Window{Start: day(8, 30), End: day(9, 30)}, true},
		{"straddles end", Window{Start: day(9, 30), End: day(10, 30)}, true},
		{"back to back before", Window{Start: day(8, 0), End: day(9, 0)}, false},
		{"back to back after", Window{Start: day(10, 0), End: day(11, 0)}, false},
		{"disjoint", Window{Start: day(14, 0), End: day(15, 0)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Overlaps(tc.b); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidateWindow(t *testing.T) {
	now := day(8, 0)
	p := DefaultPolicy()

	cases := []struct {
		name string
		w    Window
		code string
	}{
		{"ok", Window{Start: day(9, 0), End: day(9, 30)}, ""},
		{"start equals end", Window{Start: day(9, 0), End: day(9, 0)}, "invalid_time_range"},
		{"end before start", Window{Start: day(10, 0), End: day(9, 0)}, "invalid_time_range"},
		{"too short", Window{Start: day(9, 0), End: day(9, 10)}, "duration_too_short"},
		{"in the past", Window{Start: day(7, 0), End: day(7, 30)}, "start_in_the_past"},
		{"before opening", Window{Start: day(6, 0).Add(48 * time.Hour), End: day(6, 30).Add(48 * time.Hour)}, "outside_business_hours"},
		{"at closing hour", Window{Start: day(19, 0), End: day(19, 30)}, "outside_business_hours"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWindow(tc.w, now, p)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("err = %v, want code %q", err, tc.code)
			}
		})
	}
}

func TestValidateWindowGraceWindow(t *testing.T) {
	now := day(9, 20)
	p := DefaultPolicy()

	// 20 minutes in the past is inside the 30-minute grace window.
	w := Window{Start: day(9, 0), End: day(9, 30)}
	if err := ValidateWindow(w, now, p); err != nil {
		t.Fatalf("start inside grace window rejected: %v", err)
	}

	// 40 minutes in the past is not.
	late := Window{Start: day(8, 40), End: day(9, 10)}
	if !httperr.IsBusiness(ValidateWindow(late, now, p), "start_in_the_past") {
		t.Fatal("start past the grace window must be rejected")
	}
}

func TestValidityConflictsCollectsEverything(t *testing.T) {
	p := DefaultPolicy()
	now := day(12, 0)

	// Zero-length window in the past and before opening hours.
	w := Window{Start: day(5, 0), End: day(5, 0)}
	got := ValidityConflicts(w, now, p)

	types := map[ConflictType]bool{}
	for _, c := range got {
		types[c.Type] = true
	}
	for _, want := range []ConflictType{ConflictInvalidDuration, ConflictPastDate, ConflictOutsideHours} {
		if !types[want] {
			t.Errorf("missing conflict %s in %v", want, got)
		}
	}
}

func TestDetectDoubleBookings(t *testing.T) {
	w := Window{Start: day(9, 0), End: day(10, 0)}

	staffBusy := []models.Appointment{
		{ID: 1, StartTime: day(9, 30), EndTime: day(10, 30), Status: "scheduled"},
		{ID: 2, StartTime: day(9, 0), EndTime: day(9, 30), Status: "cancelled"},
		{ID: 3, StartTime: day(10, 0), EndTime: day(11, 0), Status: "scheduled"},
	}
	roomBusy := []models.Appointment{
		{ID: 4, StartTime: day(9, 0), EndTime: day(9, 15), Status: "confirmed"},
	}

	got := DetectDoubleBookings(w, 0, staffBusy, roomBusy)

	if len(got) != 2 {
		t.Fatalf("expected 2 conflicts, got %d: %v", len(got), got)
	}
	if got[0].Type != ConflictStaffDoubleBooking || *got[0].ConflictingAppointmentID != 1 {
		t.Errorf("first conflict = %+v", got[0])
	}
	if got[1].Type != ConflictRoomDoubleBooking || *got[1].ConflictingAppointmentID != 4 {
		t.Errorf("second conflict = %+v", got[1])
	}
	for _, c := range got {
		if !c.Contention() {
			t.Errorf("%s should be contention", c.Type)
		}
	}
}

func TestDetectDoubleBookingsExcludesSelf(t *testing.T) {
	w := Window{Start: day(9, 0), End: day(10, 0)}
	busy := []models.Appointment{
		{ID: 5, StartTime: day(9, 0), EndTime: day(10, 0), Status: "confirmed"},
	}

	if got := DetectDoubleBookings(w, 5, busy, nil); len(got) != 0 {
		t.Fatalf("self overlap must be ignored, got %v", got)
	}
}
