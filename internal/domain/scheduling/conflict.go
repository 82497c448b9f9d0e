package scheduling

import (
	"fmt"
	"time"

	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

// ===============================
// Conflict model
// ===============================

type ConflictType string

const (
	ConflictStaffDoubleBooking ConflictType = "staff_double_booking"
	ConflictRoomDoubleBooking  ConflictType = "room_double_booking"
	ConflictOutsideHours       ConflictType = "outside_hours"
	ConflictPastDate           ConflictType = "past_date"
	ConflictInvalidDuration    ConflictType = "invalid_duration"
)

type Conflict struct {
	Type                     ConflictType `json:"type"`
	Description              string       `json:"description"`
	ConflictTime             time.Time    `json:"conflict_time"`
	Suggestion               string       `json:"suggestion,omitempty"`
	ConflictingAppointmentID *uint        `json:"conflicting_appointment_id,omitempty"`
}

// Contention reports whether the conflict is recoverable resource
// contention (pick another slot) rather than a malformed request.
func (c Conflict) Contention() bool {
	return c.Type == ConflictStaffDoubleBooking || c.Type == ConflictRoomDoubleBooking
}

// ===============================
// Time windows
// ===============================

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps uses the half-open test: touching windows do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// ===============================
// Scheduling policy
// ===============================

// Policy carries the clinic-wide rules that are business configuration,
// not invariants.
type Policy struct {
	GraceWindow       time.Duration // how far in the past a start is still bookable
	OpenHour          int           // clinic-wide floor, inclusive
	CloseHour         int           // clinic-wide ceiling, exclusive
	MinDuration       time.Duration
	PreferredHour     int // best-slot search anchor
	SearchHorizonDays int
	MaxOccurrences    int
}

func DefaultPolicy() Policy {
	return Policy{
		GraceWindow:       30 * time.Minute,
		OpenHour:          7,
		CloseHour:         19,
		MinDuration:       15 * time.Minute,
		PreferredHour:     9,
		SearchHorizonDays: 7,
		MaxOccurrences:    365,
	}
}

// ===============================
// Detection
// ===============================

// ValidateWindow runs the well-formedness checks in a fixed order:
// temporal validity first, then clinic hours. Failures are malformed
// requests and are returned as business errors, never as conflict data.
func ValidateWindow(w Window, now time.Time, p Policy) error {
	if !w.End.After(w.Start) {
		return httperr.ErrBusiness("invalid_time_range")
	}
	if w.Duration() < p.MinDuration {
		return httperr.ErrBusiness("duration_too_short")
	}
	if w.Start.Before(now.Add(-p.GraceWindow)) {
		return httperr.ErrBusiness("start_in_the_past")
	}
	if h := w.Start.Hour(); h < p.OpenHour || h >= p.CloseHour {
		return httperr.ErrBusiness("outside_business_hours")
	}
	return nil
}

// ValidityConflicts expresses the same checks as typed conflict data,
// for the dry-run conflict endpoint where nothing is being persisted.
func ValidityConflicts(w Window, now time.Time, p Policy) []Conflict {
	var out []Conflict

	if !w.End.After(w.Start) || w.Duration() < p.MinDuration {
		out = append(out, Conflict{
			Type:         ConflictInvalidDuration,
			Description:  fmt.Sprintf("appointment must last at least %s", p.MinDuration),
			ConflictTime: w.Start,
		})
	}
	if w.Start.Before(now.Add(-p.GraceWindow)) {
		out = append(out, Conflict{
			Type:         ConflictPastDate,
			Description:  "start time is in the past",
			ConflictTime: w.Start,
		})
	}
	if h := w.Start.Hour(); h < p.OpenHour || h >= p.CloseHour {
		out = append(out, Conflict{
			Type:         ConflictOutsideHours,
			Description:  fmt.Sprintf("clinic accepts bookings between %02d:00 and %02d:00", p.OpenHour, p.CloseHour),
			ConflictTime: w.Start,
		})
	}
	return out
}

// DetectDoubleBookings scans existing appointments for staff and room
// overlap. Cancelled appointments never conflict; excludeID lets a
// reschedule ignore its own current window. All checks run so the full
// conflict set comes back in one call.
func DetectDoubleBookings(w Window, excludeID uint, staffBusy, roomBusy []models.Appointment) []Conflict {
	var out []Conflict

	for _, ap := range staffBusy {
		if ap.ID == excludeID || Status(ap.Status) == StatusCancelled {
			continue
		}
		if w.Overlaps(Window{Start: ap.StartTime, End: ap.EndTime}) {
			id := ap.ID
			out = append(out, Conflict{
				Type: ConflictStaffDoubleBooking,
				Description: fmt.Sprintf("staff member already booked %s-%s",
					ap.StartTime.Format("15:04"), ap.EndTime.Format("15:04")),
				ConflictTime:             ap.StartTime,
				ConflictingAppointmentID: &id,
			})
		}
	}

	for _, ap := range roomBusy {
		if ap.ID == excludeID || Status(ap.Status) == StatusCancelled {
			continue
		}
		if w.Overlaps(Window{Start: ap.StartTime, End: ap.EndTime}) {
			id := ap.ID
			out = append(out, Conflict{
				Type: ConflictRoomDoubleBooking,
				Description: fmt.Sprintf("room already booked %s-%s",
					ap.StartTime.Format("15:04"), ap.EndTime.Format("15:04")),
				ConflictTime:             ap.StartTime,
				ConflictingAppointmentID: &id,
			})
		}
	}

	return out
}
