package scheduling

import (
	"fmt"
	"time"

	"github.com/medagenda/clinic-scheduler/internal/models"
)

type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`

	Reason                   string `json:"reason,omitempty"`
	ConflictingAppointmentID *uint  `json:"conflicting_appointment_id,omitempty"`
}

// BuildSlots steps through the working window by duration, one slot per
// step. A trailing slot that would run past the window end is dropped,
// never shortened. Each slot is marked against the busy set using the
// half-open overlap test; the overlapping appointment with the lowest
// id wins when several overlap.
func BuildSlots(window Window, duration time.Duration, busy []models.Appointment) []TimeSlot {
	if duration <= 0 {
		return nil
	}

	var slots []TimeSlot
	for cur := window.Start; !cur.Add(duration).After(window.End); cur = cur.Add(duration) {
		slot := TimeSlot{
			Start:     cur,
			End:       cur.Add(duration),
			Available: true,
		}

		if hit := firstOverlap(Window{Start: slot.Start, End: slot.End}, busy); hit != nil {
			id := hit.ID
			slot.Available = false
			slot.ConflictingAppointmentID = &id
			slot.Reason = fmt.Sprintf("booked by appointment %d", id)
		}

		slots = append(slots, slot)
	}
	return slots
}

func firstOverlap(w Window, busy []models.Appointment) *models.Appointment {
	var found *models.Appointment
	for i := range busy {
		ap := &busy[i]
		if Status(ap.Status) == StatusCancelled {
			continue
		}
		if !w.Overlaps(Window{Start: ap.StartTime, End: ap.EndTime}) {
			continue
		}
		if found == nil || ap.ID < found.ID {
			found = ap
		}
	}
	return found
}

// NearestAvailable picks the free slot whose start is closest to the
// anchor time; earlier wins a tie.
func NearestAvailable(slots []TimeSlot, anchor time.Time) *TimeSlot {
	var best *TimeSlot
	var bestDist time.Duration

	for i := range slots {
		s := &slots[i]
		if !s.Available {
			continue
		}
		dist := s.Start.Sub(anchor)
		if dist < 0 {
			dist = -dist
		}
		if best == nil || dist < bestDist {
			best = s
			bestDist = dist
		}
	}
	return best
}
