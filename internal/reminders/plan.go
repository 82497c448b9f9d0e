package reminders

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-scheduler/internal/models"
)

// Plan derives the reminder obligations for an appointment from the
// configured offsets before its start. Offsets that already lie in the
// past are dropped rather than fired late.
func Plan(ap *models.Appointment, now time.Time, offsets []time.Duration) []models.Reminder {
	var out []models.Reminder

	for _, offset := range offsets {
		if offset <= 0 {
			continue
		}
		at := ap.StartTime.Add(-offset)
		if at.Before(now) {
			continue
		}
		out = append(out, models.Reminder{
			TaskRef:       uuid.New(),
			AppointmentID: ap.ID,
			Kind:          kindFor(offset),
			ScheduledFor:  at,
		})
	}
	return out
}

func kindFor(offset time.Duration) string {
	if offset%time.Hour == 0 {
		return fmt.Sprintf("%dh", offset/time.Hour)
	}
	return fmt.Sprintf("%dm", offset/time.Minute)
}
