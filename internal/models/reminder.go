package models

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a scheduling obligation; delivery belongs to the
// external notifier consuming the dispatch queue.
type Reminder struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TaskRef uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"task_ref"`

	AppointmentID uint        `gorm:"index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Kind         string    `gorm:"size:10;not null" json:"kind"` // "24h", "1h"
	ScheduledFor time.Time `gorm:"index" json:"scheduled_for"`

	Sent   bool       `gorm:"default:false;index" json:"sent"`
	SentAt *time.Time `json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`
}
