package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Public identifier handed out to clients; internal ids stay internal.
	BookingRef uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"booking_ref"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StaffID uint  `json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	RoomID *uint `json:"room_id"`
	Room   *Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"room,omitempty"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes              string `gorm:"size:500" json:"notes"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	EstimatedCost float64 `json:"estimated_cost"`
	ActualCost    float64 `json:"actual_cost"`
	PaymentStatus string  `gorm:"size:20;default:'pending'" json:"payment_status"`

	Rating   *int   `json:"rating,omitempty"`
	Feedback string `gorm:"size:500" json:"feedback,omitempty"`

	// Recurrence linkage: children point at the parent, the pattern
	// lives only on the parent row.
	ParentAppointmentID *uint              `gorm:"index" json:"parent_appointment_id,omitempty"`
	RecurrencePatternID *uint              `json:"recurrence_pattern_id,omitempty"`
	RecurrencePattern   *RecurrencePattern `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"recurrence_pattern,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
