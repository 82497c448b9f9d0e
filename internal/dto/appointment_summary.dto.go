package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentSummary struct {
	ID          uint      `json:"id"`
	BookingRef  uuid.UUID `json:"booking_ref"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	StaffName   string    `json:"staff_name"`
	ServiceName string    `json:"service_name"`
	RoomName    string    `json:"room_name,omitempty"`
}
