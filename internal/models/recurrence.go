package models

import "time"

// RecurrencePattern is attached to the parent appointment of a series
// and is immutable once the series exists.
type RecurrencePattern struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Frequency string    `gorm:"size:10;not null" json:"frequency"` // daily, weekly, monthly
	Interval  int       `gorm:"default:1" json:"interval"`
	EndDate   time.Time `json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
}
