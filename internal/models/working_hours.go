package models

import "time"

type WorkingHours struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index:idx_staff_weekday" json:"staff_id"`

	Weekday int `gorm:"index:idx_staff_weekday" json:"weekday"`

	Active    bool   `json:"active"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
