package models

import "time"

type Task struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Name           string     `gorm:"type:varchar(200);not null" json:"name"`
	Type           string     `gorm:"type:varchar(50);not null" json:"type"`
	StartDate      *time.Time `gorm:"type:date" json:"start_date"`
	Deadline       time.Time  `gorm:"type:date;not null" json:"deadline"`
	EstimatedHours int        `gorm:"not null" json:"estimated_hours"`
	Difficulty     int        `gorm:"not null" json:"difficulty"`
	Completed      bool       `gorm:"not null;default:false" json:"completed"`
	UserID         uint64     `gorm:"not null;index" json:"user_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
