package models

import "time"

// KeyPoint is a free-form study note. It has no update path.
type KeyPoint struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"type:varchar(500);not null" json:"content"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
