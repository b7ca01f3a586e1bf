package model

import (
	"time"

	"github.com/google/uuid"
)

// Card priorities.
const (
	PriorityNone   = "NONE"
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

type Card struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ListID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title   string    `gorm:"not null"`
	Content *string
	// Order values are unique within a list but not contiguous; relative
	// magnitude, not absolute value, carries the display sequence.
	Order     int    `gorm:"not null"`
	Priority  string `gorm:"not null;default:'NONE';check:priority IN ('NONE', 'LOW', 'MEDIUM', 'HIGH', 'URGENT')"`
	CreatedAt time.Time
	UpdatedAt time.Time

	List List `gorm:"foreignKey:ListID"`
}

func IsValidPriority(p string) bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
