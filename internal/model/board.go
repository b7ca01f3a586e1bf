package model

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title     string    `gorm:"not null"`
	Slug      string    `gorm:"not null;uniqueIndex:idx_boards_owner_slug"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_boards_owner_slug"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner User   `gorm:"foreignKey:OwnerID"`
	Lists []List `gorm:"foreignKey:BoardID"`
}
