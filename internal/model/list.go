package model

import (
	"time"

	"github.com/google/uuid"
)

// List types. The set of lists for a board is fixed at creation time:
// exactly one list of each type per board.
const (
	ListTypeBacklog    = "BACKLOG"
	ListTypeTodo       = "TODO"
	ListTypeInProgress = "IN_PROGRESS"
	ListTypeDone       = "DONE"
	ListTypeCanceled   = "CANCELED"
)

type List struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_lists_board_type"`
	Title     string    `gorm:"not null"`
	Type      string    `gorm:"not null;uniqueIndex:idx_lists_board_type;check:type IN ('BACKLOG', 'TODO', 'IN_PROGRESS', 'DONE', 'CANCELED')"`
	Order     int       `gorm:"not null"`
	Collapsed bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Board Board  `gorm:"foreignKey:BoardID"`
	Cards []Card `gorm:"foreignKey:ListID"`
}

func IsValidListType(t string) bool {
	switch t {
	case ListTypeBacklog, ListTypeTodo, ListTypeInProgress, ListTypeDone, ListTypeCanceled:
		return true
	}
	return false
}

// ListTemplate describes one list of the fixed workspace template applied to
// every new board.
type ListTemplate struct {
	Title string
	Type  string
	Order int
}

var WorkspaceLists = []ListTemplate{
	{Title: "Backlog", Type: ListTypeBacklog, Order: 0},
	{Title: "Todo", Type: ListTypeTodo, Order: 1},
	{Title: "In Progress", Type: ListTypeInProgress, Order: 2},
	{Title: "Done", Type: ListTypeDone, Order: 3},
	{Title: "Canceled", Type: ListTypeCanceled, Order: 4},
}
