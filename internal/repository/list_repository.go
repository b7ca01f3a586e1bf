package repository

import (
	"context"
	"errors"

	"flowboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.List, error) {
	var list model.List
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

// SetCollapsed toggles a list's visibility. The list set itself is fixed at
// board creation, so this is the only list mutation there is.
func (r *ListRepository) SetCollapsed(ctx context.Context, id uuid.UUID, collapsed bool) (*model.List, error) {
	result := r.db.WithContext(ctx).Model(&model.List{}).
		Where("id = ?", id).
		Update("collapsed", collapsed)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrListNotFound
	}
	return r.GetByID(ctx, id)
}
