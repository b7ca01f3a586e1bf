package repository

import (
	"context"
	"errors"

	"flowboard/internal/model"
	"flowboard/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateWithTemplate creates a board, its five template lists, and the seed
// cards for the Todo list in one transaction. Either all of it exists
// afterwards or none of it does.
func (r *BoardRepository) CreateWithTemplate(ctx context.Context, board *model.Board, seedCards []model.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}

		lists := make([]model.List, len(model.WorkspaceLists))
		for i, tpl := range model.WorkspaceLists {
			lists[i] = model.List{
				BoardID: board.ID,
				Title:   tpl.Title,
				Type:    tpl.Type,
				Order:   tpl.Order,
			}
		}
		if err := tx.Create(&lists).Error; err != nil {
			return err
		}

		if len(seedCards) == 0 {
			return nil
		}

		var todo model.List
		if err := tx.First(&todo, "board_id = ? AND type = ?", board.ID, model.ListTypeTodo).Error; err != nil {
			return err
		}
		for i := range seedCards {
			seedCards[i].ListID = todo.ID
			seedCards[i].Order = ordering.Slot(i)
		}
		return tx.Create(&seedCards).Error
	})
}

// FindBySlug returns the board matching owner+slug with its lists ordered by
// list order and each list's cards ordered by card order, or nil if no such
// board exists. Consumers never re-sort this shape.
func (r *BoardRepository) FindBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Lists", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order"`)
		}).
		Preload("Lists.Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order"`)
		}).
		Where("owner_id = ? AND slug = ?", ownerID, slug).
		First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

// GetOwned returns the actor's boards, newest first, with their lists.
func (r *BoardRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Preload("Lists", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order"`)
		}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) CountOwned(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Board{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// SlugTaken reports whether the owner already has a board with this slug.
// Slugs are unique per owner, not globally.
func (r *BoardRepository) SlugTaken(ctx context.Context, ownerID uuid.UUID, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Board{}).
		Where("owner_id = ? AND slug = ?", ownerID, slug).
		Count(&count).Error
	return count > 0, err
}
