package repository

import (
	"context"
	"errors"

	"flowboard/internal/model"
	"flowboard/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// GetByID retrieves a card by its ID
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	result := r.db.WithContext(ctx).First(&card, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, result.Error
	}
	return &card, nil
}

// GetByListID retrieves all cards in a list, ordered by their order value
func (r *CardRepository) GetByListID(ctx context.Context, listID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	result := r.db.WithContext(ctx).Where("list_id = ?", listID).Order(`"order"`).Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

// MaxOrder returns the highest order value in a list, 0 for an empty list
func (r *CardRepository) MaxOrder(ctx context.Context, listID uuid.UUID) (int, error) {
	return maxOrder(r.db.WithContext(ctx), listID)
}

func maxOrder(db *gorm.DB, listID uuid.UUID) (int, error) {
	var result struct {
		Max int
	}
	err := db.Model(&model.Card{}).
		Select(`COALESCE(MAX("order"), 0) as max`).
		Where("list_id = ?", listID).
		Scan(&result).Error

	return result.Max, err
}

// CreateAtEnd inserts a card at the end of its list. The max-order lookup and
// the insert share one transaction, so a failed insert leaves no partial row
// and the computed order is consistent with what was read.
func (r *CardRepository) CreateAtEnd(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		max, err := maxOrder(tx, card.ListID)
		if err != nil {
			return err
		}
		card.Order = ordering.Append(max)
		return tx.Create(card).Error
	})
}

// MoveToList reassigns a card to another list, appending it after the target
// list's current maximum order. The source list needs no bookkeeping: list
// membership is the foreign key, and the gaps left behind are harmless.
func (r *CardRepository) MoveToList(ctx context.Context, cardID, listID uuid.UUID) (*model.Card, error) {
	var card model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&card, "id = ?", cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		max, err := maxOrder(tx, listID)
		if err != nil {
			return err
		}

		card.ListID = listID
		card.Order = ordering.Append(max)

		return tx.Model(&model.Card{}).Where("id = ?", cardID).
			Updates(map[string]interface{}{"list_id": card.ListID, "order": card.Order}).Error
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// ReorderInList rewrites every card's order in a list to the dense sequence
// implied by orderedIDs, all-or-nothing. Two sessions reordering the same
// list concurrently resolve as last-write-wins: the later transaction's
// numbering fully replaces the earlier one.
func (r *CardRepository) ReorderInList(ctx context.Context, listID uuid.UUID, orderedIDs []uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, cardID := range orderedIDs {
			result := tx.Model(&model.Card{}).Where("id = ?", cardID).
				Update("order", ordering.Slot(i))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrCardNotFound
			}
		}
		return tx.Where("list_id = ?", listID).Order(`"order"`).Find(&cards).Error
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// UpdatePriority updates a single card's priority
func (r *CardRepository) UpdatePriority(ctx context.Context, cardID uuid.UUID, priority string) (*model.Card, error) {
	result := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ?", cardID).
		Update("priority", priority)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCardNotFound
	}
	return r.GetByID(ctx, cardID)
}

// UpdateContent writes only the provided fields; omitted fields are left
// untouched, not nulled.
func (r *CardRepository) UpdateContent(ctx context.Context, cardID uuid.UUID, fields map[string]interface{}) (*model.Card, error) {
	result := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ?", cardID).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCardNotFound
	}
	return r.GetByID(ctx, cardID)
}
