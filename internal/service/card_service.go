package service

import (
	"context"

	"flowboard/internal/auth"
	"flowboard/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CardStore is the persistence gateway surface the card mutations need. The
// implementations guarantee all-or-nothing semantics per call.
type CardStore interface {
	CreateAtEnd(ctx context.Context, card *model.Card) error
	MoveToList(ctx context.Context, cardID, listID uuid.UUID) (*model.Card, error)
	ReorderInList(ctx context.Context, listID uuid.UUID, orderedIDs []uuid.UUID) ([]model.Card, error)
	UpdatePriority(ctx context.Context, cardID uuid.UUID, priority string) (*model.Card, error)
	UpdateContent(ctx context.Context, cardID uuid.UUID, fields map[string]interface{}) (*model.Card, error)
}

// Invalidator marks a board-scoped read path stale after a successful
// mutation. Its mechanism is the caller's business.
type Invalidator interface {
	BoardChanged(ownerID uuid.UUID, slug string)
}

type CardService struct {
	cards      CardStore
	invalidate Invalidator
	validate   *validator.Validate
	log        *logrus.Logger
}

func NewCardService(cards CardStore, invalidate Invalidator, log *logrus.Logger) *CardService {
	return &CardService{
		cards:      cards,
		invalidate: invalidate,
		validate:   newValidator(),
		log:        log,
	}
}

type CreateCardInput struct {
	Title     string  `validate:"required,min=3,max=100"`
	Content   *string `validate:"-"`
	ListID    string  `validate:"required,uuid"`
	BoardSlug string  `validate:"required"`
}

// CreateCard appends a card to the end of a list. The order lookup and the
// insert share one transaction in the store.
func (s *CardService) CreateCard(ctx context.Context, in CreateCardInput) (*model.Card, error) {
	actor := auth.ActorFrom(ctx)
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	if err := s.validate.Struct(in); err != nil {
		return nil, invalidFields(err)
	}
	listID, err := uuid.Parse(in.ListID)
	if err != nil {
		return nil, fieldError("listId", "Invalid list ID")
	}

	card := &model.Card{
		ListID:   listID,
		Title:    in.Title,
		Content:  in.Content,
		Priority: model.PriorityNone,
	}

	if err := s.cards.CreateAtEnd(ctx, card); err != nil {
		s.log.WithError(err).Error("creating card failed")
		return nil, ErrSomethingWentWrong
	}

	s.invalidate.BoardChanged(actor.ID, in.BoardSlug)

	return card, nil
}

type moveCardInput struct {
	CardID string `validate:"required,uuid"`
	ListID string `validate:"required,uuid"`
}

// MoveCardToColumn reassigns a card to the target list with an order
// appended after the target's current maximum, independent of whatever
// orders the source list had.
func (s *CardService) MoveCardToColumn(ctx context.Context, cardID, targetListID string) (*model.Card, error) {
	if auth.ActorFrom(ctx) == nil {
		return nil, ErrNotAuthenticated
	}

	in := moveCardInput{CardID: cardID, ListID: targetListID}
	if err := s.validate.Struct(in); err != nil {
		return nil, invalidFields(err)
	}

	card, err := s.cards.MoveToList(ctx, uuid.MustParse(in.CardID), uuid.MustParse(in.ListID))
	if err != nil {
		s.log.WithError(err).Error("moving card failed")
		return nil, ErrSomethingWentWrong
	}
	return card, nil
}

// ReorderCardsInList densely renumbers a list to the given sequence.
// Reordering zero cards is meaningless and rejected before any transaction.
func (s *CardService) ReorderCardsInList(ctx context.Context, listID string, orderedCardIDs []string) ([]model.Card, error) {
	if auth.ActorFrom(ctx) == nil {
		return nil, ErrNotAuthenticated
	}

	parsedListID, err := uuid.Parse(listID)
	if err != nil {
		return nil, fieldError("listId", "Invalid list ID")
	}

	if len(orderedCardIDs) == 0 {
		return nil, &DomainError{Field: "reorderedCards", Message: "No cards to reorder"}
	}

	orderedIDs := make([]uuid.UUID, len(orderedCardIDs))
	for i, id := range orderedCardIDs {
		cardID, err := uuid.Parse(id)
		if err != nil {
			return nil, fieldError("reorderedCards", "Invalid card ID")
		}
		orderedIDs[i] = cardID
	}

	cards, err := s.cards.ReorderInList(ctx, parsedListID, orderedIDs)
	if err != nil {
		s.log.WithError(err).Error("reordering cards failed")
		return nil, ErrSomethingWentWrong
	}
	return cards, nil
}

type updatePriorityInput struct {
	CardID   string `validate:"required,uuid"`
	Priority string `validate:"required,oneof=NONE LOW MEDIUM HIGH URGENT"`
}

func (s *CardService) UpdateCardPriority(ctx context.Context, cardID, priority string) (*model.Card, error) {
	if auth.ActorFrom(ctx) == nil {
		return nil, ErrNotAuthenticated
	}

	in := updatePriorityInput{CardID: cardID, Priority: priority}
	if err := s.validate.Struct(in); err != nil {
		return nil, invalidFields(err)
	}

	card, err := s.cards.UpdatePriority(ctx, uuid.MustParse(in.CardID), in.Priority)
	if err != nil {
		s.log.WithError(err).Error("updating card priority failed")
		return nil, ErrSomethingWentWrong
	}
	return card, nil
}

type UpdateCardContentInput struct {
	Title   *string `validate:"omitempty,min=1,max=100"`
	Content *string `validate:"-"`
}

// UpdateCardContent writes only the provided fields; omitted fields are left
// untouched, not nulled.
func (s *CardService) UpdateCardContent(ctx context.Context, cardID string, in UpdateCardContentInput) (*model.Card, error) {
	if auth.ActorFrom(ctx) == nil {
		return nil, ErrNotAuthenticated
	}

	parsedCardID, err := uuid.Parse(cardID)
	if err != nil {
		return nil, fieldError("cardId", "Invalid card ID")
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, invalidFields(err)
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Content != nil {
		fields["content"] = *in.Content
	}
	if len(fields) == 0 {
		return nil, &DomainError{Field: "_form", Message: "Nothing to update"}
	}

	card, err := s.cards.UpdateContent(ctx, parsedCardID, fields)
	if err != nil {
		s.log.WithError(err).Error("updating card content failed")
		return nil, ErrSomethingWentWrong
	}
	return card, nil
}
