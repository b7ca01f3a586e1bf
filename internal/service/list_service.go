package service

import (
	"context"

	"flowboard/internal/auth"
	"flowboard/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ListStore is the persistence gateway surface of list mutations. Lists are
// fixed at board creation; only the collapsed flag ever changes.
type ListStore interface {
	SetCollapsed(ctx context.Context, id uuid.UUID, collapsed bool) (*model.List, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.List, error)
}

type ListService struct {
	lists      ListStore
	invalidate Invalidator
	log        *logrus.Logger
}

func NewListService(lists ListStore, invalidate Invalidator, log *logrus.Logger) *ListService {
	return &ListService{lists: lists, invalidate: invalidate, log: log}
}

type ToggleListCollapsedInput struct {
	ListID    string
	Collapsed bool
	BoardSlug string
}

func (s *ListService) ToggleListCollapsed(ctx context.Context, in ToggleListCollapsedInput) (*model.List, error) {
	actor := auth.ActorFrom(ctx)
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	listID, err := uuid.Parse(in.ListID)
	if err != nil {
		return nil, fieldError("listId", "Invalid list ID")
	}

	list, err := s.lists.SetCollapsed(ctx, listID, in.Collapsed)
	if err != nil {
		s.log.WithError(err).Error("toggling list failed")
		return nil, ErrSomethingWentWrong
	}

	if in.BoardSlug != "" {
		s.invalidate.BoardChanged(actor.ID, in.BoardSlug)
	}

	return list, nil
}
