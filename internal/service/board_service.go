package service

import (
	"context"
	"regexp"

	"flowboard/internal/auth"
	"flowboard/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxBoardsPerUser caps how many boards one account may own.
const MaxBoardsPerUser = 2

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// BoardStore is the persistence gateway surface of the board flows.
type BoardStore interface {
	CreateWithTemplate(ctx context.Context, board *model.Board, seedCards []model.Card) error
	FindBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (*model.Board, error)
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error)
	CountOwned(ctx context.Context, ownerID uuid.UUID) (int64, error)
	SlugTaken(ctx context.Context, ownerID uuid.UUID, slug string) (bool, error)
}

type BoardService struct {
	boards     BoardStore
	invalidate Invalidator
	validate   *validator.Validate
	log        *logrus.Logger
}

func NewBoardService(boards BoardStore, invalidate Invalidator, log *logrus.Logger) *BoardService {
	return &BoardService{
		boards:     boards,
		invalidate: invalidate,
		validate:   newValidator(),
		log:        log,
	}
}

type CreateBoardInput struct {
	Title string `validate:"required,min=3,max=30"`
	Slug  string `validate:"required,max=40"`
}

// Onboarding cards seeded into the Todo list of every new board, in order.
var seedCardTitles = []string{
	"Welcome to your new board",
	"Drag cards between lists",
	"Open a card to edit its details",
}

// CreateBoard creates a board together with its five template lists and the
// Todo seed cards in one atomic transaction: either all of them exist
// afterwards or none do.
func (s *BoardService) CreateBoard(ctx context.Context, in CreateBoardInput) (*model.Board, error) {
	actor := auth.ActorFrom(ctx)
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	if err := s.validate.Struct(in); err != nil {
		return nil, invalidFields(err)
	}
	if !slugPattern.MatchString(in.Slug) {
		return nil, fieldError("slug", "Slug must be lowercase and can only contain letters, numbers, and hyphens")
	}

	count, err := s.boards.CountOwned(ctx, actor.ID)
	if err != nil {
		s.log.WithError(err).Error("counting boards failed")
		return nil, ErrSomethingWentWrong
	}
	if count >= MaxBoardsPerUser {
		return nil, &DomainError{Field: "_form", Message: "Maximum number of boards reached"}
	}

	taken, err := s.boards.SlugTaken(ctx, actor.ID, in.Slug)
	if err != nil {
		s.log.WithError(err).Error("checking slug failed")
		return nil, ErrSomethingWentWrong
	}
	if taken {
		return nil, fieldError("slug", "This URL is already taken")
	}

	board := &model.Board{
		Title:   in.Title,
		Slug:    in.Slug,
		OwnerID: actor.ID,
	}
	seedCards := make([]model.Card, len(seedCardTitles))
	for i, title := range seedCardTitles {
		seedCards[i] = model.Card{Title: title, Priority: model.PriorityNone}
	}

	if err := s.boards.CreateWithTemplate(ctx, board, seedCards); err != nil {
		s.log.WithError(err).Error("creating board failed")
		return nil, ErrSomethingWentWrong
	}

	s.invalidate.BoardChanged(actor.ID, board.Slug)

	return board, nil
}

// GetBoardBySlug is the single read shape the rest of the system depends on:
// the board with its lists ordered by list order and each list's cards
// ordered by card order. Wrong owner and unknown slug are the same not-found.
func (s *BoardService) GetBoardBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (*model.Board, error) {
	board, err := s.boards.FindBySlug(ctx, ownerID, slug)
	if err != nil {
		s.log.WithError(err).Error("fetching board failed")
		return nil, ErrSomethingWentWrong
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	return board, nil
}

// GetUserBoards returns the actor's boards, newest first.
func (s *BoardService) GetUserBoards(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	boards, err := s.boards.GetOwned(ctx, ownerID)
	if err != nil {
		s.log.WithError(err).Error("fetching boards failed")
		return nil, ErrSomethingWentWrong
	}
	return boards, nil
}
