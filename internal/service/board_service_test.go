package service_test

import (
	"context"
	"errors"
	"testing"

	"flowboard/internal/model"
	"flowboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoardStore struct {
	boards  []*model.Board
	seeds   map[uuid.UUID][]model.Card
	txCount int
	failAll bool
}

func newFakeBoardStore() *fakeBoardStore {
	return &fakeBoardStore{seeds: map[uuid.UUID][]model.Card{}}
}

func (f *fakeBoardStore) CreateWithTemplate(ctx context.Context, board *model.Board, seedCards []model.Card) error {
	f.txCount++
	if f.failAll {
		return errors.New("connection refused")
	}
	board.ID = uuid.New()
	board.Lists = make([]model.List, len(model.WorkspaceLists))
	for i, tpl := range model.WorkspaceLists {
		board.Lists[i] = model.List{ID: uuid.New(), BoardID: board.ID, Title: tpl.Title, Type: tpl.Type, Order: tpl.Order}
	}
	f.boards = append(f.boards, board)
	f.seeds[board.ID] = seedCards
	return nil
}

func (f *fakeBoardStore) FindBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (*model.Board, error) {
	if f.failAll {
		return nil, errors.New("connection refused")
	}
	for _, b := range f.boards {
		if b.OwnerID == ownerID && b.Slug == slug {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBoardStore) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	if f.failAll {
		return nil, errors.New("connection refused")
	}
	var owned []model.Board
	for _, b := range f.boards {
		if b.OwnerID == ownerID {
			owned = append(owned, *b)
		}
	}
	return owned, nil
}

func (f *fakeBoardStore) CountOwned(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	if f.failAll {
		return 0, errors.New("connection refused")
	}
	var count int64
	for _, b := range f.boards {
		if b.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBoardStore) SlugTaken(ctx context.Context, ownerID uuid.UUID, slug string) (bool, error) {
	if f.failAll {
		return false, errors.New("connection refused")
	}
	for _, b := range f.boards {
		if b.OwnerID == ownerID && b.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func newBoardService(store *fakeBoardStore) (*service.BoardService, *fakeInvalidator) {
	inv := &fakeInvalidator{}
	return service.NewBoardService(store, inv, testLogger()), inv
}

func TestCreateBoard_CreatesTemplateAndSeeds(t *testing.T) {
	store := newFakeBoardStore()
	svc, inv := newBoardService(store)
	ctx, actorID := actorContext()

	board, err := svc.CreateBoard(ctx, service.CreateBoardInput{Title: "Sprint 12", Slug: "sprint-12"})

	require.NoError(t, err)
	assert.Equal(t, actorID, board.OwnerID)
	require.Len(t, board.Lists, 5)
	assert.Equal(t, model.ListTypeBacklog, board.Lists[0].Type)
	assert.Equal(t, model.ListTypeCanceled, board.Lists[4].Type)
	for i, list := range board.Lists {
		assert.Equal(t, i, list.Order)
	}
	assert.Len(t, store.seeds[board.ID], 3)
	assert.Equal(t, 1, inv.calls)
}

func TestCreateBoard_NotAuthenticated(t *testing.T) {
	store := newFakeBoardStore()
	svc, _ := newBoardService(store)

	_, err := svc.CreateBoard(context.Background(), service.CreateBoardInput{Title: "Sprint 12", Slug: "sprint-12"})

	assert.ErrorIs(t, err, service.ErrNotAuthenticated)
	assert.Zero(t, store.txCount)
}

func TestCreateBoard_SlugTaken(t *testing.T) {
	store := newFakeBoardStore()
	svc, _ := newBoardService(store)
	ctx, _ := actorContext()

	_, err := svc.CreateBoard(ctx, service.CreateBoardInput{Title: "Sprint 12", Slug: "sprint-12"})
	require.NoError(t, err)

	_, err = svc.CreateBoard(ctx, service.CreateBoardInput{Title: "Sprint 12 again", Slug: "sprint-12"})

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"This URL is already taken"}, verr.Fields["slug"])
}

func TestCreateBoard_SameSlugDifferentOwners(t *testing.T) {
	store := newFakeBoardStore()
	svc, _ := newBoardService(store)

	ctxA, _ := actorContext()
	ctxB, _ := actorContext()

	_, err := svc.CreateBoard(ctxA, service.CreateBoardInput{Title: "Sprint 12", Slug: "sprint-12"})
	require.NoError(t, err)

	_, err = svc.CreateBoard(ctxB, service.CreateBoardInput{Title: "Sprint 12", Slug: "sprint-12"})
	assert.NoError(t, err)
}

func TestCreateBoard_BoardCap(t *testing.T) {
	store := newFakeBoardStore()
	svc, _ := newBoardService(store)
	ctx, _ := actorContext()

	for i := 0; i < service.MaxBoardsPerUser; i++ {
		_, err := svc.CreateBoard(ctx, service.CreateBoardInput{Title: "Board", Slug: uuid.NewString()[:8]})
		require.NoError(t, err)
	}

	_, err := svc.CreateBoard(ctx, service.CreateBoardInput{Title: "One too many", Slug: "overflow"})

	var derr *service.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "Maximum number of boards reached", derr.Message)
}

func TestCreateBoard_InvalidSlugFormat(t *testing.T) {
	store := newFakeBoardStore()
	svc, _ := newBoardService(store)
	ctx, _ := actorContext()

	for _, slug := range []string{"Sprint-12", "sprint_12", "-sprint", "sprint-", "sprint--12"} {
		_, err := svc.CreateBoard(ctx, service.CreateBoardInput{Title: "Sprint 12", Slug: slug})

		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr, "slug %q should be rejected", slug)
		assert.Contains(t, verr.Fields, "slug")
	}
	assert.Zero(t, store.txCount)
}

func TestCreateBoard_TitleTooShort(t *testing.T) {
	store := newFakeBoardStore()
	svc, _ := newBoardService(store)
	ctx, _ := actorContext()

	_, err := svc.CreateBoard(ctx, service.CreateBoardInput{Title: "ab", Slug: "ab-board"})

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Zero(t, store.txCount)
}

func TestGetBoardBySlug_NotFound(t *testing.T) {
	store := newFakeBoardStore()
	svc, _ := newBoardService(store)

	_, err := svc.GetBoardBySlug(context.Background(), uuid.New(), "missing")

	assert.ErrorIs(t, err, service.ErrBoardNotFound)
}

func TestGetBoardBySlug_WrongOwnerIsNotFound(t *testing.T) {
	store := newFakeBoardStore()
	svc, _ := newBoardService(store)
	ctx, _ := actorContext()

	board, err := svc.CreateBoard(ctx, service.CreateBoardInput{Title: "Sprint 12", Slug: "sprint-12"})
	require.NoError(t, err)

	_, err = svc.GetBoardBySlug(context.Background(), uuid.New(), board.Slug)
	assert.ErrorIs(t, err, service.ErrBoardNotFound)

	found, err := svc.GetBoardBySlug(context.Background(), board.OwnerID, board.Slug)
	require.NoError(t, err)
	assert.Equal(t, board.ID, found.ID)
}

func TestGetBoardBySlug_StorageFailureIsGeneric(t *testing.T) {
	store := newFakeBoardStore()
	store.failAll = true
	svc, _ := newBoardService(store)

	_, err := svc.GetBoardBySlug(context.Background(), uuid.New(), "sprint-12")

	assert.ErrorIs(t, err, service.ErrSomethingWentWrong)
}

func TestGetUserBoards_OnlyOwn(t *testing.T) {
	store := newFakeBoardStore()
	svc, _ := newBoardService(store)

	ctxA, ownerA := actorContext()
	ctxB, _ := actorContext()

	_, err := svc.CreateBoard(ctxA, service.CreateBoardInput{Title: "Mine", Slug: "mine"})
	require.NoError(t, err)
	_, err = svc.CreateBoard(ctxB, service.CreateBoardInput{Title: "Theirs", Slug: "theirs"})
	require.NoError(t, err)

	boards, err := svc.GetUserBoards(context.Background(), ownerA)

	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "mine", boards[0].Slug)
}
