package boardcache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"flowboard/internal/boardcache"
	"flowboard/internal/model"
	"flowboard/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMutations stands in for the card service. It answers with
// authoritative entities derived from the fixture board, or fails every
// call when failErr is set.
type fakeMutations struct {
	board       *model.Board
	failErr     error
	createdID   uuid.UUID
	createOrder int
	moveOrder   int
	calls       int
}

func (f *fakeMutations) findCard(cardID uuid.UUID) *model.Card {
	for i := range f.board.Lists {
		for j := range f.board.Lists[i].Cards {
			if f.board.Lists[i].Cards[j].ID == cardID {
				return &f.board.Lists[i].Cards[j]
			}
		}
	}
	return nil
}

func (f *fakeMutations) CreateCard(ctx context.Context, in service.CreateCardInput) (*model.Card, error) {
	f.calls++
	if f.failErr != nil {
		return nil, f.failErr
	}
	return &model.Card{
		ID:       f.createdID,
		ListID:   uuid.MustParse(in.ListID),
		Title:    in.Title,
		Content:  in.Content,
		Order:    f.createOrder,
		Priority: model.PriorityNone,
	}, nil
}

func (f *fakeMutations) MoveCardToColumn(ctx context.Context, cardID, targetListID string) (*model.Card, error) {
	f.calls++
	if f.failErr != nil {
		return nil, f.failErr
	}
	card := *f.findCard(uuid.MustParse(cardID))
	card.ListID = uuid.MustParse(targetListID)
	card.Order = f.moveOrder
	return &card, nil
}

func (f *fakeMutations) ReorderCardsInList(ctx context.Context, listID string, orderedCardIDs []string) ([]model.Card, error) {
	f.calls++
	if f.failErr != nil {
		return nil, f.failErr
	}
	cards := make([]model.Card, len(orderedCardIDs))
	for i, id := range orderedCardIDs {
		card := *f.findCard(uuid.MustParse(id))
		card.Order = (i + 1) * 1000
		cards[i] = card
	}
	return cards, nil
}

func (f *fakeMutations) UpdateCardPriority(ctx context.Context, cardID, priority string) (*model.Card, error) {
	f.calls++
	if f.failErr != nil {
		return nil, f.failErr
	}
	card := *f.findCard(uuid.MustParse(cardID))
	card.Priority = priority
	return &card, nil
}

type fakeReader struct {
	board *model.Board
	calls int
}

func (f *fakeReader) GetBoardBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (*model.Board, error) {
	f.calls++
	return boardcache.CloneBoard(f.board), nil
}

type fixture struct {
	board        *model.Board
	listA, listB uuid.UUID
	c1, c2, c3   uuid.UUID
}

// newFixture builds a board with two lists: A holding two cards at orders
// 1000 and 2000, B holding one card at order 1000.
func newFixture() *fixture {
	f := &fixture{
		listA: uuid.New(),
		listB: uuid.New(),
		c1:    uuid.New(),
		c2:    uuid.New(),
		c3:    uuid.New(),
	}
	f.board = &model.Board{
		ID:      uuid.New(),
		Title:   "Sprint 12",
		Slug:    "sprint-12",
		OwnerID: uuid.New(),
		Lists: []model.List{
			{
				ID: f.listA, Title: "Todo", Type: model.ListTypeTodo, Order: 1,
				Cards: []model.Card{
					{ID: f.c1, ListID: f.listA, Title: "First", Order: 1000, Priority: model.PriorityNone},
					{ID: f.c2, ListID: f.listA, Title: "Second", Order: 2000, Priority: model.PriorityNone},
				},
			},
			{
				ID: f.listB, Title: "In Progress", Type: model.ListTypeInProgress, Order: 2,
				Cards: []model.Card{
					{ID: f.c3, ListID: f.listB, Title: "Third", Order: 1000, Priority: model.PriorityNone},
				},
			},
		},
	}
	return f
}

func setupController(fix *fixture) (*boardcache.Controller, *boardcache.Cache, *fakeMutations, *fakeReader) {
	cache := boardcache.NewCache(time.Minute)
	mutations := &fakeMutations{board: fix.board, createdID: uuid.New(), createOrder: 3000, moveOrder: 2000}
	reader := &fakeReader{board: fix.board}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return boardcache.NewController(cache, mutations, reader, log), cache, mutations, reader
}

func cachedList(t *testing.T, cache *boardcache.Cache, fix *fixture, listID uuid.UUID) []model.Card {
	t.Helper()
	board, ok := cache.Get(fix.board.OwnerID, fix.board.Slug)
	require.True(t, ok)
	for i := range board.Lists {
		if board.Lists[i].ID == listID {
			return board.Lists[i].Cards
		}
	}
	t.Fatalf("list %s not in cached board", listID)
	return nil
}

func TestLoad_ReadThrough(t *testing.T) {
	fix := newFixture()
	ctl, _, _, reader := setupController(fix)
	ctx := context.Background()

	first, err := ctl.Load(ctx, fix.board.OwnerID, fix.board.Slug)
	require.NoError(t, err)

	second, err := ctl.Load(ctx, fix.board.OwnerID, fix.board.Slug)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, reader.calls)
}

func TestCreateCard_ReplacesPlaceholderWithServerEntity(t *testing.T) {
	fix := newFixture()
	ctl, cache, mutations, _ := setupController(fix)

	created, err := ctl.CreateCard(context.Background(), fix.board.OwnerID, fix.board.Slug, fix.listA, "New card", nil)

	require.NoError(t, err)
	assert.Equal(t, mutations.createdID, created.ID)

	cards := cachedList(t, cache, fix, fix.listA)
	require.Len(t, cards, 3)
	assert.Equal(t, fix.c1, cards[0].ID)
	assert.Equal(t, fix.c2, cards[1].ID)
	assert.Equal(t, mutations.createdID, cards[2].ID)
	assert.Equal(t, 3000, cards[2].Order)
}

func TestCreateCard_RollbackRestoresPreImage(t *testing.T) {
	fix := newFixture()
	ctl, cache, mutations, _ := setupController(fix)
	mutations.failErr = errors.New("server unavailable")

	_, err := ctl.CreateCard(context.Background(), fix.board.OwnerID, fix.board.Slug, fix.listA, "New card", nil)

	require.Error(t, err)
	board, ok := cache.Get(fix.board.OwnerID, fix.board.Slug)
	require.True(t, ok)
	assert.Equal(t, fix.board, board)
}

func TestCreateCard_UnknownListIsRejected(t *testing.T) {
	fix := newFixture()
	ctl, _, mutations, _ := setupController(fix)

	_, err := ctl.CreateCard(context.Background(), fix.board.OwnerID, fix.board.Slug, uuid.New(), "New card", nil)

	assert.Error(t, err)
	assert.Zero(t, mutations.calls)
}

func TestMoveCard_CommitsAuthoritativeOrder(t *testing.T) {
	fix := newFixture()
	ctl, cache, _, _ := setupController(fix)

	moved, err := ctl.MoveCard(context.Background(), fix.board.OwnerID, fix.board.Slug, fix.c1, fix.listA, fix.listB)

	require.NoError(t, err)
	assert.Equal(t, fix.listB, moved.ListID)
	assert.Equal(t, 2000, moved.Order)

	source := cachedList(t, cache, fix, fix.listA)
	require.Len(t, source, 1)
	assert.Equal(t, fix.c2, source[0].ID)

	target := cachedList(t, cache, fix, fix.listB)
	require.Len(t, target, 2)
	assert.Equal(t, fix.c3, target[0].ID)
	assert.Equal(t, fix.c1, target[1].ID)
	assert.Equal(t, 2000, target[1].Order)
}

func TestMoveCard_RollbackRestoresExactShape(t *testing.T) {
	fix := newFixture()
	ctl, cache, mutations, _ := setupController(fix)
	mutations.failErr = errors.New("server unavailable")

	_, err := ctl.MoveCard(context.Background(), fix.board.OwnerID, fix.board.Slug, fix.c1, fix.listA, fix.listB)

	require.Error(t, err)
	board, ok := cache.Get(fix.board.OwnerID, fix.board.Slug)
	require.True(t, ok)
	// The card is back in its source list at its original position with its
	// original order; nothing is duplicated or lost.
	assert.Equal(t, fix.board, board)
}

func TestReorderList_CommitsServerRenumbering(t *testing.T) {
	fix := newFixture()
	ctl, cache, _, _ := setupController(fix)

	confirmed, err := ctl.ReorderList(context.Background(), fix.board.OwnerID, fix.board.Slug, fix.listA, []uuid.UUID{fix.c2, fix.c1})

	require.NoError(t, err)
	require.Len(t, confirmed, 2)

	cards := cachedList(t, cache, fix, fix.listA)
	require.Len(t, cards, 2)
	assert.Equal(t, fix.c2, cards[0].ID)
	assert.Equal(t, 1000, cards[0].Order)
	assert.Equal(t, fix.c1, cards[1].ID)
	assert.Equal(t, 2000, cards[1].Order)
}

func TestReorderList_RollbackRestoresPreImage(t *testing.T) {
	fix := newFixture()
	ctl, cache, mutations, _ := setupController(fix)
	mutations.failErr = errors.New("server unavailable")

	_, err := ctl.ReorderList(context.Background(), fix.board.OwnerID, fix.board.Slug, fix.listA, []uuid.UUID{fix.c2, fix.c1})

	require.Error(t, err)
	board, ok := cache.Get(fix.board.OwnerID, fix.board.Slug)
	require.True(t, ok)
	assert.Equal(t, fix.board, board)
}

func TestSetPriority_Commit(t *testing.T) {
	fix := newFixture()
	ctl, cache, _, _ := setupController(fix)

	confirmed, err := ctl.SetPriority(context.Background(), fix.board.OwnerID, fix.board.Slug, fix.c1, model.PriorityUrgent)

	require.NoError(t, err)
	assert.Equal(t, model.PriorityUrgent, confirmed.Priority)

	cards := cachedList(t, cache, fix, fix.listA)
	assert.Equal(t, model.PriorityUrgent, cards[0].Priority)
}

func TestSetPriority_RollbackRestoresPreImage(t *testing.T) {
	fix := newFixture()
	ctl, cache, mutations, _ := setupController(fix)
	mutations.failErr = errors.New("server unavailable")

	_, err := ctl.SetPriority(context.Background(), fix.board.OwnerID, fix.board.Slug, fix.c1, model.PriorityUrgent)

	require.Error(t, err)
	board, ok := cache.Get(fix.board.OwnerID, fix.board.Slug)
	require.True(t, ok)
	assert.Equal(t, fix.board, board)
}
