package boardcache

import (
	"context"
	"sync"

	"flowboard/internal/model"
	"flowboard/internal/ordering"
	"flowboard/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CardMutations is the server surface the controller dispatches to.
type CardMutations interface {
	CreateCard(ctx context.Context, in service.CreateCardInput) (*model.Card, error)
	MoveCardToColumn(ctx context.Context, cardID, targetListID string) (*model.Card, error)
	ReorderCardsInList(ctx context.Context, listID string, orderedCardIDs []string) ([]model.Card, error)
	UpdateCardPriority(ctx context.Context, cardID, priority string) (*model.Card, error)
}

// BoardReader re-synchronizes the projection from server truth.
type BoardReader interface {
	GetBoardBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (*model.Board, error)
}

// Controller applies each mutation optimistically to the cached projection,
// dispatches the server mutation, and reconciles: commit the patch with the
// authoritative entities on success, restore the pre-image on failure.
//
// Mutations against one board serialize on that board's lock for the whole
// round trip, so interleaved rollbacks cannot clobber each other's
// snapshots. Each mutation still captures its own pre-image.
type Controller struct {
	cache  *Cache
	cards  CardMutations
	boards BoardReader
	log    *logrus.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewController(cache *Cache, cards CardMutations, boards BoardReader, log *logrus.Logger) *Controller {
	return &Controller{
		cache:  cache,
		cards:  cards,
		boards: boards,
		log:    log,
		locks:  map[string]*sync.Mutex{},
	}
}

func (ctl *Controller) boardLock(ownerID uuid.UUID, slug string) *sync.Mutex {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	key := cacheKey(ownerID, slug)
	lock, ok := ctl.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		ctl.locks[key] = lock
	}
	return lock
}

// Load returns the cached projection, fetching it from the server when the
// cache has no fresh entry.
func (ctl *Controller) Load(ctx context.Context, ownerID uuid.UUID, slug string) (*model.Board, error) {
	if board, ok := ctl.cache.Get(ownerID, slug); ok {
		return board, nil
	}
	board, err := ctl.boards.GetBoardBySlug(ctx, ownerID, slug)
	if err != nil {
		return nil, err
	}
	ctl.cache.Put(board)
	return board, nil
}

// CreateCard inserts a provisional placeholder card immediately, computing
// its order the same way the server will (append after the local max), then
// swaps in the authoritative entity once the server confirms.
func (ctl *Controller) CreateCard(ctx context.Context, ownerID uuid.UUID, slug string, listID uuid.UUID, title string, content *string) (*model.Card, error) {
	lock := ctl.boardLock(ownerID, slug)
	lock.Lock()
	defer lock.Unlock()

	snapshot, err := ctl.Load(ctx, ownerID, slug)
	if err != nil {
		return nil, err
	}

	work := CloneBoard(snapshot)
	target := findList(work, listID)
	if target == nil {
		return nil, service.ErrBoardNotFound
	}

	localMax := 0
	for _, card := range target.Cards {
		if card.Order > localMax {
			localMax = card.Order
		}
	}
	tempID := uuid.New()
	target.Cards = append(target.Cards, model.Card{
		ID:       tempID,
		ListID:   listID,
		Title:    title,
		Content:  content,
		Order:    ordering.Append(localMax),
		Priority: model.PriorityNone,
	})
	ctl.cache.Put(work)

	created, err := ctl.cards.CreateCard(ctx, service.CreateCardInput{
		Title:     title,
		Content:   content,
		ListID:    listID.String(),
		BoardSlug: slug,
	})
	if err != nil {
		ctl.cache.Put(snapshot)
		return nil, err
	}

	for i := range target.Cards {
		if target.Cards[i].ID == tempID {
			target.Cards[i] = *created
			break
		}
	}
	ctl.cache.Put(work)

	return created, nil
}

// MoveCard patches the projection by removing the card from its source list
// and appending it to the target list. No order is computed locally for a
// cross-list move; the server response carries the authoritative order.
func (ctl *Controller) MoveCard(ctx context.Context, ownerID uuid.UUID, slug string, cardID, sourceListID, targetListID uuid.UUID) (*model.Card, error) {
	lock := ctl.boardLock(ownerID, slug)
	lock.Lock()
	defer lock.Unlock()

	snapshot, err := ctl.Load(ctx, ownerID, slug)
	if err != nil {
		return nil, err
	}

	work := CloneBoard(snapshot)
	source := findList(work, sourceListID)
	target := findList(work, targetListID)
	if source == nil || target == nil {
		return nil, service.ErrBoardNotFound
	}

	var moved *model.Card
	for i, card := range source.Cards {
		if card.ID == cardID {
			c := card
			moved = &c
			source.Cards = append(source.Cards[:i], source.Cards[i+1:]...)
			break
		}
	}
	if moved == nil {
		return nil, service.ErrBoardNotFound
	}
	moved.ListID = targetListID
	target.Cards = append(target.Cards, *moved)
	ctl.cache.Put(work)

	confirmed, err := ctl.cards.MoveCardToColumn(ctx, cardID.String(), targetListID.String())
	if err != nil {
		ctl.cache.Put(snapshot)
		return nil, err
	}

	for i := range target.Cards {
		if target.Cards[i].ID == cardID {
			target.Cards[i] = *confirmed
			break
		}
	}
	ctl.cache.Put(work)

	return confirmed, nil
}

// ReorderList patches the list to the locally computed sequence and commits
// the server's dense renumbering so the projection matches a later refetch.
func (ctl *Controller) ReorderList(ctx context.Context, ownerID uuid.UUID, slug string, listID uuid.UUID, orderedIDs []uuid.UUID) ([]model.Card, error) {
	lock := ctl.boardLock(ownerID, slug)
	lock.Lock()
	defer lock.Unlock()

	snapshot, err := ctl.Load(ctx, ownerID, slug)
	if err != nil {
		return nil, err
	}

	work := CloneBoard(snapshot)
	list := findList(work, listID)
	if list == nil {
		return nil, service.ErrBoardNotFound
	}

	byID := make(map[uuid.UUID]model.Card, len(list.Cards))
	for _, card := range list.Cards {
		byID[card.ID] = card
	}
	reordered := make([]model.Card, 0, len(orderedIDs))
	ids := make([]string, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		if card, ok := byID[id]; ok {
			reordered = append(reordered, card)
			ids = append(ids, id.String())
		}
	}
	list.Cards = reordered
	ctl.cache.Put(work)

	confirmed, err := ctl.cards.ReorderCardsInList(ctx, listID.String(), ids)
	if err != nil {
		ctl.cache.Put(snapshot)
		return nil, err
	}

	list.Cards = confirmed
	ctl.cache.Put(work)

	return confirmed, nil
}

// SetPriority patches the card's priority in place and reconciles like the
// drag mutations. No ordering interaction.
func (ctl *Controller) SetPriority(ctx context.Context, ownerID uuid.UUID, slug string, cardID uuid.UUID, priority string) (*model.Card, error) {
	lock := ctl.boardLock(ownerID, slug)
	lock.Lock()
	defer lock.Unlock()

	snapshot, err := ctl.Load(ctx, ownerID, slug)
	if err != nil {
		return nil, err
	}

	work := CloneBoard(snapshot)
	var patched *model.Card
	for i := range work.Lists {
		for j := range work.Lists[i].Cards {
			if work.Lists[i].Cards[j].ID == cardID {
				work.Lists[i].Cards[j].Priority = priority
				patched = &work.Lists[i].Cards[j]
			}
		}
	}
	if patched == nil {
		return nil, service.ErrBoardNotFound
	}
	ctl.cache.Put(work)

	confirmed, err := ctl.cards.UpdateCardPriority(ctx, cardID.String(), priority)
	if err != nil {
		ctl.cache.Put(snapshot)
		return nil, err
	}

	*patched = *confirmed
	ctl.cache.Put(work)

	return confirmed, nil
}

func findList(board *model.Board, listID uuid.UUID) *model.List {
	for i := range board.Lists {
		if board.Lists[i].ID == listID {
			return &board.Lists[i]
		}
	}
	return nil
}
