// Package boardcache holds the client-side projection of one board and the
// optimistic mutation protocol over it. The projection is read-through and
// never authoritative; the store is. Every optimistic patch is bracketed by
// a snapshot so a failed mutation restores exactly its own pre-image.
package boardcache

import (
	"time"

	"flowboard/internal/model"

	gocache "github.com/patrickmn/go-cache"
	"github.com/google/uuid"
)

// Cache stores board projections keyed by owner and slug. Entries are fresh
// for a bounded TTL; nothing pushes to them, staleness is resolved by the
// next read-through fetch or an explicit invalidation.
type Cache struct {
	store *gocache.Cache
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, 2*ttl)}
}

func cacheKey(ownerID uuid.UUID, slug string) string {
	return ownerID.String() + "/" + slug
}

func (c *Cache) Get(ownerID uuid.UUID, slug string) (*model.Board, bool) {
	v, ok := c.store.Get(cacheKey(ownerID, slug))
	if !ok {
		return nil, false
	}
	return v.(*model.Board), true
}

func (c *Cache) Put(board *model.Board) {
	c.store.SetDefault(cacheKey(board.OwnerID, board.Slug), board)
}

func (c *Cache) Invalidate(ownerID uuid.UUID, slug string) {
	c.store.Delete(cacheKey(ownerID, slug))
}

// BoardChanged implements service.Invalidator. A mutation that went through
// the optimistic controller re-populates the entry when it commits; anything
// else leaves the next read to fetch fresh state.
func (c *Cache) BoardChanged(ownerID uuid.UUID, slug string) {
	c.Invalidate(ownerID, slug)
}

// CloneBoard deep-copies a projection so a snapshot cannot be mutated by
// later patches. Pre-images for rollback must go through this.
func CloneBoard(b *model.Board) *model.Board {
	if b == nil {
		return nil
	}
	clone := *b
	clone.Lists = make([]model.List, len(b.Lists))
	for i, list := range b.Lists {
		listClone := list
		listClone.Cards = make([]model.Card, len(list.Cards))
		for j, card := range list.Cards {
			cardClone := card
			if card.Content != nil {
				content := *card.Content
				cardClone.Content = &content
			}
			listClone.Cards[j] = cardClone
		}
		clone.Lists[i] = listClone
	}
	return &clone
}
