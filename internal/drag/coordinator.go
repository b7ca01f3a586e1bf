// Package drag turns drop events into board mutation intents: a drop inside
// the origin list is a reorder, a drop on another list is a cross-list move,
// and a drop with no target is a no-op.
package drag

import (
	"context"

	"flowboard/internal/model"

	"github.com/google/uuid"
)

// DropTarget is where a drag ended. CardID is set when the drop landed on a
// card rather than on the list background.
type DropTarget struct {
	ListID uuid.UUID
	CardID *uuid.UUID
}

// Event describes one completed drag gesture.
type Event struct {
	CardID       uuid.UUID
	SourceListID uuid.UUID
	Target       *DropTarget
}

type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentReorder
	IntentMove
)

// Intent is the resolved meaning of a drop. For a reorder, OrderedIDs is the
// full desired card sequence of the list; for a move, TargetListID is set.
type Intent struct {
	Kind         IntentKind
	ListID       uuid.UUID
	TargetListID uuid.UUID
	OrderedIDs   []uuid.UUID
}

// BoardMutator is the optimistic controller surface the coordinator drives.
type BoardMutator interface {
	MoveCard(ctx context.Context, ownerID uuid.UUID, slug string, cardID, sourceListID, targetListID uuid.UUID) (*model.Card, error)
	ReorderList(ctx context.Context, ownerID uuid.UUID, slug string, listID uuid.UUID, orderedIDs []uuid.UUID) ([]model.Card, error)
}

// Projections exposes the cached board needed to compute a reorder sequence.
type Projections interface {
	Get(ownerID uuid.UUID, slug string) (*model.Board, bool)
}

type Coordinator struct {
	board       BoardMutator
	projections Projections
}

func NewCoordinator(board BoardMutator, projections Projections) *Coordinator {
	return &Coordinator{board: board, projections: projections}
}

// Resolve classifies a drop. Tie-break: a target resolving to the origin
// list means reorder; anything else means move.
func (c *Coordinator) Resolve(ownerID uuid.UUID, slug string, ev Event) Intent {
	if ev.Target == nil {
		return Intent{Kind: IntentNone}
	}

	if ev.Target.ListID != ev.SourceListID {
		return Intent{
			Kind:         IntentMove,
			ListID:       ev.SourceListID,
			TargetListID: ev.Target.ListID,
		}
	}

	board, ok := c.projections.Get(ownerID, slug)
	if !ok {
		return Intent{Kind: IntentNone}
	}
	var cards []model.Card
	for i := range board.Lists {
		if board.Lists[i].ID == ev.SourceListID {
			cards = board.Lists[i].Cards
			break
		}
	}

	oldIndex, newIndex := -1, -1
	for i, card := range cards {
		if card.ID == ev.CardID {
			oldIndex = i
		}
		if ev.Target.CardID != nil && card.ID == *ev.Target.CardID {
			newIndex = i
		}
	}
	if oldIndex == -1 || newIndex == -1 || oldIndex == newIndex {
		return Intent{Kind: IntentNone}
	}

	ids := make([]uuid.UUID, len(cards))
	for i, card := range cards {
		ids[i] = card.ID
	}
	return Intent{
		Kind:       IntentReorder,
		ListID:     ev.SourceListID,
		OrderedIDs: arrayMove(ids, oldIndex, newIndex),
	}
}

// HandleDrop resolves the event and drives the optimistic controller. A
// no-op intent dispatches nothing and applies no patch.
func (c *Coordinator) HandleDrop(ctx context.Context, ownerID uuid.UUID, slug string, ev Event) error {
	intent := c.Resolve(ownerID, slug, ev)
	switch intent.Kind {
	case IntentReorder:
		_, err := c.board.ReorderList(ctx, ownerID, slug, intent.ListID, intent.OrderedIDs)
		return err
	case IntentMove:
		_, err := c.board.MoveCard(ctx, ownerID, slug, ev.CardID, ev.SourceListID, intent.TargetListID)
		return err
	default:
		return nil
	}
}

// arrayMove returns a copy of ids with the element at from moved to index to.
func arrayMove(ids []uuid.UUID, from, to int) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	out = append(out, ids[:from]...)
	out = append(out, ids[from+1:]...)
	out = append(out[:to], append([]uuid.UUID{ids[from]}, out[to:]...)...)
	return out
}
