package auth

import (
	"context"

	"github.com/google/uuid"
)

// Actor is the authenticated principal of a request.
type Actor struct {
	ID uuid.UUID
}

type actorKey struct{}

func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the authenticated actor, or nil when the context carries
// none. Every mutating operation consults this before doing anything else.
func ActorFrom(ctx context.Context) *Actor {
	actor, _ := ctx.Value(actorKey{}).(*Actor)
	return actor
}
