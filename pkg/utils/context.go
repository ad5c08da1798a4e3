package utils

import (
	"context"

	"travel-booking/internal/data/entity"
)

type contextKey string

const (
	ActorKey contextKey = "actor"
	TokenKey contextKey = "token"
)

// GetActorFromContext returns the authenticated caller, or nil for anonymous requests.
func GetActorFromContext(ctx context.Context) *entity.Actor {
	actor, _ := ctx.Value(ActorKey).(*entity.Actor)
	return actor
}

func SetActorContext(ctx context.Context, actor *entity.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
