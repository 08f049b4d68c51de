package api

import (
	"context"
)

type keyType string

const identityKey keyType = "identity"

// identity is the signed-in author as asserted by the identity provider.
type identity struct {
	Name  string
	Email string
}

// ctxWithIdentity adds the caller's identity to the context
func ctxWithIdentity(ctx context.Context, id identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// ctxGetIdentity retrieves the caller's identity; ok is false for anonymous requests
func ctxGetIdentity(ctx context.Context) (identity, bool) {
	id, ok := ctx.Value(identityKey).(identity)
	return id, ok
}
