package cont

import (
	"context"

	"github.com/JayeshSardesai/ERP-sub004/entity"
)

type contextKey string

const identityKey contextKey = "identity"

// PutIdentity stores the authenticated identity in the request context.
func PutIdentity(ctx context.Context, id *entity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the authenticated identity, or nil when the
// request was not authenticated.
func GetIdentity(ctx context.Context) *entity.Identity {
	id, ok := ctx.Value(identityKey).(*entity.Identity)
	if !ok {
		return nil
	}
	return id
}
