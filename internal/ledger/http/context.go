// Package http provides the ledger REST handlers and the middleware that resolves the
// owner of each request.
package http

import (
	"context"

	"github.com/google/uuid"
)

// ownerKey is a context key type for storing the request owner.
type ownerKey struct{}

// WithOwner stores the owner id in the context.
func WithOwner(ctx context.Context, owner uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

// GetOwner retrieves the owner id from the context.
// Returns (owner, true) if an owner is present, or (uuid.Nil, false) if no owner was set.
func GetOwner(ctx context.Context) (uuid.UUID, bool) {
	owner, ok := ctx.Value(ownerKey{}).(uuid.UUID)
	return owner, ok && owner != uuid.Nil
}
