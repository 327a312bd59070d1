// Package store holds the storefront's only persistent state: the auth
// token and the identity cached next to it. It is an opaque key-value
// store to the rest of the application; carts and filters never land
// here.
package store

import (
	"context"
	"time"
)

// TokenStore is the key-value surface the session layer talks to.
// Get returns "" without error for an absent key.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
