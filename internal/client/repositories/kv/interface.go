// Package kv provides the key/value storage behind the durable directory
// and the session scope. Values are opaque strings, the same contract as
// browser Web Storage.
package kv

import "context"

type Repository interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Has(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error

	// Update runs fn against a repository bound to a single transaction.
	Update(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}
