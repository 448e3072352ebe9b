// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/minhphat/retail-crm-go/internal/domain"
)

// KV is a local key-value store holding named serialized entries. It is the
// Go analogue of the browser's localStorage: one writer, small values,
// all-or-nothing writes.
type KV interface {
	// Get returns the entry for key. The boolean is false when the key has
	// never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the entry for key atomically.
	Set(ctx context.Context, key string, value []byte) error
}

// CustomerStore owns the serialized customer collection. Persistence is
// best-effort: Load and Save absorb failures (logged, never propagated), and
// Upsert/RemoveByID persist their result as a side effect before returning.
type CustomerStore interface {
	Load(ctx context.Context) []domain.Customer
	Save(ctx context.Context, customers []domain.Customer)
	Upsert(ctx context.Context, list []domain.Customer, customer domain.Customer) []domain.Customer
	RemoveByID(ctx context.Context, list []domain.Customer, id string) []domain.Customer
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
