// Package storage persists the customer collection as one serialized JSON
// entry in the local key-value store (replace-whole-collection persistence).
package storage

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/minhphat/retail-crm-go/internal/domain"
	"github.com/minhphat/retail-crm-go/internal/infra/observability"
	"github.com/minhphat/retail-crm-go/internal/port"
)

// DefaultKey is the named entry holding the customer collection. The value
// layout (JSON array of customers with nested purchases) is the one bit-exact
// contract of the system.
const DefaultKey = "crm.byphone.v2"

// Customers owns the serialized collection. Persistence is best-effort:
// failures are logged and counted, never returned to callers.
type Customers struct {
	kv      port.KV
	key     string
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewCustomers creates a store over the given KV handle and entry key.
func NewCustomers(kv port.KV, key string, metrics *observability.Metrics, logger *zap.Logger) *Customers {
	if key == "" {
		key = DefaultKey
	}
	return &Customers{kv: kv, key: key, metrics: metrics, logger: logger}
}

// Load deserializes the persisted collection. A missing entry, a read error
// or a corrupt blob all degrade to an empty collection with a warning.
// Records are normalized on read (legacy dob format, purchase defaults).
func (s *Customers) Load(ctx context.Context) []domain.Customer {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("load customers failed", zap.String("key", s.key), zap.Error(err))
		s.metrics.IncrStoreFailure("load")
		return []domain.Customer{}
	}
	if !ok {
		return []domain.Customer{}
	}

	var customers []domain.Customer
	if err := json.Unmarshal(raw, &customers); err != nil {
		s.logger.Warn("load customers: corrupt blob", zap.String("key", s.key), zap.Error(err))
		s.metrics.IncrStoreFailure("load")
		return []domain.Customer{}
	}
	for i := range customers {
		customers[i].Normalize()
	}
	return customers
}

// Save serializes and persists the full collection. The write is
// all-or-nothing: serialization happens first, and a failed write leaves the
// previously persisted state untouched.
func (s *Customers) Save(ctx context.Context, customers []domain.Customer) {
	raw, err := json.Marshal(customers)
	if err != nil {
		s.logger.Warn("save customers: marshal failed", zap.Error(err))
		s.metrics.IncrStoreFailure("save")
		return
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		s.logger.Warn("save customers failed", zap.String("key", s.key), zap.Error(err))
		s.metrics.IncrStoreFailure("save")
	}
}

// Upsert replaces the customer with a matching id in place (stable position)
// or inserts a new one at the front, then persists the result.
func (s *Customers) Upsert(ctx context.Context, list []domain.Customer, customer domain.Customer) []domain.Customer {
	next := make([]domain.Customer, 0, len(list)+1)
	replaced := false
	for _, c := range list {
		if c.ID == customer.ID {
			next = append(next, customer)
			replaced = true
			continue
		}
		next = append(next, c)
	}
	if !replaced {
		next = append([]domain.Customer{customer}, next...)
	}
	s.Save(ctx, next)
	return next
}

// RemoveByID returns the list with the matching customer excluded and
// persists the result.
func (s *Customers) RemoveByID(ctx context.Context, list []domain.Customer, id string) []domain.Customer {
	next := make([]domain.Customer, 0, len(list))
	for _, c := range list {
		if c.ID != id {
			next = append(next, c)
		}
	}
	s.Save(ctx, next)
	return next
}
