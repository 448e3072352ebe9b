package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/minhphat/retail-crm-go/internal/dateutil"
	"github.com/minhphat/retail-crm-go/internal/domain"
	"github.com/minhphat/retail-crm-go/internal/infra/observability"
	"github.com/minhphat/retail-crm-go/internal/port"
)

var tracer = otel.Tracer("service/crm")

// maxSuggestions caps the phone autocomplete list.
const maxSuggestions = 8

// Customers owns the working collection and the current selection. The store
// persists every structural change; between loads the in-memory copy is the
// authoritative one.
type Customers struct {
	mu      sync.RWMutex
	store   port.CustomerStore
	metrics *observability.Metrics
	logger  *zap.Logger

	list       []domain.Customer
	selectedID string
	editingID  string
	version    uint64
}

// NewCustomers creates the customer service and loads the persisted
// collection.
func NewCustomers(ctx context.Context, store port.CustomerStore, metrics *observability.Metrics, logger *zap.Logger) *Customers {
	s := &Customers{store: store, metrics: metrics, logger: logger}
	s.list = store.Load(ctx)
	logger.Info("customer collection loaded", zap.Int("customers", len(s.list)))
	return s
}

// All returns a snapshot of the working collection.
func (s *Customers) All() []domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Customer, len(s.list))
	copy(out, s.list)
	return out
}

// Version increments on every mutation; list caches key on it.
func (s *Customers) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Selected returns the currently selected customer, if any.
func (s *Customers) Selected() (domain.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(s.selectedID)
}

// Editing reports whether the selected customer is in the in-edit state (a
// just-created customer opens its edit form immediately).
func (s *Customers) Editing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editingID != "" && s.editingID == s.selectedID
}

// Get looks a customer up by id without touching the selection. Printable
// views and other read-only consumers use this instead of Select.
func (s *Customers) Get(id string) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.findLocked(id)
	if !ok {
		return domain.Customer{}, &domain.ErrNotFound{Resource: "customer", ID: id}
	}
	return c, nil
}

func (s *Customers) findLocked(id string) (domain.Customer, bool) {
	if id == "" {
		return domain.Customer{}, false
	}
	for _, c := range s.list {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Customer{}, false
}

// ConfirmPhone resolves a typed phone number: the first customer whose
// normalized phone matches is selected; otherwise a new customer is created
// with the normalized phone, persisted, selected and marked in-edit.
// Duplicate phones are allowed in the collection; lookup is first match
// wins.
func (s *Customers) ConfirmPhone(ctx context.Context, raw string) (domain.Customer, bool, error) {
	ctx, span := tracer.Start(ctx, "Customers.ConfirmPhone")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("confirm_phone", time.Since(start)) }()

	clean := dateutil.NormalizePhone(raw)
	if clean == "" {
		return domain.Customer{}, false, &domain.ErrValidation{Field: "phone", Message: "phone number required"}
	}
	span.SetAttributes(attribute.Int("phone.digits", len(clean)))

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.list {
		if c.NormalizedPhone() == clean {
			s.selectedID = c.ID
			s.editingID = ""
			return c, false, nil
		}
	}

	newC := domain.Customer{
		ID:        uuid.NewString(),
		Phone:     clean,
		CreatedAt: time.Now(),
		Purchases: []domain.Purchase{},
	}
	s.list = s.store.Upsert(ctx, s.list, newC)
	s.selectedID = newC.ID
	s.editingID = newC.ID
	s.version++
	s.logger.Info("customer created", zap.String("customer_id", newC.ID))
	return newC, true, nil
}

// Select makes an existing customer the current one (picked from the
// suggestion list).
func (s *Customers) Select(id string) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.findLocked(id)
	if !ok {
		return domain.Customer{}, &domain.ErrNotFound{Resource: "customer", ID: id}
	}
	s.selectedID = c.ID
	s.editingID = ""
	return c, nil
}

// SaveCustomer replaces the customer with a matching id with the edited
// value and keeps it selected. Name, phone and a parseable date of birth are
// required.
func (s *Customers) SaveCustomer(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	ctx, span := tracer.Start(ctx, "Customers.SaveCustomer")
	defer span.End()

	if strings.TrimSpace(c.Phone) == "" {
		return domain.Customer{}, &domain.ErrValidation{Field: "phone", Message: "phone number required"}
	}
	c.DOB = dateutil.NormalizeDMY(c.DOB)
	if c.DOB == "" {
		return domain.Customer{}, &domain.ErrValidation{Field: "dob", Message: "date of birth required"}
	}
	if _, err := dateutil.ParseDMY(c.DOB); err != nil {
		return domain.Customer{}, &domain.ErrValidation{Field: "dob", Message: "expected dd-mm-yyyy"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.findLocked(c.ID)
	if !ok {
		return domain.Customer{}, &domain.ErrNotFound{Resource: "customer", ID: c.ID}
	}
	// Identity and history are immutable through the edit form.
	c.CreatedAt = existing.CreatedAt
	c.Purchases = existing.Purchases

	s.list = s.store.Upsert(ctx, s.list, c)
	s.selectedID = c.ID
	s.editingID = ""
	s.version++
	return c, nil
}

// RemoveCustomer deletes a customer outright. No UI flow does this today;
// it exists as an explicitly confirmed capability.
func (s *Customers) RemoveCustomer(ctx context.Context, id string, confirmed bool) error {
	ctx, span := tracer.Start(ctx, "Customers.RemoveCustomer")
	defer span.End()

	if !confirmed {
		return &domain.ErrConfirmationRequired{Action: "delete customer"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findLocked(id); !ok {
		return &domain.ErrNotFound{Resource: "customer", ID: id}
	}
	s.list = s.store.RemoveByID(ctx, s.list, id)
	if s.selectedID == id {
		s.selectedID = ""
		s.editingID = ""
	}
	s.version++
	return nil
}

// NewPurchaseDraft synthesizes a fresh purchase for the selected customer:
// new id, current timestamp, quantity 1, zero price. Requires a selection.
func (s *Customers) NewPurchaseDraft(ctx context.Context) (domain.Purchase, error) {
	_, span := tracer.Start(ctx, "Customers.NewPurchaseDraft")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.findLocked(s.selectedID); !ok {
		return domain.Purchase{}, &domain.ErrNoCustomerSelected{}
	}
	return domain.Purchase{
		ID:   uuid.NewString(),
		Date: time.Now(),
		Qty:  1,
	}, nil
}

// SavePurchase saves a purchase into the given customer's history. Quantity
// is clamped to at least 1 and price to at least 0 rather than rejected. An
// existing purchase id is replaced in place; a new one is prepended. The
// owning customer is persisted and becomes the selection.
func (s *Customers) SavePurchase(ctx context.Context, customerID string, p domain.Purchase) (domain.Customer, error) {
	ctx, span := tracer.Start(ctx, "Customers.SavePurchase")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("save_purchase", time.Since(start)) }()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	p.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.findLocked(customerID)
	if !ok {
		return domain.Customer{}, &domain.ErrNotFound{Resource: "customer", ID: customerID}
	}

	replaced := false
	next := make([]domain.Purchase, 0, len(c.Purchases)+1)
	for _, x := range c.Purchases {
		if x.ID == p.ID {
			next = append(next, p)
			replaced = true
			continue
		}
		next = append(next, x)
	}
	if !replaced {
		next = append([]domain.Purchase{p}, next...)
	}
	c.Purchases = next

	s.list = s.store.Upsert(ctx, s.list, c)
	s.selectedID = c.ID
	s.version++
	return c, nil
}

// DeletePurchase removes a purchase by id. The destructive action must be
// explicitly confirmed by the caller; declining leaves state unchanged.
func (s *Customers) DeletePurchase(ctx context.Context, customerID, purchaseID string, confirmed bool) (domain.Customer, error) {
	ctx, span := tracer.Start(ctx, "Customers.DeletePurchase")
	defer span.End()

	if !confirmed {
		return domain.Customer{}, &domain.ErrConfirmationRequired{Action: "delete purchase"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.findLocked(customerID)
	if !ok {
		return domain.Customer{}, &domain.ErrNotFound{Resource: "customer", ID: customerID}
	}
	if _, ok := c.FindPurchase(purchaseID); !ok {
		return domain.Customer{}, &domain.ErrNotFound{Resource: "purchase", ID: purchaseID}
	}

	next := make([]domain.Purchase, 0, len(c.Purchases)-1)
	for _, x := range c.Purchases {
		if x.ID != purchaseID {
			next = append(next, x)
		}
	}
	c.Purchases = next

	s.list = s.store.Upsert(ctx, s.list, c)
	s.version++
	return c, nil
}

// Suggest returns up to eight customers whose normalized phone starts with
// the normalized query, ordered by phone.
func (s *Customers) Suggest(raw string) []domain.Customer {
	clean := dateutil.NormalizePhone(raw)
	if clean == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Customer
	for _, c := range s.list {
		if strings.HasPrefix(c.NormalizedPhone(), clean) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NormalizedPhone() < out[j].NormalizedPhone()
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
