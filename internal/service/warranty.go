package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/minhphat/retail-crm-go/internal/domain"
)

// Warranty scans purchase history for warranties expiring soon. A daily cron
// job refreshes the in-memory notice list; nothing is pushed anywhere, the
// notices are served on request.
type Warranty struct {
	mu       sync.RWMutex
	src      *Customers
	cron     *cron.Cron
	spec     string
	window   int // days ahead to look
	upcoming []domain.WarrantyNotice
	logger   *zap.Logger
}

// NewWarranty creates the warranty sweep with a cron spec (e.g. "0 9 * * *")
// and a lookahead window in days.
func NewWarranty(src *Customers, spec string, windowDays int, logger *zap.Logger) *Warranty {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &Warranty{src: src, spec: spec, window: windowDays, logger: logger}
}

// Start runs one sweep immediately and schedules the daily one.
func (s *Warranty) Start() error {
	s.Sweep(context.Background(), time.Now())

	c := cron.New()
	if _, err := c.AddFunc(s.spec, func() {
		s.Sweep(context.Background(), time.Now())
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	s.logger.Info("warranty scheduler started", zap.String("spec", s.spec), zap.Int("window_days", s.window))
	return nil
}

// Stop halts the scheduler.
func (s *Warranty) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep recomputes the notices: every purchase with a warranty expiring
// between now and now+window days, soonest first. Returns the notice count.
func (s *Warranty) Sweep(ctx context.Context, now time.Time) int {
	_, span := tracer.Start(ctx, "Warranty.Sweep")
	defer span.End()

	horizon := now.AddDate(0, 0, s.window)

	var notices []domain.WarrantyNotice
	for _, c := range s.src.All() {
		for _, p := range c.Purchases {
			if !p.HasWarranty() {
				continue
			}
			expiry := p.WarrantyExpiry()
			if expiry.Before(now) || expiry.After(horizon) {
				continue
			}
			notices = append(notices, domain.WarrantyNotice{
				CustomerID:    c.ID,
				CustomerName:  c.Name,
				CustomerPhone: c.Phone,
				PurchaseID:    p.ID,
				ProductName:   p.ProductName,
				ExpiresAt:     expiry,
			})
		}
	}
	sort.Slice(notices, func(i, j int) bool {
		return notices[i].ExpiresAt.Before(notices[j].ExpiresAt)
	})

	s.mu.Lock()
	s.upcoming = notices
	s.mu.Unlock()

	s.logger.Info("warranty sweep completed", zap.Int("upcoming", len(notices)))
	return len(notices)
}

// Upcoming returns the notices computed by the last sweep.
func (s *Warranty) Upcoming() []domain.WarrantyNotice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.WarrantyNotice, len(s.upcoming))
	copy(out, s.upcoming)
	return out
}
