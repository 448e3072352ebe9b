package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/minhphat/retail-crm-go/internal/dateutil"
	"github.com/minhphat/retail-crm-go/internal/domain"
	"github.com/minhphat/retail-crm-go/internal/infra/observability"
	"github.com/minhphat/retail-crm-go/internal/port"
)

// CustomersView is the filtered customer list.
type CustomersView struct {
	Customers []domain.Customer `json:"customers"`
	Count     int               `json:"count"`
}

// OrdersView is the filtered, flattened order list with its grand total.
type OrdersView struct {
	Orders     []domain.Order `json:"orders"`
	Count      int            `json:"count"`
	Total      float64        `json:"total"`
	TotalLabel string         `json:"total_label"`
}

// matchAnchor reports whether ts matches the anchor at the mode's
// granularity. Comparison is in local time. An unparseable anchor never
// matches anything (the invalid-date sentinel always compares false).
func matchAnchor(ts time.Time, mode domain.RangeMode, anchor string) bool {
	base, err := dateutil.ParseDMY(anchor)
	if err != nil {
		return false
	}
	switch mode {
	case domain.ModeDay:
		return dateutil.SameDay(ts, base)
	case domain.ModeMonth:
		return dateutil.SameMonth(ts, base)
	case domain.ModeYear:
		return dateutil.SameYear(ts, base)
	}
	return true
}

// FilterCustomers keeps the customers whose creation timestamp matches the
// anchor at the mode's granularity ("all" keeps everything), sorted most
// recent first. Sorting is applied regardless of filtering.
func FilterCustomers(list []domain.Customer, mode domain.RangeMode, anchor string) []domain.Customer {
	out := make([]domain.Customer, 0, len(list))
	for _, c := range list {
		if mode == domain.ModeAll || matchAnchor(c.CreatedAt, mode, anchor) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// FilterOrders flattens every purchase with its owning customer, keeps the
// ones whose purchase date matches the anchor at the mode's granularity,
// sorts them most recent first and totals qty × unit price over the kept
// set.
func FilterOrders(list []domain.Customer, mode domain.RangeMode, anchor string) ([]domain.Order, float64) {
	var out []domain.Order
	for _, c := range list {
		for _, p := range c.Purchases {
			if mode == domain.ModeAll || matchAnchor(p.Date, mode, anchor) {
				out = append(out, domain.Order{Customer: c, Purchase: p})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Purchase.Date.After(out[j].Purchase.Date)
	})

	total := 0.0
	for _, o := range out {
		total += o.Purchase.LineTotal()
	}
	return out, total
}

// Listing serves the two filtered list views. Order views are memoized in a
// short-TTL cache keyed by collection version, so repeated renders of the
// same filter are free and mutations are never served stale.
type Listing struct {
	src     *Customers
	cache   port.Cache[OrdersView]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewListing creates the list service.
func NewListing(src *Customers, cache port.Cache[OrdersView], metrics *observability.Metrics, logger *zap.Logger) *Listing {
	return &Listing{src: src, cache: cache, metrics: metrics, logger: logger}
}

// Customers returns the filtered customer list view.
func (l *Listing) Customers(ctx context.Context, mode domain.RangeMode, anchor string) CustomersView {
	_, span := tracer.Start(ctx, "Listing.Customers")
	defer span.End()

	filtered := FilterCustomers(l.src.All(), mode, anchor)
	return CustomersView{Customers: filtered, Count: len(filtered)}
}

// Orders returns the filtered order list view with its grand total.
func (l *Listing) Orders(ctx context.Context, mode domain.RangeMode, anchor string) OrdersView {
	_, span := tracer.Start(ctx, "Listing.Orders")
	defer span.End()

	key := fmt.Sprintf("%d|%s|%s", l.src.Version(), mode, anchor)
	if view, ok := l.cache.Get(key); ok {
		l.metrics.IncrCacheHit("orders")
		return view
	}
	l.metrics.IncrCacheMiss("orders")

	orders, total := FilterOrders(l.src.All(), mode, anchor)
	if orders == nil {
		orders = []domain.Order{}
	}
	view := OrdersView{
		Orders:     orders,
		Count:      len(orders),
		Total:      total,
		TotalLabel: dateutil.FormatMoney(total),
	}
	l.cache.Set(key, view)
	return view
}
