package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/minhphat/retail-crm-go/internal/domain"
	"github.com/minhphat/retail-crm-go/internal/infra/observability"
	"github.com/minhphat/retail-crm-go/internal/printjob"
)

// Invoices assembles printable documents and owns the deferred print
// trigger: opening a document schedules the print dialog a short moment
// later, and closing the view before it fires cancels it. At most one
// pending trigger exists at a time.
type Invoices struct {
	mu      sync.Mutex
	src     *Customers
	delay   time.Duration
	onPrint func()
	pending *printjob.Job
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewInvoices creates the invoice service. onPrint is the collaborator hook
// that actually opens the print dialog; nil falls back to a log line.
func NewInvoices(src *Customers, delay time.Duration, onPrint func(), metrics *observability.Metrics, logger *zap.Logger) *Invoices {
	if delay <= 0 {
		delay = printjob.DefaultDelay
	}
	s := &Invoices{src: src, delay: delay, onPrint: onPrint, metrics: metrics, logger: logger}
	if s.onPrint == nil {
		s.onPrint = func() { logger.Info("print dialog triggered") }
	}
	return s
}

// Open builds the invoice document for a customer and a selected subset of
// purchases, and schedules the deferred print trigger.
func (s *Invoices) Open(ctx context.Context, customerID string, purchaseIDs []string) (domain.Invoice, error) {
	_, span := tracer.Start(ctx, "Invoices.Open")
	defer span.End()

	if len(purchaseIDs) == 0 {
		return domain.Invoice{}, &domain.ErrValidation{Field: "purchases", Message: "select at least one purchase to print"}
	}

	c, err := s.src.Get(customerID)
	if err != nil {
		return domain.Invoice{}, err
	}

	rows := make([]domain.InvoiceRow, 0, len(purchaseIDs))
	grandTotal := 0.0
	for _, id := range purchaseIDs {
		p, ok := c.FindPurchase(id)
		if !ok {
			return domain.Invoice{}, &domain.ErrNotFound{Resource: "purchase", ID: id}
		}
		row := domain.InvoiceRow{
			PurchaseID:     p.ID,
			Date:           p.Date,
			ProductName:    p.ProductName,
			Qty:            p.Qty,
			UnitPrice:      p.UnitPrice,
			LineTotal:      p.LineTotal(),
			WarrantyMonths: p.WarrantyMonths,
			Note:           p.Note,
		}
		if p.HasWarranty() {
			until := p.WarrantyExpiry()
			row.WarrantyUntil = &until
		}
		rows = append(rows, row)
		grandTotal += row.LineTotal
	}

	doc := domain.Invoice{
		CustomerID:    c.ID,
		CustomerName:  c.Name,
		CustomerPhone: c.Phone,
		CustomerDOB:   c.DOB,
		Rows:          rows,
		GrandTotal:    grandTotal,
		PrintedAt:     time.Now(),
	}
	s.schedule()
	return doc, nil
}

// Slip builds the single-purchase warranty slip and schedules the print
// trigger.
func (s *Invoices) Slip(ctx context.Context, customerID, purchaseID string) (domain.Slip, error) {
	_, span := tracer.Start(ctx, "Invoices.Slip")
	defer span.End()

	c, err := s.src.Get(customerID)
	if err != nil {
		return domain.Slip{}, err
	}
	p, ok := c.FindPurchase(purchaseID)
	if !ok {
		return domain.Slip{}, &domain.ErrNotFound{Resource: "purchase", ID: purchaseID}
	}

	slip := domain.Slip{
		CustomerName:  c.Name,
		CustomerPhone: c.Phone,
		CustomerDOB:   c.DOB,
		ProductName:   p.ProductName,
		Date:          p.Date,
		Note:          p.Note,
		PrintedAt:     time.Now(),
	}
	s.schedule()
	return slip, nil
}

// CloseView cancels the pending print trigger, if any. Called when the
// printable view is dismissed before the dialog opened. Reports whether a
// trigger was actually prevented.
func (s *Invoices) CloseView() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return false
	}
	cancelled := s.pending.Cancel()
	s.pending = nil
	if cancelled {
		s.metrics.IncrPrintJob("cancelled")
	}
	return cancelled
}

func (s *Invoices) schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil && s.pending.Cancel() {
		s.metrics.IncrPrintJob("cancelled")
	}
	s.pending = printjob.After(s.delay, func() {
		s.metrics.IncrPrintJob("fired")
		s.onPrint()
	})
}
