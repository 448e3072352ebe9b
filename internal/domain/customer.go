package domain

import (
	"time"

	"github.com/minhphat/retail-crm-go/internal/dateutil"
)

// ============================================================
// Customers & Purchases
// ============================================================

// Purchase is one line of business with a customer. Fields are concrete:
// defaulting of legacy optional fields happens once, in Normalize, so
// downstream logic never re-checks for absence.
type Purchase struct {
	ID             string    `json:"id"`
	ProductName    string    `json:"productName"`
	Date           time.Time `json:"date"`
	Qty            int       `json:"qty"`
	UnitPrice      float64   `json:"unitPrice"`
	WarrantyMonths int       `json:"warrantyMonths"`
	Note           string    `json:"note,omitempty"`
}

// LineTotal is qty × unit price.
func (p Purchase) LineTotal() float64 {
	return float64(p.Qty) * p.UnitPrice
}

// HasWarranty reports whether the purchase carries a warranty at all.
func (p Purchase) HasWarranty() bool {
	return p.WarrantyMonths > 0
}

// WarrantyExpiry is the purchase date advanced by the warranty term in
// calendar months. Only meaningful when HasWarranty is true.
func (p Purchase) WarrantyExpiry() time.Time {
	return p.Date.AddDate(0, p.WarrantyMonths, 0)
}

// Normalize applies the save-time leniency policy: quantity is clamped to at
// least 1, unit price to at least 0, and a negative warranty term means no
// warranty.
func (p *Purchase) Normalize() {
	if p.Qty < 1 {
		p.Qty = 1
	}
	if p.UnitPrice < 0 {
		p.UnitPrice = 0
	}
	if p.WarrantyMonths < 0 {
		p.WarrantyMonths = 0
	}
}

// Customer is the unit of persistence: one person keyed by phone number with
// their purchase history. Purchases are newest-first; new purchases are
// prepended.
type Customer struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	DOB       string     `json:"dob"` // dd-mm-yyyy, may be empty
	CreatedAt time.Time  `json:"createdAt"`
	Purchases []Purchase `json:"purchases"`
}

// NormalizedPhone is the digits-only matching key for this customer.
func (c Customer) NormalizedPhone() string {
	return dateutil.NormalizePhone(c.Phone)
}

// Normalize repairs a customer record loaded from an older blob: legacy
// yyyy-mm-dd dates of birth become dd-mm-yyyy, purchase defaults are applied
// and a nil purchase slice becomes empty.
func (c *Customer) Normalize() {
	c.DOB = dateutil.NormalizeDMY(c.DOB)
	if c.Purchases == nil {
		c.Purchases = []Purchase{}
	}
	for i := range c.Purchases {
		c.Purchases[i].Normalize()
	}
}

// FindPurchase returns the purchase with the given id, if present.
func (c Customer) FindPurchase(id string) (Purchase, bool) {
	for _, p := range c.Purchases {
		if p.ID == id {
			return p, true
		}
	}
	return Purchase{}, false
}

// Order is one purchase flattened together with its owning customer, the row
// shape of the order list view.
type Order struct {
	Customer Customer `json:"customer"`
	Purchase Purchase `json:"purchase"`
}

// ============================================================
// Range modes
// ============================================================

// RangeMode selects the granularity of a date-range filter.
type RangeMode string

const (
	ModeDay   RangeMode = "day"
	ModeMonth RangeMode = "month"
	ModeYear  RangeMode = "year"
	ModeAll   RangeMode = "all"
)

// ParseRangeMode validates a mode string from the outside world.
func ParseRangeMode(s string) (RangeMode, error) {
	switch RangeMode(s) {
	case ModeDay, ModeMonth, ModeYear, ModeAll:
		return RangeMode(s), nil
	}
	return "", &ErrValidation{Field: "mode", Message: "must be one of day, month, year, all"}
}
