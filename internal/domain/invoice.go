package domain

import "time"

// ============================================================
// Printable documents
// ============================================================

// InvoiceRow is one purchase prepared for the printable invoice view.
type InvoiceRow struct {
	PurchaseID     string     `json:"purchase_id"`
	Date           time.Time  `json:"date"`
	ProductName    string     `json:"product_name"`
	Qty            int        `json:"qty"`
	UnitPrice      float64    `json:"unit_price"`
	LineTotal      float64    `json:"line_total"`
	WarrantyMonths int        `json:"warranty_months"`
	WarrantyUntil  *time.Time `json:"warranty_until,omitempty"`
	Note           string     `json:"note,omitempty"`
}

// Invoice is the assembled invoice / warranty slip document. The printable
// surface renders it; it carries no behavior.
type Invoice struct {
	CustomerID    string       `json:"customer_id"`
	CustomerName  string       `json:"customer_name"`
	CustomerPhone string       `json:"customer_phone"`
	CustomerDOB   string       `json:"customer_dob,omitempty"`
	Rows          []InvoiceRow `json:"rows"`
	GrandTotal    float64      `json:"grand_total"`
	PrintedAt     time.Time    `json:"printed_at"`
}

// Slip is the single-purchase information slip handed out for warranty
// claims.
type Slip struct {
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerDOB   string    `json:"customer_dob,omitempty"`
	ProductName   string    `json:"product_name"`
	Date          time.Time `json:"date"`
	Note          string    `json:"note,omitempty"`
	PrintedAt     time.Time `json:"printed_at"`
}

// WarrantyNotice flags a purchase whose warranty expires soon.
type WarrantyNotice struct {
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	PurchaseID    string    `json:"purchase_id"`
	ProductName   string    `json:"product_name"`
	ExpiresAt     time.Time `json:"expires_at"`
}
