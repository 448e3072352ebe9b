package handler

import (
	"encoding/json"
	"net/http"

	"github.com/minhphat/retail-crm-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Printable Document Handlers
// ============================================================

// createInvoiceHandler assembles an invoice for a customer and a set of
// purchases. Opening the document schedules the deferred print trigger.
func createInvoiceHandler(svc *service.Invoices, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/invoices")
		defer span.End()

		var req struct {
			CustomerID  string   `json:"customerId"`
			PurchaseIDs []string `json:"purchaseIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		doc, err := svc.Open(ctx, req.CustomerID, req.PurchaseIDs)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, doc)
	}
}

func createSlipHandler(svc *service.Invoices, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/invoices/slip")
		defer span.End()

		var req struct {
			CustomerID string `json:"customerId"`
			PurchaseID string `json:"purchaseId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		slip, err := svc.Slip(ctx, req.CustomerID, req.PurchaseID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, slip)
	}
}

// closeInvoiceViewHandler dismisses the printable view; closing before the
// delay elapses cancels the pending print trigger.
func closeInvoiceViewHandler(svc *service.Invoices, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /v1/invoices/close")
		defer span.End()

		cancelled := svc.CloseView()
		writeJSON(w, http.StatusOK, map[string]bool{"print_cancelled": cancelled})
	}
}
