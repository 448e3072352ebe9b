package handler

import (
	"encoding/json"
	"net/http"

	"github.com/minhphat/retail-crm-go/internal/domain"
	"github.com/minhphat/retail-crm-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Purchase Handlers
// ============================================================

// purchaseDraftHandler synthesizes a fresh purchase form for the selected
// customer. Fails when nothing is selected.
func purchaseDraftHandler(svc *service.Customers, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/purchases/draft")
		defer span.End()

		draft, err := svc.NewPurchaseDraft(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, draft)
	}
}

func savePurchaseHandler(svc *service.Customers, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/customers/{customerId}/purchases")
		defer span.End()

		var p domain.Purchase
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		c, err := svc.SavePurchase(ctx, chi.URLParam(r, "customerId"), p)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func updatePurchaseHandler(svc *service.Customers, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/customers/{customerId}/purchases/{purchaseId}")
		defer span.End()

		var p domain.Purchase
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		p.ID = chi.URLParam(r, "purchaseId")

		c, err := svc.SavePurchase(ctx, chi.URLParam(r, "customerId"), p)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func deletePurchaseHandler(svc *service.Customers, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/customers/{customerId}/purchases/{purchaseId}")
		defer span.End()

		c, err := svc.DeletePurchase(ctx, chi.URLParam(r, "customerId"), chi.URLParam(r, "purchaseId"), confirmed(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

// ============================================================
// Orders
// ============================================================

func listOrdersHandler(svc *service.Listing, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/orders")
		defer span.End()

		mode, anchor, err := parseRange(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		view := svc.Orders(ctx, mode, anchor)
		writeJSON(w, http.StatusOK, view)
	}
}
