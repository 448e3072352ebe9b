package handler

import (
	"encoding/json"
	"net/http"

	"github.com/minhphat/retail-crm-go/internal/autocomplete"
	"github.com/minhphat/retail-crm-go/internal/domain"
	"github.com/minhphat/retail-crm-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Customer Handlers
// ============================================================

// confirmPhoneHandler resolves a typed phone number into a selected customer,
// creating one when no existing phone matches.
func confirmPhoneHandler(svc *service.Customers, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/customers/confirm-phone")
		defer span.End()

		var req struct {
			Phone string `json:"phone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		c, created, err := svc.ConfirmPhone(ctx, req.Phone)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		span.SetAttributes(attribute.Bool("customer.created", created))

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, map[string]any{
			"customer": c,
			"created":  created,
		})
	}
}

func listCustomersHandler(svc *service.Listing, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/customers")
		defer span.End()

		mode, anchor, err := parseRange(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		view := svc.Customers(ctx, mode, anchor)
		writeJSON(w, http.StatusOK, view)
	}
}

type suggestResponse struct {
	Suggestions []domain.Customer `json:"suggestions"`
	Open        bool              `json:"open"`
	Highlighted *domain.Customer  `json:"highlighted,omitempty"`
	Confirmed   *suggestConfirm   `json:"confirmed,omitempty"`
}

// suggestConfirm carries the result of an enter press: the highlighted
// customer, or the typed phone when nothing was highlighted.
type suggestConfirm struct {
	Customer *domain.Customer `json:"customer,omitempty"`
	Phone    string           `json:"phone,omitempty"`
}

// suggestHandler renders the phone autocomplete for a typed query. ?down=N
// and ?up=N replay arrow-key presses against the suggestion list, and
// ?confirm=true resolves an enter press to the highlighted customer or the
// typed value.
func suggestHandler(svc *service.Customers, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/customers/suggest")
		defer span.End()

		q := r.URL.Query()
		typed := q.Get("q")
		matches := svc.Suggest(typed)
		if matches == nil {
			matches = []domain.Customer{}
		}

		list := autocomplete.New[domain.Customer]()
		list.SetItems(matches)
		for n := intParam(q.Get("down")); n > 0; n-- {
			list.MoveDown()
		}
		for n := intParam(q.Get("up")); n > 0; n-- {
			list.MoveUp()
		}

		resp := suggestResponse{Suggestions: matches, Open: list.IsOpen()}
		if c, ok := list.Highlighted(); ok {
			resp.Highlighted = &c
		}
		if q.Get("confirm") == "true" {
			if c, ok := list.Confirm(); ok {
				resp.Confirmed = &suggestConfirm{Customer: &c}
			} else {
				resp.Confirmed = &suggestConfirm{Phone: typed}
			}
			resp.Open = list.IsOpen()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func selectedCustomerHandler(svc *service.Customers, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/customers/selected")
		defer span.End()

		c, ok := svc.Selected()
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{"selected": nil})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"selected": c,
			"editing":  svc.Editing(),
		})
	}
}

func selectCustomerHandler(svc *service.Customers, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /v1/customers/{customerId}/select")
		defer span.End()

		c, err := svc.Select(chi.URLParam(r, "customerId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func updateCustomerHandler(svc *service.Customers, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/customers/{customerId}")
		defer span.End()

		var c domain.Customer
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		c.ID = chi.URLParam(r, "customerId")

		saved, err := svc.SaveCustomer(ctx, c)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

func deleteCustomerHandler(svc *service.Customers, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/customers/{customerId}")
		defer span.End()

		if err := svc.RemoveCustomer(ctx, chi.URLParam(r, "customerId"), confirmed(r)); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
