package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/minhphat/retail-crm-go/internal/infra/observability"
	"github.com/minhphat/retail-crm-go/internal/port"
	"github.com/minhphat/retail-crm-go/internal/prefs"
	"github.com/minhphat/retail-crm-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services bundles the collaborators the router needs.
type Services struct {
	Customers *service.Customers
	Listing   *service.Listing
	Invoices  *service.Invoices
	Warranty  *service.Warranty
	Prefs     *prefs.Store
	KV        port.KV
	Metrics   *observability.Metrics
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svcs Services, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svcs.KV, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(svcs.Metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// Store metrics snapshot
		r.Get("/metrics/store", storeMetricsHandler(svcs.Metrics, logger))

		// Customers
		r.Post("/customers/confirm-phone", confirmPhoneHandler(svcs.Customers, logger))
		r.Get("/customers", listCustomersHandler(svcs.Listing, logger))
		r.Get("/customers/suggest", suggestHandler(svcs.Customers, logger))
		r.Get("/customers/selected", selectedCustomerHandler(svcs.Customers, logger))
		r.Put("/customers/{customerId}", updateCustomerHandler(svcs.Customers, logger))
		r.Delete("/customers/{customerId}", deleteCustomerHandler(svcs.Customers, logger))
		r.Post("/customers/{customerId}/select", selectCustomerHandler(svcs.Customers, logger))

		// Purchases
		r.Get("/purchases/draft", purchaseDraftHandler(svcs.Customers, logger))
		r.Post("/customers/{customerId}/purchases", savePurchaseHandler(svcs.Customers, logger))
		r.Put("/customers/{customerId}/purchases/{purchaseId}", updatePurchaseHandler(svcs.Customers, logger))
		r.Delete("/customers/{customerId}/purchases/{purchaseId}", deletePurchaseHandler(svcs.Customers, logger))

		// Orders
		r.Get("/orders", listOrdersHandler(svcs.Listing, logger))

		// Printable documents
		r.Post("/invoices", createInvoiceHandler(svcs.Invoices, logger))
		r.Post("/invoices/slip", createSlipHandler(svcs.Invoices, logger))
		r.Post("/invoices/close", closeInvoiceViewHandler(svcs.Invoices, logger))

		// Calendar
		r.Get("/calendar", calendarHandler(logger))

		// Preferences
		r.Get("/prefs/theme", getThemeHandler(svcs.Prefs, logger))
		r.Post("/prefs/theme", setThemeHandler(svcs.Prefs, logger))

		// Warranty
		r.Get("/warranty/upcoming", warrantyUpcomingHandler(svcs.Warranty, logger))
	})

	return r
}

// ============================================================
// Health & metrics
// ============================================================

func healthzHandler(kv port.KV, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "healthy"
		if kv != nil {
			if _, _, err := kv.Get(ctx, "healthcheck"); err != nil {
				logger.Warn("health check: store unreachable", zap.Error(err))
				status = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"status":  status,
			"checked": time.Now().Format(time.RFC3339),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func storeMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := metrics.GetStoreSnapshot()
		writeJSON(w, http.StatusOK, snapshot)
	}
}
