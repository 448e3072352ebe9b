package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/minhphat/retail-crm-go/internal/config"
	"github.com/minhphat/retail-crm-go/internal/handler"
	"github.com/minhphat/retail-crm-go/internal/infra/cache"
	"github.com/minhphat/retail-crm-go/internal/infra/kv"
	"github.com/minhphat/retail-crm-go/internal/infra/observability"
	"github.com/minhphat/retail-crm-go/internal/infra/storage"
	"github.com/minhphat/retail-crm-go/internal/prefs"
	"github.com/minhphat/retail-crm-go/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("db_path", cfg.DBPath),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Duration("print_delay", cfg.PrintDelay),
		zap.String("warranty_cron", cfg.WarrantyCron),
		zap.Int("warranty_window_days", cfg.WarrantyWindowDays),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "retail-crm")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Persistence ---
	store, err := kv.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer store.Close()

	customerStore := storage.NewCustomers(store, cfg.StorageKey, metrics, logger)
	prefStore := prefs.NewStore(store, cfg.PrefsKey, logger)
	prefStore.Load(context.Background())

	// --- Cache ---
	ordersCache := cache.New[service.OrdersView](cfg.CacheTTL)
	defer ordersCache.Close()

	// --- Services ---
	customersSvc := service.NewCustomers(context.Background(), customerStore, metrics, logger)
	listingSvc := service.NewListing(customersSvc, ordersCache, metrics, logger)
	invoicesSvc := service.NewInvoices(customersSvc, cfg.PrintDelay, nil, metrics, logger)
	warrantySvc := service.NewWarranty(customersSvc, cfg.WarrantyCron, cfg.WarrantyWindowDays, logger)
	if err := warrantySvc.Start(); err != nil {
		logger.Fatal("failed to start warranty scheduler", zap.Error(err))
	}
	defer warrantySvc.Stop()

	// --- Router ---
	router := handler.NewRouter(handler.Services{
		Customers: customersSvc,
		Listing:   listingSvc,
		Invoices:  invoicesSvc,
		Warranty:  warrantySvc,
		Prefs:     prefStore,
		KV:        store,
		Metrics:   metrics,
	}, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
