// Package app contains the application setup for the storefront.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/abgdnv/storefront/internal/cart"
	"github.com/abgdnv/storefront/internal/catalog"
	"github.com/abgdnv/storefront/internal/checkout"
	"github.com/abgdnv/storefront/internal/config"
	"github.com/abgdnv/storefront/internal/order"
	"github.com/abgdnv/storefront/internal/session"
	"github.com/abgdnv/storefront/internal/storage"
	"github.com/abgdnv/storefront/internal/transport/rest"
	"github.com/abgdnv/storefront/pkg/server"
	"github.com/go-chi/chi/v5"
)

type Dependencies struct {
	Cart     *cart.Store
	Orders   *order.Store
	Checkout *checkout.Service
	Catalog  catalog.Provider
	Sessions *session.Store
	Logger   *slog.Logger
}

// SetupDependencies constructs the stores and collaborators. Each store
// is created once per session and handed to whatever layer needs it;
// there is no ambient global state. If a storage directory is
// configured, previously persisted cart and orders are restored.
func SetupDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	cartStore := cart.NewStore()
	orderStore := order.NewStore()

	var persister checkout.Persister
	if cfg.Storage.Dir != "" {
		fileStore, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		if lines, err := fileStore.LoadCart(ctx); err != nil {
			logger.Warn("Failed to load persisted cart", "error", err)
		} else if len(lines) > 0 {
			cartStore.Restore(lines)
		}
		if orders, err := fileStore.LoadOrders(ctx); err != nil {
			logger.Warn("Failed to load persisted orders", "error", err)
		} else if len(orders) > 0 {
			orderStore.Restore(orders)
		}
		persister = fileStore
	}

	return &Dependencies{
		Cart:     cartStore,
		Orders:   orderStore,
		Checkout: checkout.NewService(cartStore, orderStore, persister, logger),
		Catalog:  catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger),
		Sessions: session.NewStore(cfg.Session.Secret, cfg.Session.TTL),
		Logger:   logger,
	}, nil
}

// SetupHttpHandler initializes the HTTP routes for the storefront.
// Used by tests to set up the handler without a listening server.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the storefront.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.Cart, deps.Orders, deps.Checkout, deps.Catalog, deps.Sessions, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures the HTTP server.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
