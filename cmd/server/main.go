package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/vitrinebr/vitrine/internal"
	"github.com/vitrinebr/vitrine/internal/cart"
	"github.com/vitrinebr/vitrine/internal/catalog"
	"github.com/vitrinebr/vitrine/internal/checkout"
	"github.com/vitrinebr/vitrine/internal/cookie"
	"github.com/vitrinebr/vitrine/internal/gateway"
	"github.com/vitrinebr/vitrine/internal/handler/admin"
	"github.com/vitrinebr/vitrine/internal/handler/api"
	"github.com/vitrinebr/vitrine/internal/handler/storefront"
	"github.com/vitrinebr/vitrine/internal/middleware"
	"github.com/vitrinebr/vitrine/internal/postcode"
	"github.com/vitrinebr/vitrine/internal/router"
	"github.com/vitrinebr/vitrine/internal/routes"
)

func run() error {
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Shared outbound client; upstream calls also honor request contexts.
	httpClient := &http.Client{Timeout: 15 * time.Second}

	// Upstream clients
	catalogClient := catalog.New(httpClient)
	cepClient := postcode.New(httpClient)
	backend := gateway.NewHTTPBackend(cfg.OrderBackendURL, httpClient)

	// Services and session state
	gatewayService := gateway.NewService(backend, logger)
	carts := cart.NewStore()
	checkoutSessions := checkout.NewStore()
	checkoutService := checkout.NewService(gatewayService, cepClient)

	cookies := cookie.NewConfig(cfg.Env == "prod")

	// Handlers
	storefrontDeps := routes.StorefrontDeps{
		ProductHandler:  storefront.NewProductHandler(catalogClient, logger),
		CartHandler:     storefront.NewCartHandler(carts, catalogClient, cookies, logger),
		CheckoutHandler: storefront.NewCheckoutHandler(checkoutService, checkoutSessions, carts, cookies, logger),
	}
	apiDeps := routes.APIDeps{
		OrderHandler: api.NewOrderHandler(gatewayService, logger),
	}
	adminDeps := routes.AdminDeps{
		DashboardHandler: admin.NewDashboardHandler(gatewayService, logger),
	}

	metrics := middleware.NewMetrics("vitrine")

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		router.CORS(cfg.AllowedOrigins),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		router.Logger(logger),
		middleware.WithRequestLogger(logger),
	)

	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterStorefrontRoutes(r, storefrontDeps)
	routes.RegisterAPIRoutes(r, apiDeps)
	routes.RegisterAdminRoutes(r, adminDeps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "order_backend", cfg.OrderBackendURL)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
