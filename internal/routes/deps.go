// Package routes wires handlers to URL patterns. Each surface (store,
// orders API, dashboards) registers separately so main stays small.
package routes

import (
	"github.com/vitrinebr/vitrine/internal/handler/admin"
	"github.com/vitrinebr/vitrine/internal/handler/api"
	"github.com/vitrinebr/vitrine/internal/handler/storefront"
)

// StorefrontDeps contains the customer-facing handlers.
type StorefrontDeps struct {
	ProductHandler  *storefront.ProductHandler
	CartHandler     *storefront.CartHandler
	CheckoutHandler *storefront.CheckoutHandler
}

// APIDeps contains the order gateway handlers.
type APIDeps struct {
	OrderHandler *api.OrderHandler
}

// AdminDeps contains the dashboard handlers.
type AdminDeps struct {
	DashboardHandler *admin.DashboardHandler
}
