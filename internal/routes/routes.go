package routes

import (
	"github.com/vitrinebr/vitrine/internal/router"
)

// RegisterStorefrontRoutes registers catalog, cart and checkout routes.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Catalog proxy
	r.Get("/api/products", deps.ProductHandler.List)
	r.Get("/api/products/categories", deps.ProductHandler.Categories)
	r.Get("/api/products/category/{category}", deps.ProductHandler.ByCategory)
	r.Get("/api/products/{id}", deps.ProductHandler.Get)

	// Cart
	r.Get("/api/cart", deps.CartHandler.View)
	r.Post("/api/cart/items", deps.CartHandler.AddItem)
	r.Put("/api/cart/items/{productId}", deps.CartHandler.UpdateItem)
	r.Delete("/api/cart/items/{productId}", deps.CartHandler.RemoveItem)
	r.Delete("/api/cart", deps.CartHandler.Clear)
	r.Post("/api/cart/drawer/open", deps.CartHandler.OpenDrawer)
	r.Post("/api/cart/drawer/close", deps.CartHandler.CloseDrawer)

	// Checkout flow
	r.Get("/api/checkout", deps.CheckoutHandler.View)
	r.Post("/api/checkout/shipping", deps.CheckoutHandler.Shipping)
	r.Post("/api/checkout/back", deps.CheckoutHandler.Back)
	r.Post("/api/checkout/submit", deps.CheckoutHandler.Submit)
	r.Get("/api/cep/{cep}", deps.CheckoutHandler.LookupCEP)
}

// RegisterAPIRoutes registers the order gateway routes.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	r.Post("/api/order", deps.OrderHandler.Create)
	r.Get("/api/order", deps.OrderHandler.List)
	r.Get("/api/order/{id}", deps.OrderHandler.Get)
	r.Put("/api/order/{id}", deps.OrderHandler.UpdateStatus)
	r.Delete("/api/order/{id}", deps.OrderHandler.Delete)
}

// RegisterAdminRoutes registers the dashboard routes.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	r.Get("/api/dashboard/orders", deps.DashboardHandler.Orders)
}
