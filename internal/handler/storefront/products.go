// Package storefront implements the customer-facing JSON endpoints:
// catalog browsing, the cart and the checkout flow.
package storefront

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vitrinebr/vitrine/internal/catalog"
	"github.com/vitrinebr/vitrine/internal/domain"
	"github.com/vitrinebr/vitrine/internal/handler"
	"github.com/vitrinebr/vitrine/internal/search"
)

// ProductHandler proxies the public catalog API so the UI talks to a
// single origin.
type ProductHandler struct {
	catalog *catalog.Client
	logger  *slog.Logger
}

// NewProductHandler creates a product handler.
func NewProductHandler(client *catalog.Client, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{catalog: client, logger: logger}
}

// List handles GET /api/products?limit=&q=. The q filter runs here over
// the fetched list; the upstream API has no search parameter.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			handler.RespondError(w, r, domain.Invalid("storefront.products", "Parâmetro limit inválido"))
			return
		}
		limit = n
	}

	products, err := h.catalog.ListProducts(r.Context(), limit)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if query := r.URL.Query().Get("q"); query != "" {
		products = search.NewFilter(query).Apply(products)
	}

	handler.RespondJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		handler.RespondError(w, r, domain.Invalid("storefront.products", "ID de produto inválido"))
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, product)
}

// Categories handles GET /api/products/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, categories)
}

// ByCategory handles GET /api/products/category/{category}.
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	products, err := h.catalog.ListByCategory(r.Context(), category)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, products)
}
