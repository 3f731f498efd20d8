package storefront

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vitrinebr/vitrine/internal/cart"
	"github.com/vitrinebr/vitrine/internal/catalog"
	"github.com/vitrinebr/vitrine/internal/cookie"
	"github.com/vitrinebr/vitrine/internal/domain"
	"github.com/vitrinebr/vitrine/internal/handler"
)

// CartHandler exposes the per-session cart over /api/cart. Products are
// resolved through the catalog client so the stored price and title are
// always the upstream ones, never client-supplied.
type CartHandler struct {
	carts   *cart.Store
	catalog *catalog.Client
	cookies *cookie.Config
	logger  *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(carts *cart.Store, client *catalog.Client, cookies *cookie.Config, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{carts: carts, catalog: client, cookies: cookies, logger: logger}
}

// View handles GET /api/cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sessionID := EnsureSession(w, r, h.cookies)
	handler.RespondJSON(w, http.StatusOK, h.carts.GetOrCreate(sessionID).Summary())
}

// AddItem handles POST /api/cart/items with {product_id, quantity}.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.RespondError(w, r, domain.Invalid("storefront.cart", "Corpo da requisição inválido"))
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	product, err := h.catalog.GetProduct(r.Context(), body.ProductID)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	sessionID := EnsureSession(w, r, h.cookies)
	c := h.carts.GetOrCreate(sessionID)

	if err := c.AddItem(*product, body.Quantity); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	c.Open()
	handler.RespondJSON(w, http.StatusOK, c.Summary())
}

// UpdateItem handles PUT /api/cart/items/{productId} with {quantity}.
// A quantity of zero or less removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		handler.RespondError(w, r, domain.Invalid("storefront.cart", "ID de produto inválido"))
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.RespondError(w, r, domain.Invalid("storefront.cart", "Corpo da requisição inválido"))
		return
	}

	sessionID := EnsureSession(w, r, h.cookies)
	c := h.carts.GetOrCreate(sessionID)
	c.UpdateQuantity(productID, body.Quantity)

	handler.RespondJSON(w, http.StatusOK, c.Summary())
}

// RemoveItem handles DELETE /api/cart/items/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		handler.RespondError(w, r, domain.Invalid("storefront.cart", "ID de produto inválido"))
		return
	}

	sessionID := EnsureSession(w, r, h.cookies)
	c := h.carts.GetOrCreate(sessionID)
	c.RemoveItem(productID)

	handler.RespondJSON(w, http.StatusOK, c.Summary())
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := EnsureSession(w, r, h.cookies)
	c := h.carts.GetOrCreate(sessionID)
	c.Clear()

	handler.RespondJSON(w, http.StatusOK, c.Summary())
}

// OpenDrawer handles POST /api/cart/drawer/open.
func (h *CartHandler) OpenDrawer(w http.ResponseWriter, r *http.Request) {
	sessionID := EnsureSession(w, r, h.cookies)
	c := h.carts.GetOrCreate(sessionID)
	c.Open()

	handler.RespondJSON(w, http.StatusOK, c.Summary())
}

// CloseDrawer handles POST /api/cart/drawer/close.
func (h *CartHandler) CloseDrawer(w http.ResponseWriter, r *http.Request) {
	sessionID := EnsureSession(w, r, h.cookies)
	c := h.carts.GetOrCreate(sessionID)
	c.Close()

	handler.RespondJSON(w, http.StatusOK, c.Summary())
}
