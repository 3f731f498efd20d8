package storefront

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vitrinebr/vitrine/internal/cart"
	"github.com/vitrinebr/vitrine/internal/checkout"
	"github.com/vitrinebr/vitrine/internal/cookie"
	"github.com/vitrinebr/vitrine/internal/domain"
	"github.com/vitrinebr/vitrine/internal/gateway"
	"github.com/vitrinebr/vitrine/internal/handler"
	"github.com/vitrinebr/vitrine/internal/middleware"
)

// CheckoutHandler drives the two-step checkout over /api/checkout.
type CheckoutHandler struct {
	checkout *checkout.Service
	sessions *checkout.Store
	carts    *cart.Store
	cookies  *cookie.Config
	logger   *slog.Logger
}

// NewCheckoutHandler creates a checkout handler.
func NewCheckoutHandler(svc *checkout.Service, sessions *checkout.Store, carts *cart.Store, cookies *cookie.Config, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{checkout: svc, sessions: sessions, carts: carts, cookies: cookies, logger: logger}
}

// View handles GET /api/checkout.
func (h *CheckoutHandler) View(w http.ResponseWriter, r *http.Request) {
	sessionID := EnsureSession(w, r, h.cookies)
	sess := h.sessions.GetOrCreate(sessionID)
	c := h.carts.GetOrCreate(sessionID)

	handler.RespondJSON(w, http.StatusOK, h.checkout.View(sess, c))
}

// Shipping handles POST /api/checkout/shipping.
func (h *CheckoutHandler) Shipping(w http.ResponseWriter, r *http.Request) {
	var form checkout.ShippingForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		handler.RespondError(w, r, domain.Invalid("storefront.checkout", "Corpo da requisição inválido"))
		return
	}

	sessionID := EnsureSession(w, r, h.cookies)
	sess := h.sessions.GetOrCreate(sessionID)

	if err := h.checkout.SubmitShipping(sess, form); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, h.checkout.View(sess, h.carts.GetOrCreate(sessionID)))
}

// Back handles POST /api/checkout/back.
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	sessionID := EnsureSession(w, r, h.cookies)
	sess := h.sessions.GetOrCreate(sessionID)

	h.checkout.Back(sess)
	handler.RespondJSON(w, http.StatusOK, h.checkout.View(sess, h.carts.GetOrCreate(sessionID)))
}

// Submit handles POST /api/checkout/submit with the card form and the
// terms flag. A successful submission clears the cart and retires the
// checkout session.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Payment      checkout.PaymentForm `json:"payment"`
		AgreeToTerms bool                 `json:"agree_to_terms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.RespondError(w, r, domain.Invalid("storefront.checkout", "Corpo da requisição inválido"))
		return
	}

	sessionID := EnsureSession(w, r, h.cookies)
	sess := h.sessions.GetOrCreate(sessionID)
	c := h.carts.GetOrCreate(sessionID)

	created, err := h.checkout.Submit(r.Context(), sess, c, body.Payment, body.AgreeToTerms)
	if err != nil {
		h.respondSubmitError(w, r, err)
		return
	}

	h.sessions.Remove(sessionID)

	handler.RespondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Pedido criado com sucesso!",
		"order":   created,
	})
}

// respondSubmitError mirrors the order endpoint's contract: backend
// rejections keep their status, an unreachable backend is a 503 with a
// details line.
func (h *CheckoutHandler) respondSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) {
		handler.RespondJSON(w, statusErr.StatusCode, map[string]string{"error": statusErr.Message})
		return
	}

	if domain.IsCode(err, domain.EUNAVAILABLE) {
		middleware.GetLogger(r.Context()).Error("checkout submission failed, backend unreachable", "error", err)
		handler.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "Serviço temporariamente indisponível. Tente novamente em alguns minutos.",
			"details": "Não foi possível conectar com o servidor de pedidos",
		})
		return
	}

	handler.RespondError(w, r, err)
}

// LookupCEP handles GET /api/cep/{cep}: the checkout autofill. A valid
// lookup also updates the session's shipping form server-side.
func (h *CheckoutHandler) LookupCEP(w http.ResponseWriter, r *http.Request) {
	cep := r.PathValue("cep")

	sessionID := EnsureSession(w, r, h.cookies)
	sess := h.sessions.GetOrCreate(sessionID)

	addr, applied, err := h.checkout.LookupCEP(r.Context(), sess, cep)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	if !applied {
		handler.RespondError(w, r, domain.Invalid("storefront.cep", "CEP deve ter 8 dígitos"))
		return
	}

	handler.RespondJSON(w, http.StatusOK, addr)
}
