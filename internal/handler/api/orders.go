// Package api implements the JSON order endpoints backed by the order
// gateway.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vitrinebr/vitrine/internal/domain"
	"github.com/vitrinebr/vitrine/internal/gateway"
	"github.com/vitrinebr/vitrine/internal/handler"
	"github.com/vitrinebr/vitrine/internal/middleware"
)

// SyncHeader reports whether a degraded-mode operation reached the
// backend ("applied") or was resolved locally ("local"). The body keeps
// the legacy shape; this header is the honest sync indicator.
const SyncHeader = "X-Sync-State"

// OrderHandler exposes the order gateway over /api/order.
type OrderHandler struct {
	gateway *gateway.Service
	logger  *slog.Logger
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(gw *gateway.Service, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{gateway: gw, logger: logger}
}

// Create handles POST /api/order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, r, domain.Invalid("api.order.create", "Corpo da requisição inválido"))
		return
	}

	created, err := h.gateway.CreateOrder(r.Context(), req)
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Pedido criado com sucesso!",
		"order":   created,
	})
}

// respondOrderError keeps the create endpoint's error contract: backend
// rejections relay their original status, an unreachable backend is a
// 503 with a details line, everything else maps by error code.
func (h *OrderHandler) respondOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) {
		middleware.GetLogger(r.Context()).Info("order rejected by backend",
			"status", statusErr.StatusCode, "message", statusErr.Message)
		handler.RespondJSON(w, statusErr.StatusCode, map[string]string{"error": statusErr.Message})
		return
	}

	if domain.IsCode(err, domain.EUNAVAILABLE) {
		middleware.GetLogger(r.Context()).Error("order backend unreachable", "error", err)
		handler.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "Serviço temporariamente indisponível. Tente novamente em alguns minutos.",
			"details": "Não foi possível conectar com o servidor de pedidos",
		})
		return
	}

	handler.RespondError(w, r, err)
}

// List handles GET /api/order?id=&email=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	email := r.URL.Query().Get("email")

	raw, err := h.gateway.GetOrders(r.Context(), id, email)
	if err != nil {
		var statusErr *gateway.StatusError
		if errors.As(err, &statusErr) {
			handler.RespondJSON(w, statusErr.StatusCode, map[string]string{"error": statusErr.Message})
			return
		}
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondRaw(w, http.StatusOK, raw)
}

// Get handles GET /api/order/{id}. An unreachable backend yields the
// fixed mock order with a 200; the sync header says which one was served.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	raw, outcome, err := h.gateway.GetOrder(r.Context(), id)
	if err != nil {
		var statusErr *gateway.StatusError
		if errors.As(err, &statusErr) {
			handler.RespondJSON(w, statusErr.StatusCode, map[string]string{"error": statusErr.Message})
			return
		}
		handler.RespondError(w, r, err)
		return
	}

	w.Header().Set(SyncHeader, syncValue(outcome))
	handler.RespondRaw(w, http.StatusOK, raw)
}

// UpdateStatus handles PUT /api/order/{id}.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.RespondError(w, r, domain.Invalid("api.order.update", "Corpo da requisição inválido"))
		return
	}

	result, err := h.gateway.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		var statusErr *gateway.StatusError
		if errors.As(err, &statusErr) {
			handler.RespondJSON(w, statusErr.StatusCode, map[string]string{"error": statusErr.Message})
			return
		}
		handler.RespondError(w, r, err)
		return
	}

	w.Header().Set(SyncHeader, syncValue(result.Outcome))
	handler.RespondRaw(w, http.StatusOK, result.Body)
}

// Delete handles DELETE /api/order/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := h.gateway.Delete(r.Context(), id)
	if err != nil {
		var statusErr *gateway.StatusError
		if errors.As(err, &statusErr) {
			handler.RespondJSON(w, statusErr.StatusCode, map[string]string{"error": statusErr.Message})
			return
		}
		handler.RespondError(w, r, err)
		return
	}

	w.Header().Set(SyncHeader, syncValue(result.Outcome))
	handler.RespondRaw(w, http.StatusOK, result.Body)
}

func syncValue(outcome gateway.Outcome) string {
	if outcome == gateway.OutcomeAppliedLocally {
		return "local"
	}
	return "applied"
}
