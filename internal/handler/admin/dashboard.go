// Package admin implements the order-management dashboard endpoints.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/vitrinebr/vitrine/internal/dashboard"
	"github.com/vitrinebr/vitrine/internal/gateway"
	"github.com/vitrinebr/vitrine/internal/handler"
)

// DashboardHandler serves the filtered order list plus summary stats.
type DashboardHandler struct {
	gateway *gateway.Service
	logger  *slog.Logger
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(gw *gateway.Service, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{gateway: gw, logger: logger}
}

// Orders handles GET /api/dashboard/orders?status=&q=&period=&email=.
// The optional email scopes the list to one customer (the user
// dashboard); without it the full list is the admin view. Stats always
// cover the whole loaded list; the filters narrow only the table.
func (h *DashboardHandler) Orders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	orders, err := h.gateway.ListDashboardOrders(r.Context(), q.Get("email"))
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	sorted := dashboard.SortOrders(orders)
	filtered := dashboard.FilterOrders(sorted, dashboard.FilterOptions{
		Status: q.Get("status"),
		Query:  q.Get("q"),
		Period: q.Get("period"),
	})

	handler.RespondJSON(w, http.StatusOK, map[string]any{
		"orders": filtered,
		"stats":  dashboard.ComputeStats(sorted),
	})
}
