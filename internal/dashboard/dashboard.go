// Package dashboard computes the order-management views: filtering,
// sorting and summary statistics over an order list fetched through the
// order gateway. Everything here is a pure function; the handlers own
// the fetching.
package dashboard

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vitrinebr/vitrine/internal/domain"
)

// Stats is the summary block rendered at the top of the admin dashboard.
type Stats struct {
	TotalOrders       int     `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	PendingOrders     int     `json:"pending_orders"`
	CompletedOrders   int     `json:"completed_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// ComputeStats aggregates an order list. The average is 0 for an empty
// list, never NaN.
func ComputeStats(orders []domain.Order) Stats {
	stats := Stats{TotalOrders: len(orders)}

	for _, order := range orders {
		stats.TotalRevenue += order.TotalAmount

		switch strings.ToLower(order.Status) {
		case domain.StatusPending:
			stats.PendingOrders++
		case domain.StatusDelivered, "completed":
			stats.CompletedOrders++
		}
	}

	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / float64(stats.TotalOrders)
	}
	return stats
}

// Period identifiers accepted by the date filter.
const (
	PeriodToday = "today"
	PeriodWeek  = "7d"
	PeriodMonth = "30d"
)

// FilterOptions selects a slice of the order list. Zero values mean "no
// filter". Now anchors the period windows; the zero time means the wall
// clock.
type FilterOptions struct {
	Status string
	Query  string
	Period string
	Now    time.Time
}

// FilterOrders applies status, free-text and period filters, preserving
// input order. The query matches the order ID, the customer name and the
// email, case-insensitively. Orders whose created_at cannot be parsed are
// dropped by a period filter but kept otherwise.
func FilterOrders(orders []domain.Order, opts FilterOptions) []domain.Order {
	status := strings.ToLower(strings.TrimSpace(opts.Status))
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	var boundary time.Time
	if cutoff, ok := periodBoundary(opts.Period, opts.Now); ok {
		boundary = cutoff
	}

	filtered := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if status != "" && status != "all" && strings.ToLower(order.Status) != status {
			continue
		}
		if query != "" && !matchesQuery(order, query) {
			continue
		}
		if !boundary.IsZero() {
			created, err := parseCreatedAt(order.CreatedAt)
			if err != nil || created.Before(boundary) {
				continue
			}
		}
		filtered = append(filtered, order)
	}
	return filtered
}

func matchesQuery(order domain.Order, query string) bool {
	if strings.Contains(strconv.Itoa(order.ID), query) {
		return true
	}
	name := strings.ToLower(strings.TrimSpace(order.FirstName + " " + order.LastName))
	if strings.Contains(name, query) {
		return true
	}
	return strings.Contains(strings.ToLower(order.Email), query)
}

func periodBoundary(period string, now time.Time) (time.Time, bool) {
	if now.IsZero() {
		now = time.Now()
	}

	switch period {
	case PeriodToday:
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

func parseCreatedAt(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

// SortOrders orders newest-first by created_at. Unparseable timestamps
// sink to the end. The sort is stable so equal timestamps keep the
// backend's order.
func SortOrders(orders []domain.Order) []domain.Order {
	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, erri := parseCreatedAt(sorted[i].CreatedAt)
		tj, errj := parseCreatedAt(sorted[j].CreatedAt)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.After(tj)
	})
	return sorted
}
