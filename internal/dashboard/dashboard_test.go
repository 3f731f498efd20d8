package dashboard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrinebr/vitrine/internal/dashboard"
	"github.com/vitrinebr/vitrine/internal/domain"
)

var anchor = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func sampleOrders() []domain.Order {
	return []domain.Order{
		{ID: 1, TotalAmount: 100, Status: "pending", CreatedAt: "2026-03-15T09:00:00Z", FirstName: "Ana", LastName: "Souza", Email: "ana@exemplo.com"},
		{ID: 2, TotalAmount: 200, Status: "delivered", CreatedAt: "2026-03-10T09:00:00Z", FirstName: "Bruno", LastName: "Lima", Email: "bruno@exemplo.com"},
		{ID: 3, TotalAmount: 300, Status: "cancelled", CreatedAt: "2026-02-01T09:00:00Z", FirstName: "Carla", LastName: "Dias", Email: "carla@exemplo.com"},
		{ID: 4, TotalAmount: 400, Status: "Completed", CreatedAt: "2026-03-14T09:00:00Z", FirstName: "Davi", LastName: "Melo", Email: "davi@exemplo.com"},
	}
}

func TestComputeStats(t *testing.T) {
	stats := dashboard.ComputeStats(sampleOrders())

	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 1000.0, stats.TotalRevenue)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 2, stats.CompletedOrders, "delivered and completed both count, case-insensitively")
	assert.Equal(t, 250.0, stats.AverageOrderValue)
}

func TestComputeStats_EmptyList(t *testing.T) {
	stats := dashboard.ComputeStats(nil)

	assert.Equal(t, 0, stats.TotalOrders)
	assert.Equal(t, 0.0, stats.AverageOrderValue, "average is 0, not NaN")
}

func TestComputeStats_AverageEqualsRevenueOverCount(t *testing.T) {
	orders := sampleOrders()
	stats := dashboard.ComputeStats(orders)

	assert.InDelta(t, stats.TotalRevenue/float64(len(orders)), stats.AverageOrderValue, 1e-9)
}

func TestFilterOrders_ByStatus(t *testing.T) {
	filtered := dashboard.FilterOrders(sampleOrders(), dashboard.FilterOptions{Status: "Pending"})

	require.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].ID)
}

func TestFilterOrders_StatusAllMeansNoFilter(t *testing.T) {
	assert.Len(t, dashboard.FilterOrders(sampleOrders(), dashboard.FilterOptions{Status: "all"}), 4)
	assert.Len(t, dashboard.FilterOrders(sampleOrders(), dashboard.FilterOptions{}), 4)
}

func TestFilterOrders_ByQuery(t *testing.T) {
	orders := sampleOrders()

	byName := dashboard.FilterOrders(orders, dashboard.FilterOptions{Query: "ana sou"})
	require.Len(t, byName, 1)
	assert.Equal(t, 1, byName[0].ID)

	byEmail := dashboard.FilterOrders(orders, dashboard.FilterOptions{Query: "BRUNO@"})
	require.Len(t, byEmail, 1)
	assert.Equal(t, 2, byEmail[0].ID)

	byID := dashboard.FilterOrders(orders, dashboard.FilterOptions{Query: "3"})
	require.Len(t, byID, 1)
	assert.Equal(t, 3, byID[0].ID)
}

func TestFilterOrders_ByPeriod(t *testing.T) {
	orders := sampleOrders()

	today := dashboard.FilterOrders(orders, dashboard.FilterOptions{Period: dashboard.PeriodToday, Now: anchor})
	require.Len(t, today, 1)
	assert.Equal(t, 1, today[0].ID)

	week := dashboard.FilterOrders(orders, dashboard.FilterOptions{Period: dashboard.PeriodWeek, Now: anchor})
	assert.Len(t, week, 3)

	month := dashboard.FilterOrders(orders, dashboard.FilterOptions{Period: dashboard.PeriodMonth, Now: anchor})
	assert.Len(t, month, 3)
}

func TestFilterOrders_PeriodDropsUnparseableTimestamps(t *testing.T) {
	orders := []domain.Order{{ID: 1, CreatedAt: "not a date"}}

	assert.Len(t, dashboard.FilterOrders(orders, dashboard.FilterOptions{Period: dashboard.PeriodWeek, Now: anchor}), 0)
	assert.Len(t, dashboard.FilterOrders(orders, dashboard.FilterOptions{}), 1)
}

func TestFilterOrders_CombinesFilters(t *testing.T) {
	filtered := dashboard.FilterOrders(sampleOrders(), dashboard.FilterOptions{
		Status: "delivered",
		Query:  "bruno",
		Period: dashboard.PeriodWeek,
		Now:    anchor,
	})

	require.Len(t, filtered, 1)
	assert.Equal(t, 2, filtered[0].ID)
}

func TestSortOrders_NewestFirst(t *testing.T) {
	sorted := dashboard.SortOrders(sampleOrders())

	ids := make([]int, 0, len(sorted))
	for _, order := range sorted {
		ids = append(ids, order.ID)
	}
	assert.Equal(t, []int{1, 4, 2, 3}, ids)
}

func TestSortOrders_UnparseableTimestampsSink(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, CreatedAt: "garbage"},
		{ID: 2, CreatedAt: "2026-03-10T09:00:00Z"},
	}

	sorted := dashboard.SortOrders(orders)

	assert.Equal(t, 2, sorted[0].ID)
	assert.Equal(t, 1, sorted[1].ID)
}
