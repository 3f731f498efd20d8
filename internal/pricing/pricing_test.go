package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitrinebr/vitrine/internal/domain"
	"github.com/vitrinebr/vitrine/internal/pricing"
)

func TestForSubtotal_ThresholdExact(t *testing.T) {
	// Exactly at the threshold still pays the flat fee.
	atThreshold := pricing.ForSubtotal(200.00)
	assert.Equal(t, 15.0, atThreshold.Shipping)

	// One cent above the threshold ships free.
	aboveThreshold := pricing.ForSubtotal(200.01)
	assert.Equal(t, 0.0, aboveThreshold.Shipping)
}

func TestForSubtotal_TaxIsTenPercentOfSubtotal(t *testing.T) {
	subtotals := []float64{0, 1, 50, 199.99, 200, 200.01, 1000}

	for _, subtotal := range subtotals {
		quote := pricing.ForSubtotal(subtotal)
		assert.InDelta(t, subtotal*0.10, quote.Tax, 1e-9, "tax for subtotal %v", subtotal)
		assert.InDelta(t, quote.Subtotal+quote.Shipping+quote.Tax, quote.Total, 1e-9)
	}
}

func TestForSubtotal_TotalIsMonotonic(t *testing.T) {
	// The free-shipping discount never makes a larger cart cheaper overall
	// than the fee it waives.
	prev := pricing.ForSubtotal(0).Total
	for subtotal := 0.5; subtotal <= 400; subtotal += 0.5 {
		total := pricing.ForSubtotal(subtotal).Total
		assert.GreaterOrEqual(t, total, prev-15, "total dropped too far at subtotal %v", subtotal)
		prev = total
	}
}

func TestForItems_AboveThreshold(t *testing.T) {
	quote := pricing.ForItems([]domain.OrderItem{
		{ProductID: 1, ProductPrice: 100, Quantity: 3},
	})

	assert.Equal(t, 300.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.Shipping)
	assert.InDelta(t, 30.0, quote.Tax, 1e-9)
	assert.InDelta(t, 330.0, quote.Total, 1e-9)
}

func TestForItems_BelowThreshold(t *testing.T) {
	quote := pricing.ForItems([]domain.OrderItem{
		{ProductID: 7, ProductPrice: 50, Quantity: 1},
	})

	assert.Equal(t, 50.0, quote.Subtotal)
	assert.Equal(t, 15.0, quote.Shipping)
	assert.InDelta(t, 5.0, quote.Tax, 1e-9)
	assert.InDelta(t, 70.0, quote.Total, 1e-9)
}

func TestForItems_EmptyList(t *testing.T) {
	quote := pricing.ForItems(nil)

	assert.Equal(t, 0.0, quote.Subtotal)
	assert.Equal(t, 15.0, quote.Shipping)
	assert.Equal(t, 0.0, quote.Tax)
	assert.Equal(t, 15.0, quote.Total)
}
