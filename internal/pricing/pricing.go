// Package pricing holds the single pricing rule shared by the checkout
// flow and the order gateway. The gateway recomputes every quote from the
// item list and ignores client-supplied totals; the checkout quote is
// display-only.
package pricing

import "github.com/vitrinebr/vitrine/internal/domain"

const (
	// FreeShippingThreshold is the subtotal above which shipping is waived.
	// Exactly at the threshold the flat fee still applies.
	FreeShippingThreshold = 200

	// FlatShippingFee is the flat shipping cost below the threshold.
	FlatShippingFee = 15

	// TaxRate is the flat tax applied to the subtotal, independent of shipping.
	TaxRate = 0.10
)

// Quote is a full price breakdown for a set of items.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ForSubtotal computes shipping, tax and total for a given subtotal.
func ForSubtotal(subtotal float64) Quote {
	shipping := float64(FlatShippingFee)
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * TaxRate

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// ForItems computes a quote from an order item list.
// Subtotal is the sum of price times quantity, excluding shipping and tax.
func ForItems(items []domain.OrderItem) Quote {
	var subtotal float64
	for _, item := range items {
		subtotal += item.ProductPrice * float64(item.Quantity)
	}
	return ForSubtotal(subtotal)
}
