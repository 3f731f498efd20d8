// Package cart implements the in-memory shopping cart aggregate.
// A Cart is owned by a single browsing session; a Store maps session IDs
// to carts so handlers can look them up from the session cookie.
package cart

import (
	"sync"

	"github.com/vitrinebr/vitrine/internal/domain"
)

var ErrInvalidQuantity = &domain.Error{Code: domain.EINVALID, Message: "Quantidade deve ser maior que zero"}

// Item is a cart line: a product reference and a positive quantity.
type Item struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Summary aggregates cart contents with calculated totals.
type Summary struct {
	Items     []Item  `json:"items"`
	Subtotal  float64 `json:"subtotal"`
	ItemCount int     `json:"item_count"`
	Open      bool    `json:"open"`
}

// Cart holds the line items for one session. All methods are safe for
// concurrent use. Invariants: at most one item per product ID, and every
// stored quantity is at least 1.
type Cart struct {
	mu    sync.Mutex
	items []Item
	open  bool
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem inserts a product or, if the product is already present,
// increments the existing quantity.
func (c *Cart) AddItem(product domain.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity += quantity
			return nil
		}
	}

	c.items = append(c.items, Item{Product: product, Quantity: quantity})
	return nil
}

// RemoveItem deletes the line for the given product ID. Removing a product
// that is not in the cart is a no-op.
func (c *Cart) RemoveItem(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

// UpdateQuantity sets the quantity for a product directly. A quantity of
// zero or less removes the line.
func (c *Cart) UpdateQuantity(productID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.remove(productID)
		return
	}

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) remove(productID int) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the current line items in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Subtotal returns the sum of price times quantity over all items,
// excluding shipping and tax.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var subtotal float64
	for _, item := range c.items {
		subtotal += item.Product.Price * float64(item.Quantity)
	}
	return subtotal
}

// ItemCount returns the sum of quantities, not the number of distinct products.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Open marks the cart drawer as visible. UI state only, not a business invariant.
func (c *Cart) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
}

// Close marks the cart drawer as hidden.
func (c *Cart) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
}

// IsOpen reports whether the cart drawer is visible.
func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Summary returns the cart contents with calculated totals.
func (c *Cart) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Item, len(c.items))
	copy(items, c.items)

	var subtotal float64
	var count int
	for _, item := range c.items {
		subtotal += item.Product.Price * float64(item.Quantity)
		count += item.Quantity
	}

	return Summary{
		Items:     items,
		Subtotal:  subtotal,
		ItemCount: count,
		Open:      c.open,
	}
}
