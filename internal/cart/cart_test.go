package cart_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrinebr/vitrine/internal/cart"
	"github.com/vitrinebr/vitrine/internal/domain"
)

func product(id int, price float64) domain.Product {
	return domain.Product{ID: id, Title: "Produto", Price: price}
}

func TestCart_AddItem_MergesSameProduct(t *testing.T) {
	c := cart.New()

	require.NoError(t, c.AddItem(product(1, 10), 2))
	require.NoError(t, c.AddItem(product(1, 10), 3))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, c.ItemCount())
}

func TestCart_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	c := cart.New()

	assert.ErrorIs(t, c.AddItem(product(1, 10), 0), cart.ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddItem(product(1, 10), -1), cart.ErrInvalidQuantity)
	assert.Empty(t, c.Items())
}

func TestCart_UpdateQuantity_SetsDirectly(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddItem(product(1, 10), 2))

	c.UpdateQuantity(1, 7)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestCart_UpdateQuantity_ZeroRemoves(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddItem(product(1, 10), 2))
	require.NoError(t, c.AddItem(product(2, 20), 1))

	c.UpdateQuantity(1, 0)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Product.ID)

	c.UpdateQuantity(2, -3)
	assert.Empty(t, c.Items())
}

func TestCart_RemoveItem_UnknownProductIsNoOp(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddItem(product(1, 10), 1))

	c.RemoveItem(99)

	assert.Len(t, c.Items(), 1)
}

func TestCart_Subtotal(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddItem(product(1, 19.90), 2))
	require.NoError(t, c.AddItem(product(2, 5.50), 3))

	assert.InDelta(t, 19.90*2+5.50*3, c.Subtotal(), 1e-9)
}

func TestCart_Clear(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.AddItem(product(1, 10), 2))

	c.Clear()

	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, 0.0, c.Subtotal())
}

func TestCart_DrawerFlags(t *testing.T) {
	c := cart.New()
	assert.False(t, c.IsOpen())

	c.Open()
	assert.True(t, c.IsOpen())
	assert.True(t, c.Summary().Open)

	c.Close()
	assert.False(t, c.IsOpen())
}

// Random operation sequences never break the aggregate invariants:
// one line per product ID, every quantity >= 1, and Subtotal always equal
// to the sum of price times quantity.
func TestCart_RandomOperations_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := cart.New()

	prices := map[int]float64{}
	for id := 1; id <= 8; id++ {
		prices[id] = float64(rng.Intn(10000)) / 100
	}

	for i := 0; i < 2000; i++ {
		id := 1 + rng.Intn(8)
		switch rng.Intn(4) {
		case 0:
			_ = c.AddItem(product(id, prices[id]), 1+rng.Intn(5))
		case 1:
			c.RemoveItem(id)
		case 2:
			c.UpdateQuantity(id, rng.Intn(7)-1)
		case 3:
			// Occasionally clear to reach the empty state too.
			if rng.Intn(50) == 0 {
				c.Clear()
			}
		}

		items := c.Items()
		seen := map[int]bool{}
		var subtotal float64
		var count int
		for _, item := range items {
			require.False(t, seen[item.Product.ID], "duplicate product %d at step %d", item.Product.ID, i)
			seen[item.Product.ID] = true
			require.GreaterOrEqual(t, item.Quantity, 1, "non-positive quantity at step %d", i)
			subtotal += item.Product.Price * float64(item.Quantity)
			count += item.Quantity
		}
		require.InDelta(t, subtotal, c.Subtotal(), 1e-9)
		require.Equal(t, count, c.ItemCount())
	}
}

func TestStore_GetOrCreate_IsPerSession(t *testing.T) {
	store := cart.NewStore()

	a := store.GetOrCreate("session-a")
	b := store.GetOrCreate("session-b")
	require.NoError(t, a.AddItem(product(1, 10), 1))

	assert.NotSame(t, a, b)
	assert.Same(t, a, store.GetOrCreate("session-a"))
	assert.Empty(t, b.Items())

	assert.Nil(t, store.Get("session-c"))

	store.Remove("session-a")
	assert.Nil(t, store.Get("session-a"))
}
