package cart

import (
	"testing"

	"github.com/abgdnv/storefront/internal/catalog"
	storeerrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, title string, price string) catalog.Product {
	return catalog.Product{
		ID:    id,
		Title: title,
		Price: decimal.RequireFromString(price),
		Image: "https://img.example/" + id + ".png",
	}
}

func Test_Store_Add_RepeatAddsIncrementQuantity(t *testing.T) {
	store := NewStore()
	p := product("p1", "Backpack", "109.95")

	for range 5 {
		store.Add(p)
	}

	items := store.Items()
	require.Len(t, items, 1, "repeat adds must never create a second line")
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, store.TotalItems())
}

func Test_Store_Add_CapturesPriceAtAddTime(t *testing.T) {
	store := NewStore()
	p := product("p1", "Backpack", "109.95")
	store.Add(p)

	// catalog price change after the add must not affect the line
	p.Price = decimal.RequireFromString("999.99")
	store.Add(p)

	items := store.Items()
	require.Len(t, items, 1)
	assert.True(t, decimal.RequireFromString("109.95").Equal(items[0].Price))
	assert.Equal(t, 2, items[0].Quantity)
}

func Test_Store_IncreaseDecrease(t *testing.T) {
	testCases := []struct {
		name        string
		setup       func(s *Store)
		productID   string
		op          func(s *Store, id string) error
		expectError error
		expectQty   int
	}{
		{
			name:      "Increase existing line",
			setup:     func(s *Store) { s.Add(product("p1", "Backpack", "10.00")) },
			productID: "p1",
			op:        (*Store).Increase,
			expectQty: 2,
		},
		{
			name:        "Increase unknown product",
			setup:       func(s *Store) {},
			productID:   "ghost",
			op:          (*Store).Increase,
			expectError: storeerrors.ErrProductNotFound,
		},
		{
			name:      "Decrease existing line",
			setup:     func(s *Store) { s.Add(product("p1", "Backpack", "10.00")); _ = s.Increase("p1") },
			productID: "p1",
			op:        (*Store).Decrease,
			expectQty: 1,
		},
		{
			name:        "Decrease unknown product",
			setup:       func(s *Store) {},
			productID:   "ghost",
			op:          (*Store).Decrease,
			expectError: storeerrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore()
			tc.setup(store)

			err := tc.op(store, tc.productID)

			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			items := store.Items()
			require.Len(t, items, 1)
			assert.Equal(t, tc.expectQty, items[0].Quantity)
		})
	}
}

func Test_Store_Decrease_FloorsAtZeroAndRetainsLine(t *testing.T) {
	store := NewStore()
	store.Add(product("p1", "Backpack", "10.00"))

	// repeated decreases stabilize at zero, the line is retained
	for range 4 {
		require.NoError(t, store.Decrease("p1"))
	}

	items := store.Items()
	require.Len(t, items, 1, "zero-quantity line must be retained until explicit removal")
	assert.Equal(t, 0, items[0].Quantity)
	assert.Equal(t, 0, store.TotalItems())
	assert.Equal(t, 1, store.Len())

	store.Remove("p1")
	assert.Empty(t, store.Items())
}

func Test_Store_Remove_LeavesOtherLinesUntouched(t *testing.T) {
	store := NewStore()
	store.Add(product("p1", "Backpack", "10.00"))
	store.Add(product("p2", "T-Shirt", "22.30"))
	require.NoError(t, store.Increase("p2"))

	store.Remove("p1")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)

	// removing an absent product is a no-op
	store.Remove("p1")
	assert.Len(t, store.Items(), 1)
}

func Test_Store_Totals(t *testing.T) {
	store := NewStore()
	assert.Equal(t, 0, store.TotalItems())
	assert.True(t, store.TotalPrice().IsZero())

	store.Add(product("p1", "Backpack", "10.00"))
	store.Add(product("p1", "Backpack", "10.00"))
	store.Add(product("p2", "T-Shirt", "22.30"))
	require.NoError(t, store.Decrease("p2"))
	store.Add(product("p3", "Jacket", "55.99"))
	store.Remove("p3")

	assert.Equal(t, 2, store.TotalItems())
	assert.Equal(t, "20.00", store.TotalPrice().StringFixed(2))
	// totalItems == 0 iff cart is empty of quantities
	store.Clear()
	assert.Equal(t, 0, store.TotalItems())
	assert.Empty(t, store.Items())
}

func Test_Store_Drain(t *testing.T) {
	store := NewStore()
	store.Add(product("p1", "Backpack", "10.00"))
	store.Add(product("p2", "T-Shirt", "22.30"))
	// p2 decremented to zero: excluded from the snapshot
	require.NoError(t, store.Decrease("p2"))

	lines, ok := store.Drain()
	require.True(t, ok)
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Empty(t, store.Items(), "drain must clear the cart")

	// nothing purchasable: cart untouched, ok false
	store.Add(product("p3", "Jacket", "55.99"))
	require.NoError(t, store.Decrease("p3"))
	lines, ok = store.Drain()
	assert.False(t, ok)
	assert.Nil(t, lines)
	assert.Equal(t, 1, store.Len(), "failed drain must leave the cart unchanged")
}

func Test_Store_Restore_CollapsesDuplicates(t *testing.T) {
	store := NewStore()
	store.Restore([]Line{
		{ProductID: "p1", Title: "Backpack", Price: decimal.RequireFromString("10.00"), Quantity: 2},
		{ProductID: "p2", Title: "T-Shirt", Price: decimal.RequireFromString("22.30"), Quantity: 1},
		{ProductID: "p1", Title: "Backpack", Price: decimal.RequireFromString("10.00"), Quantity: 7},
	})

	items := store.Items()
	require.Len(t, items, 2, "restore must keep the no-duplicate invariant")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 3, store.TotalItems())
}
