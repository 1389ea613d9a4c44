package storage

import (
	"context"
	"testing"
	"time"

	"github.com/abgdnv/storefront/internal/cart"
	"github.com/abgdnv/storefront/internal/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FileStore_OrdersRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orders := []order.Order{
		{
			ID:     "1",
			Status: order.StatusPaid,
			Items: []cart.Line{
				{ProductID: "p1", Title: "Backpack", Price: decimal.RequireFromString("109.95"), Quantity: 2},
			},
			CreatedAt: createdAt,
		},
		{ID: "2", Status: order.StatusNew, Items: []cart.Line{{ProductID: "p2", Quantity: 1}}, CreatedAt: createdAt},
	}

	require.NoError(t, store.SaveOrders(ctx, orders))

	loaded, err := store.LoadOrders(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "1", loaded[0].ID)
	assert.Equal(t, order.StatusPaid, loaded[0].Status)
	assert.True(t, createdAt.Equal(loaded[0].CreatedAt))
	require.Len(t, loaded[0].Items, 1)
	assert.True(t, decimal.RequireFromString("109.95").Equal(loaded[0].Items[0].Price))
	assert.Equal(t, 2, loaded[0].Items[0].Quantity)
}

func Test_FileStore_CartRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	lines := []cart.Line{
		{ProductID: "p1", Title: "Backpack", Price: decimal.RequireFromString("10.00"), Quantity: 3},
		{ProductID: "p2", Title: "T-Shirt", Price: decimal.RequireFromString("22.30"), Quantity: 0},
	}
	require.NoError(t, store.SaveCart(ctx, lines))

	loaded, err := store.LoadCart(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 3, loaded[0].Quantity)
	assert.Equal(t, 0, loaded[1].Quantity, "retained zero-quantity lines survive a restart")
}

func Test_FileStore_MissingFilesLoadEmpty(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	orders, err := store.LoadOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	lines, err := store.LoadCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func Test_FileStore_SaveReplacesPreviousState(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.SaveCart(ctx, []cart.Line{{ProductID: "p1", Quantity: 1}}))
	require.NoError(t, store.SaveCart(ctx, nil))

	loaded, err := store.LoadCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
