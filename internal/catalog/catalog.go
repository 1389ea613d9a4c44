// Package catalog provides access to the remote product catalog.
package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is a read-only record served by the catalog.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// Provider defines read access to the product catalog.
// It abstracts the remote catalog service; failures are returned to the
// caller as-is, there is no retry or caching at this level.
type Provider interface {
	// Categories returns the list of category names.
	Categories(ctx context.Context) ([]string, error)

	// ProductsByCategory returns all products in the given category.
	// Returns an empty slice if the category has no products.
	ProductsByCategory(ctx context.Context, category string) ([]Product, error)

	// Product returns a single product by its identifier.
	Product(ctx context.Context, id string) (Product, error)
}
