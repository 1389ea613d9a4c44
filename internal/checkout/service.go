// Package checkout converts the current cart into a new order.
package checkout

import (
	"context"
	"log/slog"

	"github.com/abgdnv/storefront/internal/cart"
	checkouterrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/abgdnv/storefront/internal/order"
)

// Persister is the optional write-through persistence adapter.
// The in-memory stores remain the source of truth; persistence failures
// are logged and never fail the user-facing operation.
type Persister interface {
	SaveCart(ctx context.Context, lines []cart.Line) error
	SaveOrders(ctx context.Context, orders []order.Order) error
}

// Service orchestrates the checkout flow: cart snapshot, order creation
// and cart clearing are performed as one logical transaction, with no
// point where another cart mutation could interleave between snapshot
// and clear.
type Service struct {
	cart      *cart.Store
	orders    *order.Store
	persister Persister
	logger    *slog.Logger
}

// NewService creates a checkout service over the given stores.
// persister may be nil to disable durability.
func NewService(cartStore *cart.Store, orderStore *order.Store, persister Persister, logger *slog.Logger) *Service {
	return &Service{
		cart:      cartStore,
		orders:    orderStore,
		persister: persister,
		logger:    logger.With("component", "checkout"),
	}
}

// Checkout drains the cart and places a new order from its contents.
// Returns ErrEmptyCart if the cart holds no purchasable lines; in that
// case the cart is left unchanged.
func (s *Service) Checkout(ctx context.Context) (order.Order, error) {
	lines, ok := s.cart.Drain()
	if !ok {
		return order.Order{}, checkouterrors.ErrEmptyCart
	}

	placed, err := s.orders.Place(lines)
	if err != nil {
		// Drain guarantees a non-empty snapshot; restore it if Place
		// ever rejects so no user data is lost.
		s.cart.Restore(lines)
		return order.Order{}, err
	}
	s.logger.InfoContext(ctx, "Order placed", "order_id", placed.ID, "items", placed.ItemCount())

	s.persist(ctx)
	return placed, nil
}

// SaveCart writes the current cart through to the persistence adapter.
// Called by the transport layer after cart mutations.
func (s *Service) SaveCart(ctx context.Context) {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveCart(ctx, s.cart.Items()); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist cart", "error", err)
	}
}

// SaveOrders writes the order history through to the persistence adapter.
// Called by the transport layer after status changes.
func (s *Service) SaveOrders(ctx context.Context) {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveOrders(ctx, s.orders.All()); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist orders", "error", err)
	}
}

func (s *Service) persist(ctx context.Context) {
	s.SaveCart(ctx)
	s.SaveOrders(ctx)
}
