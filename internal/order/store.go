// Package order provides the immutable order history and its
// forward-only status lifecycle.
package order

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/abgdnv/storefront/internal/cart"
	ordererrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/shopspring/decimal"
)

// Order is a placed order. Items are a snapshot of the cart at checkout
// time and never change afterwards; only Status is mutable, through
// Store.Advance.
type Order struct {
	ID        string      `json:"id"`
	Status    Status      `json:"status"`
	Items     []cart.Line `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

// ItemCount returns the sum of line quantities. Computed on read.
func (o Order) ItemCount() int {
	count := 0
	for _, line := range o.Items {
		count += line.Quantity
	}
	return count
}

// Total returns the sum of price * quantity over all lines, rounded to
// 2 decimal places. Computed on read.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Items {
		total = total.Add(line.Subtotal())
	}
	return total.Round(2)
}

func (o Order) clone() Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// Store owns all orders placed during the session, in insertion order.
// Order IDs are assigned from an in-process monotonic counter, rendered
// as decimal strings; they are unique for the process lifetime.
type Store struct {
	mu     sync.RWMutex
	orders []Order
	index  map[string]int // order ID -> position in orders
	nextID int
	now    func() time.Time
}

// NewStore creates an empty order store.
func NewStore() *Store {
	return &Store{
		index:  make(map[string]int),
		nextID: 1,
		now:    time.Now,
	}
}

// Place creates a new order with status "new" from a non-empty cart
// snapshot. The lines are deep-copied, so later mutation of the input
// does not affect the stored order.
// Returns ErrEmptyCart if lines is empty.
func (s *Store) Place(lines []cart.Line) (Order, error) {
	if len(lines) == 0 {
		return Order{}, ordererrors.ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o := Order{
		ID:        strconv.Itoa(s.nextID),
		Status:    StatusNew,
		Items:     slices.Clone(lines),
		CreatedAt: s.now(),
	}
	s.nextID++
	s.index[o.ID] = len(s.orders)
	s.orders = append(s.orders, o)

	return o.clone(), nil
}

// Advance moves the order to the given target status, which must be the
// immediate successor of its current status. Regressions, skips and
// transitions out of the terminal status are rejected.
// Returns ErrOrderNotFound if the order ID is unknown and
// ErrInvalidTransition if the target is not the immediate successor.
func (s *Store) Advance(orderID string, target Status) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[orderID]
	if !ok {
		return Order{}, fmt.Errorf("order %s: %w", orderID, ordererrors.ErrOrderNotFound)
	}
	o := &s.orders[pos]
	next, ok := o.Status.Next()
	if !ok || next != target {
		return Order{}, fmt.Errorf("order %s: %s -> %s: %w", orderID, o.Status, target, ordererrors.ErrInvalidTransition)
	}
	o.Status = target

	return o.clone(), nil
}

// Get returns the order with the given ID.
// Returns ErrOrderNotFound if the order ID is unknown.
func (s *Store) Get(orderID string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[orderID]
	if !ok {
		return Order{}, fmt.Errorf("order %s: %w", orderID, ordererrors.ErrOrderNotFound)
	}
	return s.orders[pos].clone(), nil
}

// All returns all orders in insertion order, oldest first.
func (s *Store) All() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		all = append(all, o.clone())
	}
	return all
}

// ByStatus returns a restartable sequence of orders with the given
// status, in insertion order. The sequence observes the store state as
// of the moment iteration starts.
func (s *Store) ByStatus(status Status) iter.Seq[Order] {
	return func(yield func(Order) bool) {
		s.mu.RLock()
		matched := make([]Order, 0, len(s.orders))
		for _, o := range s.orders {
			if o.Status == status {
				matched = append(matched, o.clone())
			}
		}
		s.mu.RUnlock()

		for _, o := range matched {
			if !yield(o) {
				return
			}
		}
	}
}

// Restore replaces the store contents with previously persisted orders
// and continues ID assignment past the highest numeric ID seen.
func (s *Store) Restore(orders []Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = make([]Order, 0, len(orders))
	s.index = make(map[string]int, len(orders))
	s.nextID = 1
	for _, o := range orders {
		if _, ok := s.index[o.ID]; ok {
			continue
		}
		s.index[o.ID] = len(s.orders)
		s.orders = append(s.orders, o.clone())
		if n, err := strconv.Atoi(o.ID); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
}
