// Package cart provides the in-memory shopping cart for the current session.
package cart

import (
	"sync"

	"github.com/abgdnv/storefront/internal/catalog"
	carterrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/shopspring/decimal"
)

// Line is one product entry in the cart with an associated quantity.
// Title, price and image are captured at the time the product is first
// added; a later catalog price change does not affect the line.
type Line struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns price * quantity for the line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store holds the working set of (product, quantity) pairs the user
// intends to buy. At most one line exists per product ID.
//
// Decrement policy: Decrease floors quantity at zero and keeps the line
// in the cart; a line disappears only through an explicit Remove (or
// Clear/Drain). Zero-quantity lines are excluded from checkout snapshots.
type Store struct {
	mu    sync.RWMutex
	lines map[string]*Line
	seq   []string // product IDs in insertion order
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		lines: make(map[string]*Line),
	}
}

// Add inserts a new line with quantity 1 for the given product, or
// increments the existing line's quantity by 1 on a repeat add.
func (s *Store) Add(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line, ok := s.lines[p.ID]; ok {
		line.Quantity++
		return
	}
	s.lines[p.ID] = &Line{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	}
	s.seq = append(s.seq, p.ID)
}

// Increase increments the quantity of the matching line by 1.
// Returns ErrProductNotFound if no line exists for the product ID.
func (s *Store) Increase(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[productID]
	if !ok {
		return carterrors.ErrProductNotFound
	}
	line.Quantity++
	return nil
}

// Decrease decrements the quantity of the matching line by 1, floored
// at zero. The line is retained at zero quantity.
// Returns ErrProductNotFound if no line exists for the product ID.
func (s *Store) Decrease(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[productID]
	if !ok {
		return carterrors.ErrProductNotFound
	}
	if line.Quantity > 0 {
		line.Quantity--
	}
	return nil
}

// Remove deletes the line unconditionally if present, no-op otherwise.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lines[productID]; !ok {
		return
	}
	delete(s.lines, productID)
	for i, id := range s.seq {
		if id == productID {
			s.seq = append(s.seq[:i], s.seq[i+1:]...)
			break
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make(map[string]*Line)
	s.seq = nil
}

// Items returns a copy of all lines in insertion order.
func (s *Store) Items() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Line, 0, len(s.seq))
	for _, id := range s.seq {
		items = append(items, *s.lines[id])
	}
	return items
}

// Len returns the number of lines in the cart, including retained
// zero-quantity lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// TotalItems returns the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the sum of price * quantity over all lines,
// rounded to 2 decimal places.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total.Round(2)
}

// Drain atomically snapshots the purchasable lines (quantity >= 1, in
// insertion order) and empties the cart, in a single critical section so
// no mutation can interleave between snapshot and clear. If nothing is
// purchasable the cart is left untouched and ok is false.
func (s *Store) Drain() (lines []Line, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.seq {
		if line := s.lines[id]; line.Quantity >= 1 {
			lines = append(lines, *line)
		}
	}
	if len(lines) == 0 {
		return nil, false
	}
	s.lines = make(map[string]*Line)
	s.seq = nil
	return lines, true
}

// Restore replaces the cart contents with previously persisted lines.
// Duplicate product IDs are collapsed, keeping the first occurrence.
func (s *Store) Restore(lines []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make(map[string]*Line, len(lines))
	s.seq = nil
	for _, line := range lines {
		if _, ok := s.lines[line.ProductID]; ok {
			continue
		}
		l := line
		s.lines[line.ProductID] = &l
		s.seq = append(s.seq, line.ProductID)
	}
}
