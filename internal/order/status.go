package order

import (
	"fmt"

	ordererrors "github.com/abgdnv/storefront/internal/errors"
)

// Status is the lifecycle state of an order. The lifecycle is strictly
// forward-only: new -> paid -> delivered, one step at a time.
type Status string

const (
	StatusNew       Status = "new"
	StatusPaid      Status = "paid"
	StatusDelivered Status = "delivered"
)

// ParseStatus converts a string into a Status.
// Returns ErrInvalidStatus for anything outside the enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusPaid, StatusDelivered:
		return Status(s), nil
	}
	return "", fmt.Errorf("%q: %w", s, ordererrors.ErrInvalidStatus)
}

// Next returns the immediate successor of the status. ok is false for
// the terminal status.
func (s Status) Next() (next Status, ok bool) {
	switch s {
	case StatusNew:
		return StatusPaid, true
	case StatusPaid:
		return StatusDelivered, true
	default:
		return "", false
	}
}

func (s Status) String() string {
	return string(s)
}
