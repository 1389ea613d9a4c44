// Package errors provides custom error types for cart and order operations.
package errors

import "errors"

var ErrEmptyCart = errors.New("cart is empty")

var ErrProductNotFound = errors.New("product not found in cart")

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidTransition = errors.New("invalid order status transition")
var ErrInvalidStatus = errors.New("unknown order status")
