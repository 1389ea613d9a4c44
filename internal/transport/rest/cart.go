package rest

import (
	"errors"
	"net/http"

	"github.com/abgdnv/storefront/internal/catalog"
	storeerrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/abgdnv/storefront/pkg/web"
	"github.com/shopspring/decimal"
)

// addItemDto carries the product being added to the cart. The client
// sends the product as rendered on the listing screen; price is captured
// as-is and never re-synced with the catalog afterwards.
type addItemDto struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Title       string          `json:"title"      validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"      validate:"omitempty,url"`
	Description string          `json:"description"`
}

// cartDto is the wire shape of the whole cart with its derived totals.
type cartDto struct {
	Items      []lineDto `json:"items"`
	TotalItems int       `json:"total_items"`
	TotalPrice string    `json:"total_price"`
}

func (h *Handler) cartDto() cartDto {
	return cartDto{
		Items:      toLineDtos(h.cart.Items()),
		TotalItems: h.cart.TotalItems(),
		TotalPrice: h.cart.TotalPrice().StringFixed(2),
	}
}

// GetCart returns the cart contents and totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to get cart")
	web.RespondJSON(w, h.logger, http.StatusOK, h.cartDto())
}

// AddItem adds a product to the cart, incrementing quantity on repeat adds.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var dto addItemDto
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}
	if dto.Price.IsNegative() {
		web.RespondError(w, h.logger, http.StatusBadRequest, "Product price must not be negative")
		return
	}

	h.cart.Add(catalog.Product{
		ID:          dto.ProductID,
		Title:       dto.Title,
		Price:       dto.Price,
		Image:       dto.Image,
		Description: dto.Description,
	})
	h.logger.DebugContext(r.Context(), "Product added to cart", "product_id", dto.ProductID)
	h.checkout.SaveCart(r.Context())
	web.RespondJSON(w, h.logger, http.StatusOK, h.cartDto())
}

// IncreaseQuantity increments the quantity of a cart line by 1.
func (h *Handler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParsePathID(w, r, h.logger, "id")
	if !ok {
		return
	}
	if err := h.cart.Increase(id); err != nil {
		h.respondCartError(w, r, id, err)
		return
	}
	h.checkout.SaveCart(r.Context())
	web.RespondJSON(w, h.logger, http.StatusOK, h.cartDto())
}

// DecreaseQuantity decrements the quantity of a cart line by 1, floored
// at zero. The line stays in the cart until explicitly removed.
func (h *Handler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParsePathID(w, r, h.logger, "id")
	if !ok {
		return
	}
	if err := h.cart.Decrease(id); err != nil {
		h.respondCartError(w, r, id, err)
		return
	}
	h.checkout.SaveCart(r.Context())
	web.RespondJSON(w, h.logger, http.StatusOK, h.cartDto())
}

// RemoveItem deletes a cart line unconditionally.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParsePathID(w, r, h.logger, "id")
	if !ok {
		return
	}
	h.cart.Remove(id)
	h.checkout.SaveCart(r.Context())
	web.RespondJSON(w, h.logger, http.StatusOK, h.cartDto())
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	h.checkout.SaveCart(r.Context())
	web.RespondJSON(w, h.logger, http.StatusOK, h.cartDto())
}

func (h *Handler) respondCartError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if errors.Is(err, storeerrors.ErrProductNotFound) {
		h.logger.WarnContext(r.Context(), "Product not found in cart", "product_id", id)
		web.RespondError(w, h.logger, http.StatusNotFound, "Product "+id+" is not in the cart")
		return
	}
	h.logger.ErrorContext(r.Context(), "Cart operation failed", "product_id", id, "error", err)
	web.RespondError(w, h.logger, http.StatusInternalServerError, "Cart operation failed")
}
