package rest

import (
	"errors"
	"net/http"

	storeerrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/abgdnv/storefront/internal/order"
	"github.com/abgdnv/storefront/pkg/web"
)

type advanceOrderDto struct {
	Status string `json:"status" validate:"required,oneof=new paid delivered"`
}

// Checkout converts the current cart into a new order and empties the
// cart, as one logical transaction.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	placed, err := h.checkout.Checkout(r.Context())
	if err != nil {
		if errors.Is(err, storeerrors.ErrEmptyCart) {
			h.logger.WarnContext(r.Context(), "Checkout attempted with empty cart")
			web.RespondError(w, h.logger, http.StatusConflict, "Your cart is empty")
			return
		}
		h.logger.ErrorContext(r.Context(), "Checkout failed", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Checkout failed")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusCreated, toOrderDto(placed))
}

// ListOrders returns all orders in insertion order, oldest first. An
// optional ?status= query filters to one lifecycle state, which the
// order screen uses to render the new/paid/delivered groupings.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	statusParam := r.URL.Query().Get("status")
	if statusParam == "" {
		dtos := make([]orderDto, 0)
		for _, o := range h.orders.All() {
			dtos = append(dtos, toOrderDto(o))
		}
		web.RespondJSON(w, h.logger, http.StatusOK, dtos)
		return
	}

	status, err := order.ParseStatus(statusParam)
	if err != nil {
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid status: "+statusParam)
		return
	}
	dtos := make([]orderDto, 0)
	for o := range h.orders.ByStatus(status) {
		dtos = append(dtos, toOrderDto(o))
	}
	web.RespondJSON(w, h.logger, http.StatusOK, dtos)
}

// GetOrder returns a single order by ID.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParsePathID(w, r, h.logger, "id")
	if !ok {
		return
	}
	found, err := h.orders.Get(id)
	if err != nil {
		h.respondOrderError(w, r, id, err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, toOrderDto(found))
}

// AdvanceOrder moves an order to the next lifecycle state. The target
// must be the immediate successor of the current status; anything else
// is rejected, never silently coerced.
func (h *Handler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParsePathID(w, r, h.logger, "id")
	if !ok {
		return
	}
	var dto advanceOrderDto
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}
	target, err := order.ParseStatus(dto.Status)
	if err != nil {
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid status: "+dto.Status)
		return
	}

	updated, err := h.orders.Advance(id, target)
	if err != nil {
		h.respondOrderError(w, r, id, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Order status advanced", "order_id", id, "status", target)
	h.checkout.SaveOrders(r.Context())
	web.RespondJSON(w, h.logger, http.StatusOK, toOrderDto(updated))
}

func (h *Handler) respondOrderError(w http.ResponseWriter, r *http.Request, id string, err error) {
	switch {
	case errors.Is(err, storeerrors.ErrOrderNotFound):
		h.logger.WarnContext(r.Context(), "Order not found", "order_id", id)
		web.RespondError(w, h.logger, http.StatusNotFound, "Order "+id+" not found")
	case errors.Is(err, storeerrors.ErrInvalidTransition):
		h.logger.WarnContext(r.Context(), "Invalid order status transition", "order_id", id, "error", err)
		web.RespondError(w, h.logger, http.StatusConflict, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Order operation failed", "order_id", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Order operation failed")
	}
}
