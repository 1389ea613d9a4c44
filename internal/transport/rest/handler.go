// Package rest provides HTTP handlers for the storefront API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/abgdnv/storefront/internal/cart"
	"github.com/abgdnv/storefront/internal/catalog"
	"github.com/abgdnv/storefront/internal/checkout"
	"github.com/abgdnv/storefront/internal/order"
	"github.com/abgdnv/storefront/internal/session"
	"github.com/abgdnv/storefront/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	cart     *cart.Store
	orders   *order.Store
	checkout *checkout.Service
	catalog  catalog.Provider
	sessions *session.Store
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the storefront API handler.
func NewHandler(cartStore *cart.Store, orderStore *order.Store, checkoutSvc *checkout.Service,
	catalogProvider catalog.Provider, sessions *session.Store, logger *slog.Logger) *Handler {
	return &Handler{
		cart:     cartStore,
		orders:   orderStore,
		checkout: checkoutSvc,
		catalog:  catalogProvider,
		sessions: sessions,
		validate: validator.New(),

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the storefront API.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticated)

			r.Get("/me", h.Me)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.GetCart)
				r.Delete("/", h.ClearCart)
				r.Post("/items", h.AddItem)
				r.Post("/items/{id}/increase", h.IncreaseQuantity)
				r.Post("/items/{id}/decrease", h.DecreaseQuantity)
				r.Delete("/items/{id}", h.RemoveItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.ListOrders)
				r.Post("/", h.Checkout)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetOrder)
					r.Post("/advance", h.AdvanceOrder)
				})
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/categories", h.ListCategories)
				r.Get("/categories/{category}/products", h.ListProducts)
			})
		})
	})
	r.Get("/healthz", h.HealthCheck)
}

// Authenticated verifies the Bearer session token and stores the user ID
// in the request context. Store operations themselves are never gated;
// access control lives entirely in this middleware.
func (h *Handler) Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			web.RespondError(w, h.logger, http.StatusUnauthorized, "Unauthorized: Missing bearer token")
			return
		}
		profile, err := h.sessions.Verify(token)
		if err != nil {
			web.RespondError(w, h.logger, http.StatusUnauthorized, "Unauthorized: Invalid session token")
			return
		}
		ctx := web.WithUserID(r.Context(), profile.ID.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// HealthCheck responds with a simple status object.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(r *http.Request, dto any) error {
	return json.NewDecoder(r.Body).Decode(dto)
}

// decodeAndValidate decodes the JSON request body into dto and runs
// struct validation, writing the error response itself on failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dto any) bool {
	if err := decodeJSON(r, dto); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, h.logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		h.logger.WarnContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// lineDto is the wire shape of a cart line.
type lineDto struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

func toLineDto(l cart.Line) lineDto {
	return lineDto{
		ProductID: l.ProductID,
		Title:     l.Title,
		Price:     l.Price.StringFixed(2),
		Image:     l.Image,
		Quantity:  l.Quantity,
	}
}

func toLineDtos(lines []cart.Line) []lineDto {
	dtos := make([]lineDto, 0, len(lines))
	for _, l := range lines {
		dtos = append(dtos, toLineDto(l))
	}
	return dtos
}

// orderDto is the wire shape of an order. ItemCount and Total are
// derived from the items on every render, they are never stored.
type orderDto struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Items     []lineDto `json:"items"`
	ItemCount int       `json:"item_count"`
	Total     string    `json:"total"`
	CreatedAt string    `json:"created_at"`
}

func toOrderDto(o order.Order) orderDto {
	return orderDto{
		ID:        o.ID,
		Status:    o.Status.String(),
		Items:     toLineDtos(o.Items),
		ItemCount: o.ItemCount(),
		Total:     o.Total().StringFixed(2),
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}
