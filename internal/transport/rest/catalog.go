package rest

import (
	"net/http"

	"github.com/abgdnv/storefront/internal/catalog"
	"github.com/abgdnv/storefront/pkg/web"
)

// productDto is the wire shape of a catalog product.
type productDto struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

func toProductDto(p catalog.Product) productDto {
	return productDto{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price.StringFixed(2),
		Image:       p.Image,
		Description: p.Description,
	}
}

// ListCategories returns the catalog category names.
// A catalog failure is reported as 502; there is no retry here.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to fetch categories", "error", err)
		web.RespondError(w, h.logger, http.StatusBadGateway, "Catalog is unavailable")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, categories)
}

// ListProducts returns the products of one category.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category, ok := web.ParsePathID(w, r, h.logger, "category")
	if !ok {
		return
	}
	products, err := h.catalog.ProductsByCategory(r.Context(), category)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to fetch products", "category", category, "error", err)
		web.RespondError(w, h.logger, http.StatusBadGateway, "Catalog is unavailable")
		return
	}
	dtos := make([]productDto, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDto(p))
	}
	web.RespondJSON(w, h.logger, http.StatusOK, dtos)
}
