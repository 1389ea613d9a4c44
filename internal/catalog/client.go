package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Client is a Provider backed by a fakestore-compatible JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Provider = (*Client)(nil)

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "catalog"),
	}
}

// productRecord is the wire shape of a catalog product. The API serves
// numeric identifiers; they are normalized to strings at this boundary so
// exactly one Product shape exists in the application.
type productRecord struct {
	ID          json.Number     `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

func (r productRecord) toProduct() Product {
	return Product{
		ID:          r.ID.String(),
		Title:       r.Title,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
	}
}

// Categories returns the list of category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "/products/categories", &categories); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

// ProductsByCategory returns all products in the given category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	var records []productRecord
	path := "/products/category/" + url.PathEscape(category)
	if err := c.getJSON(ctx, path, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch products for category %q: %w", category, err)
	}
	products := make([]Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toProduct())
	}
	return products, nil
}

// Product returns a single product by its identifier.
func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	var record productRecord
	path := "/products/" + url.PathEscape(id)
	if err := c.getJSON(ctx, path, &record); err != nil {
		return Product{}, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	return record.toProduct(), nil
}

// getJSON performs a GET request against the catalog and decodes the
// JSON response body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WarnContext(ctx, "Failed to close catalog response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog responded with status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}
