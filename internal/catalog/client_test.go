package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, discardLogger())
}

func Test_Client_Categories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["electronics","jewelery","men's clothing","women's clothing"]`))
	})

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery", "men's clothing", "women's clothing"}, categories)
}

func Test_Client_ProductsByCategory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/category/electronics", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"title":"Hard Drive","price":64,"image":"https://img.example/1.png","description":"1TB"},
			{"id":2,"title":"SSD","price":109.95,"image":"https://img.example/2.png","description":"500GB"}
		]`))
	})

	products, err := client.ProductsByCategory(context.Background(), "electronics")
	require.NoError(t, err)
	require.Len(t, products, 2)

	// numeric API identifiers are normalized to strings at the boundary
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "64", products[0].Price.String())
	assert.Equal(t, "2", products[1].ID)
	assert.Equal(t, "109.95", products[1].Price.String())
	assert.Equal(t, "SSD", products[1].Title)
}

func Test_Client_Product(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"title":"Jacket","price":55.99,"image":"","description":"warm"}`))
	})

	product, err := client.Product(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "7", product.ID)
	assert.Equal(t, "Jacket", product.Title)
}

func Test_Client_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"id":`))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, tc.handler)
			_, err := client.Categories(context.Background())
			assert.Error(t, err)
		})
	}
}

func Test_Client_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Categories(ctx)
	assert.Error(t, err)
}
