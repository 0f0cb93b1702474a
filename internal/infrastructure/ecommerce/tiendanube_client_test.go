package ecommerce

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestTiendanubeConfig_Validate(t *testing.T) {
	t.Run("defaults filled", func(t *testing.T) {
		cfg := &TiendanubeConfig{AccessToken: "token", PageSize: 500}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, TiendanubeAPIURL, cfg.APIBaseURL)
		assert.Equal(t, defaultTiendanubePageSize, cfg.PageSize)
		assert.Equal(t, defaultTiendanubeMaxPages, cfg.MaxPages)
		assert.Equal(t, defaultTiendanubeTimeout, cfg.TimeoutSeconds)
		assert.NotEmpty(t, cfg.UserAgent)
	})

	t.Run("token is optional at construction", func(t *testing.T) {
		cfg := &TiendanubeConfig{}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("invalid base URL", func(t *testing.T) {
		cfg := &TiendanubeConfig{APIBaseURL: "api.tiendanube.com"}
		assert.ErrorIs(t, cfg.Validate(), ErrTiendanubeConfigInvalidBaseURL)
	})
}

// ---------------------------------------------------------------------------
// Client Tests
// ---------------------------------------------------------------------------

func newTestTiendanubeClient(t *testing.T, baseURL string, pageSize int) *TiendanubeClient {
	t.Helper()
	cfg := NewTiendanubeConfig("store-token")
	cfg.APIBaseURL = baseURL
	cfg.PageSize = pageSize
	client, err := NewTiendanubeClient(cfg, nil)
	require.NoError(t, err)
	return client
}

// productPage renders n products with ids starting at first
func productPage(first, n int) string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := first + i
		items = append(items, fmt.Sprintf(
			`{"id":%d,"name":{"pt":"Produto %d"},"price":"10.00","published":true,"free_shipping":%t}`,
			id, id, id%2 == 0))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestTiendanubeClient_ListProducts_SinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1234/products", r.URL.Path)
		assert.Equal(t, "bearer store-token", r.Header.Get("Authentication"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(productPage(1, 3)))
	}))
	defer server.Close()

	client := newTestTiendanubeClient(t, server.URL, 50)

	products, err := client.ListProducts(context.Background(), 1234)

	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, integration.ProductID("1"), products[0].ID)
	assert.Equal(t, "Produto 3", products[2].Name.Resolve(""))
}

func TestTiendanubeClient_ListProducts_DrainsPages(t *testing.T) {
	var (
		mu    sync.Mutex
		pages []int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()
		switch page {
		case 1:
			_, _ = w.Write([]byte(productPage(1, 2)))
		case 2:
			_, _ = w.Write([]byte(productPage(3, 2)))
		default:
			_, _ = w.Write([]byte(productPage(5, 1)))
		}
	}))
	defer server.Close()

	client := newTestTiendanubeClient(t, server.URL, 2)

	products, err := client.ListProducts(context.Background(), 1)

	require.NoError(t, err)
	mu.Lock()
	assert.Equal(t, []int{1, 2, 3}, pages)
	mu.Unlock()
	require.Len(t, products, 5)
	for i, p := range products {
		assert.Equal(t, integration.ProductID(strconv.Itoa(i+1)), p.ID, "platform order is kept")
	}
}

func TestTiendanubeClient_ListProducts_LastPageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			_, _ = w.Write([]byte(productPage(1, 2)))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":404,"message":"Not Found","description":"Last page is 1"}`))
	}))
	defer server.Close()

	client := newTestTiendanubeClient(t, server.URL, 2)

	products, err := client.ListProducts(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestTiendanubeClient_ListProducts_EmptyStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestTiendanubeClient(t, server.URL, 10)

	products, err := client.ListProducts(context.Background(), 1)

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestTiendanubeClient_ListProducts_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"code":401,"message":"Unauthorized","description":"Invalid access token"}`, integration.ErrPlatformRequestFailed, "Invalid access token"},
		{"store not found", http.StatusNotFound, `{"code":404,"message":"Not Found"}`, integration.ErrPlatformRequestFailed, "Not Found"},
		{"server error without body", http.StatusInternalServerError, ``, integration.ErrPlatformRequestFailed, "Internal Server Error"},
		{"malformed payload", http.StatusOK, `{"not":"a list"}`, integration.ErrPlatformInvalidResponse, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestTiendanubeClient(t, server.URL, 10)

			products, err := client.ListProducts(context.Background(), 1)

			assert.Nil(t, products)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestTiendanubeClient_ListProducts_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := newTestTiendanubeClient(t, baseURL, 10)

	_, err := client.ListProducts(context.Background(), 1)

	assert.ErrorIs(t, err, integration.ErrPlatformUnavailable)
}

func TestTiendanubeClient_ListProducts_MaxPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(productPage(1, 1)))
	}))
	defer server.Close()

	cfg := NewTiendanubeConfig("token")
	cfg.APIBaseURL = server.URL
	cfg.PageSize = 1
	cfg.MaxPages = 3
	client, err := NewTiendanubeClient(cfg, nil)
	require.NoError(t, err)

	_, err = client.ListProducts(context.Background(), 1)

	assert.ErrorIs(t, err, integration.ErrPlatformInvalidResponse)
}

func TestTiendanubeClient_ListProducts_NoToken(t *testing.T) {
	client, err := NewTiendanubeClient(&TiendanubeConfig{}, nil)
	require.NoError(t, err)

	_, err = client.ListProducts(context.Background(), 1)

	assert.ErrorIs(t, err, ErrTiendanubeNotConfigured)
}
