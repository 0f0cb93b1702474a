package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

// StoreProduct renders a Tiendanube product as the products endpoint returns it.
func StoreProduct(id int64, name, price string, published, freeShipping bool) map[string]interface{} {
	return map[string]interface{}{
		"id":            id,
		"name":          map[string]string{"pt": name},
		"description":   map[string]string{"pt": "<p>" + name + "</p>"},
		"price":         price,
		"published":     published,
		"free_shipping": freeShipping,
		"images":        []map[string]string{{"src": "https://cdn.example.com/" + strconv.FormatInt(id, 10) + ".jpg"}},
	}
}

// RandomStoreProducts renders n visible products with ids starting at first.
func RandomStoreProducts(first int64, n int) []map[string]interface{} {
	products := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		price := strconv.FormatFloat(gofakeit.Price(1, 500), 'f', 2, 64)
		products = append(products, StoreProduct(first+int64(i), gofakeit.ProductName(), price, true, true))
	}
	return products
}

// FakeStore serves the Tiendanube products listing for one store.
type FakeStore struct {
	Server  *httptest.Server
	StoreID int64

	mu       sync.Mutex
	products []map[string]interface{}
	status   int
	requests int
	tokens   []string
}

// NewFakeStore starts a fake store API closed at test cleanup.
func NewFakeStore(t *testing.T, storeID int64, products []map[string]interface{}) *FakeStore {
	t.Helper()

	s := &FakeStore{StoreID: storeID, products: products}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Server.Close)
	return s
}

// URL is the API root to configure the store client with.
func (s *FakeStore) URL() string {
	return s.Server.URL
}

// FailWith makes every following request answer status.
func (s *FakeStore) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Requests returns how many page requests were served.
func (s *FakeStore) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// Tokens returns the Authentication headers received.
func (s *FakeStore) Tokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

func (s *FakeStore) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	s.tokens = append(s.tokens, r.Header.Get("Authentication"))
	status := s.status
	products := s.products
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if status != 0 {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"code":`+strconv.Itoa(status)+`,"message":"`+http.StatusText(status)+`","description":"fake store failure"}`)
		return
	}

	if r.URL.Path != "/"+strconv.FormatInt(s.StoreID, 10)+"/products" {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":404,"message":"Not Found","description":"Store not found"}`)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 30
	}

	start := (page - 1) * perPage
	if start >= len(products) && page > 1 {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":404,"message":"Not Found","description":"Last page is `+strconv.Itoa(page-1)+`"}`)
		return
	}
	end := start + perPage
	if end > len(products) {
		end = len(products)
	}
	if start > end {
		start = end
	}

	_ = json.NewEncoder(w).Encode(products[start:end])
}

// FakeMarketplace records TikTok Shop product submissions.
type FakeMarketplace struct {
	Server *httptest.Server

	mu       sync.Mutex
	listings []map[string]interface{}
	auth     []string
	reject   map[string]int
}

// NewFakeMarketplace starts a fake marketplace API closed at test cleanup.
func NewFakeMarketplace(t *testing.T) *FakeMarketplace {
	t.Helper()

	m := &FakeMarketplace{reject: make(map[string]int)}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Server.Close)
	return m
}

// URL is the API root to configure the marketplace adapter with.
func (m *FakeMarketplace) URL() string {
	return m.Server.URL
}

// RejectTitle makes submissions whose title contains fragment answer status.
func (m *FakeMarketplace) RejectTitle(fragment string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reject[fragment] = status
}

// Listings returns the accepted and rejected submissions in arrival order.
func (m *FakeMarketplace) Listings() []map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]map[string]interface{}(nil), m.listings...)
}

// Authorizations returns the Authorization headers received.
func (m *FakeMarketplace) Authorizations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.auth...)
}

func (m *FakeMarketplace) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost || r.URL.Path != "/product/add" {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"unknown endpoint"}`)
		return
	}

	var listing map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"malformed body"}`)
		return
	}

	m.mu.Lock()
	m.listings = append(m.listings, listing)
	m.auth = append(m.auth, r.Header.Get("Authorization"))
	id := len(m.listings)
	status := 0
	title, _ := listing["title"].(string)
	for fragment, s := range m.reject {
		if strings.Contains(title, fragment) {
			status = s
			break
		}
	}
	m.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    40001,
			"message": "listing rejected: " + title,
		})
		return
	}

	_, _ = io.WriteString(w, `{"code":0,"message":"success","data":{"product_id":"`+strconv.Itoa(7000+id)+`"}}`)
}
