package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, DefaultBasePath, r.BasePath())
	assert.Empty(t, r.registrars)
}

func TestRouterWithBasePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/marketplace", "/marketplace"},
		{"marketplace", "/marketplace"},
		{"/marketplace/", "/marketplace"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := NewRouter(gin.New(), WithBasePath(tt.input))
			assert.Equal(t, tt.expected, r.BasePath())
		})
	}
}

func TestRouterRegister(t *testing.T) {
	r := NewRouter(gin.New())

	r.Register(NewDomainGroup("a", "/a")).Register(NewDomainGroup("b", "/b"))

	assert.Len(t, r.registrars, 2)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	catalog := NewDomainGroup("catalog", "")
	catalog.GET("/products/:storeId", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("storeId"))
	})
	r.Register(catalog)
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tiktok/products/42", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("registers GET routes", func(t *testing.T) {
		engine := gin.New()
		dg := NewDomainGroup("test", "/test")
		dg.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "get")
		})

		dg.RegisterRoutes(engine.Group("/tiktok"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tiktok/test/items", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "get", w.Body.String())
	})

	t.Run("registers POST routes", func(t *testing.T) {
		engine := gin.New()
		dg := NewDomainGroup("test", "/test")
		dg.POST("/items", func(c *gin.Context) {
			c.String(http.StatusCreated, "post")
		})

		dg.RegisterRoutes(engine.Group("/tiktok"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tiktok/test/items", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()
		dg := NewDomainGroup("test", "/test")
		dg.Use(func(c *gin.Context) {
			c.Header("X-Group", "catalog")
			c.Next()
		})
		dg.GET("/items", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		dg.RegisterRoutes(engine.Group("/tiktok"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tiktok/test/items", nil))
		assert.Equal(t, "catalog", w.Header().Get("X-Group"))
	})

	t.Run("registers subgroups", func(t *testing.T) {
		engine := gin.New()
		dg := NewDomainGroup("catalog", "/catalog")
		dg.Group("config", "/config").GET("/status", func(c *gin.Context) {
			c.String(http.StatusOK, "status")
		})

		dg.RegisterRoutes(engine.Group("/tiktok"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tiktok/catalog/config/status", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "status", w.Body.String())
	})

	t.Run("exposes name and prefix", func(t *testing.T) {
		dg := NewDomainGroup("catalog", "/catalog")
		assert.Equal(t, "catalog", dg.Name())
		assert.Equal(t, "/catalog", dg.Prefix())
	})
}

func TestChainedMethodCalls(t *testing.T) {
	engine := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	NewDomainGroup("test", "/test").
		GET("/a", ok).
		POST("/b", ok).
		RegisterRoutes(engine.Group("/tiktok"))

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/tiktok/test/a"},
		{http.MethodPost, "/tiktok/test/b"},
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(req.method, req.path, nil))
		assert.Equal(t, http.StatusOK, w.Code, req.path)
	}
}

func TestRouterRoutes(t *testing.T) {
	noop := func(c *gin.Context) {}

	catalog := NewDomainGroup("catalog_sync", "").
		GET("/products/:storeId", noop).
		POST("/sync/:storeId", noop)
	system := NewDomainGroup("system", "/system").GET("/ping", noop)
	system.Group("debug", "/debug").GET("/vars", noop)

	tests := []struct {
		name     string
		opts     []RouterOption
		expected []RouteInfo
	}{
		{
			name: "default base path",
			expected: []RouteInfo{
				{Group: "catalog_sync", Method: http.MethodGet, Path: "/tiktok/products/:storeId"},
				{Group: "catalog_sync", Method: http.MethodPost, Path: "/tiktok/sync/:storeId"},
				{Group: "system", Method: http.MethodGet, Path: "/tiktok/system/ping"},
				{Group: "debug", Method: http.MethodGet, Path: "/tiktok/system/debug/vars"},
			},
		},
		{
			name: "root base path",
			opts: []RouterOption{WithBasePath("/")},
			expected: []RouteInfo{
				{Group: "catalog_sync", Method: http.MethodGet, Path: "/products/:storeId"},
				{Group: "catalog_sync", Method: http.MethodPost, Path: "/sync/:storeId"},
				{Group: "system", Method: http.MethodGet, Path: "/system/ping"},
				{Group: "debug", Method: http.MethodGet, Path: "/system/debug/vars"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			r := NewRouter(engine, tt.opts...).Register(catalog).Register(system)
			assert.Equal(t, tt.expected, r.Routes())

			r.Setup()
			registered := make(map[string]bool)
			for _, route := range engine.Routes() {
				registered[route.Method+" "+route.Path] = true
			}
			for _, route := range tt.expected {
				assert.True(t, registered[route.Method+" "+route.Path], route.Path)
			}
		})
	}
}
