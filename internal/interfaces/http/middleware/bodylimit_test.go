package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/catalogsync/backend/internal/interfaces/http/dto"
	"github.com/catalogsync/backend/internal/testutil"
)

func newBodyLimitEngine(limit int64) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID(), BodyLimit(limit))
	engine.POST("/tiktok/sync/:storeId", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusBadRequest, "body too large")
			return
		}
		c.String(http.StatusOK, "ok")
	})
	return engine
}

func TestBodyLimit(t *testing.T) {
	tests := []struct {
		name           string
		limit          int64
		bodySize       int
		contentLength  int64
		expectedStatus int
	}{
		{"within limit", 1024, 10, 10, http.StatusOK},
		{"no body", 10, 0, 0, http.StatusOK},
		{"declared length over limit", 100, 200, 200, http.StatusRequestEntityTooLarge},
		{"streamed body over limit", 50, 100, -1, http.StatusBadRequest},
		{"zero limit falls back to default", 0, 2048, 2048, http.StatusOK},
		{"over default limit", 0, int(DefaultMaxBodySize) + 1, DefaultMaxBodySize + 1, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tiktok/sync/42", strings.NewReader(strings.Repeat("x", tt.bodySize)))
			req.ContentLength = tt.contentLength
			w := httptest.NewRecorder()

			newBodyLimitEngine(tt.limit).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestBodyLimit_ErrorEnvelope(t *testing.T) {
	engine := newBodyLimitEngine(8)

	req := httptest.NewRequest(http.MethodPost, "/tiktok/sync/42", strings.NewReader(strings.Repeat("x", 64)))
	req.Header.Set(RequestIDKey, "req-body-limit")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	testutil.AssertErrorBody(t, w, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge)
	errObj := testutil.JSONBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "req-body-limit", errObj["request_id"])
}
