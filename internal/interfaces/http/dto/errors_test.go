package dto

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeUpstream, http.StatusBadGateway},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{"NOT_A_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestErrorCodeFormat(t *testing.T) {
	for code := range ErrorCodeHTTPStatus {
		assert.True(t, strings.HasPrefix(code, "ERR_"), code)
	}
}

func TestNewErrorResponse(t *testing.T) {
	before := time.Now()
	resp := NewErrorResponseWithRequestID(ErrCodeUpstream, "Failed to fetch products from the store", "req-123")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeUpstream, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Empty(t, resp.Error.Help)
	assert.False(t, resp.Error.Timestamp.Before(before))

	assert.Empty(t, NewErrorResponse(ErrCodeInternal, "boom").Error.RequestID)
}

func TestNewErrorResponseWithHelp(t *testing.T) {
	resp := NewErrorResponseWithHelp(ErrCodeConflict, "A sync run is already in progress", "req-001", "Retry later")

	assert.Equal(t, ErrCodeConflict, resp.Error.Code)
	assert.Equal(t, "Retry later", resp.Error.Help)
	assert.Equal(t, "req-001", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{{Field: "storeId", Message: "Must be at least 1"}}

	resp := NewValidationErrorResponse("Request validation failed", "req-789", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, details, resp.Error.Details)
}

func TestResponseJSON(t *testing.T) {
	t.Run("error omits data", func(t *testing.T) {
		data, err := json.Marshal(NewErrorResponseWithRequestID(ErrCodeNotFound, "Route not found", "req-1"))
		require.NoError(t, err)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, false, raw["success"])
		assert.NotContains(t, raw, "data")

		errObj := raw["error"].(map[string]interface{})
		assert.Equal(t, ErrCodeNotFound, errObj["code"])
		assert.Equal(t, "req-1", errObj["request_id"])
		assert.NotContains(t, errObj, "details")
		assert.NotContains(t, errObj, "help")
	})

	t.Run("success omits error", func(t *testing.T) {
		data, err := json.Marshal(NewSuccessResponse(map[string]string{"message": "pong"}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"data":{"message":"pong"}}`, string(data))
	})
}
