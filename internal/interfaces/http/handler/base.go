package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/interfaces/http/dto"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
)

// RequestIDKey is the header carrying the request ID
const RequestIDKey = middleware.RequestIDKey

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID set by the RequestID middleware,
// falling back to the inbound header
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDContextKey); id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDKey); id != "" {
		return id
	}
	return ""
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response, deriving the status code from the error
// code. A non-empty help is returned to the client as a remediation hint.
func (h *BaseHandler) Error(c *gin.Context, code, message, help string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithHelp(code, message, getRequestID(c), help))
}

// HandleError converts sync pipeline errors to HTTP responses. The error is
// also attached to the gin context so the request logger records it.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	code, message, help := classifyError(err)
	h.Error(c, code, message, help)
}

// classifyError maps an error chain to an API error code, a client-safe
// message and an optional hint. ErrInvalidStoreID travels inside a
// FetchError, so it is checked first.
func classifyError(err error) (code, message, help string) {
	var fetchErr *integration.FetchError
	switch {
	case errors.Is(err, integration.ErrInvalidStoreID):
		return dto.ErrCodeInvalidInput, "storeId must be a positive integer", ""
	case errors.Is(err, integration.ErrSyncInProgress):
		return dto.ErrCodeConflict, "A sync run is already in progress for this store",
			"Retry once the running sync has finished"
	case errors.As(err, &fetchErr):
		help := ""
		if errors.Is(fetchErr, integration.ErrPlatformRequestFailed) {
			help = "Check the store id and TIENDANUBE_ACCESS_TOKEN"
		}
		return dto.ErrCodeUpstream, "Failed to fetch products from the store: " + fetchErr.Err.Error(), help
	case errors.Is(err, context.DeadlineExceeded):
		return dto.ErrCodeTimeout, "The request timed out", ""
	default:
		return dto.ErrCodeInternal, "An unexpected error occurred", ""
	}
}
