package dto

import "net/http"

// Error codes returned in ErrorInfo.Code. Format: ERR_<CATEGORY>.
const (
	// ErrCodeInternal is used for unexpected failures
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeValidation is used when request parameters fail validation
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for values the service rejects, such as a
	// non-positive store id reaching the pipeline
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodePayloadTooLarge is used when the request body exceeds the limit
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
	// ErrCodeForbidden is used when the client may not read a resource
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeNotFound is used when a route or resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used when a sync run already holds the store
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeUpstream is used when the store platform could not be read
	ErrCodeUpstream = "ERR_UPSTREAM"
	// ErrCodeTimeout is used when the request deadline elapsed
	ErrCodeTimeout = "ERR_TIMEOUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeUpstream:        http.StatusBadGateway,
	ErrCodeTimeout:         http.StatusGatewayTimeout,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
