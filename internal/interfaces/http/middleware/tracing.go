package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
	// TracerProvider overrides the global provider. Optional.
	TracerProvider trace.TracerProvider
	// SkipPaths are not traced (health checks, scrapes).
	SkipPaths []string
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "catalog-sync",
		Enabled:     true,
		SkipPaths:   []string{"/health", "/metrics"},
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig returns the otelgin middleware. It opens one server span
// per request; SpanAttributeInjector and SpanErrorMarker must come after it
// to see that span.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}

	opts := []otelgin.Option{}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	if len(cfg.SkipPaths) > 0 {
		skip := make(map[string]struct{}, len(cfg.SkipPaths))
		for _, p := range cfg.SkipPaths {
			skip[p] = struct{}{}
		}
		opts = append(opts, otelgin.WithFilter(func(r *http.Request) bool {
			_, skipped := skip[r.URL.Path]
			return !skipped
		}))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// SpanAttributeInjector adds request_id and, on store routes, store_id to
// the request span.
func SpanAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := getRequestIDFromContext(c); id != "" {
				span.SetAttributes(attribute.String("request_id", id))
			}
			if raw := c.Param("storeId"); raw != "" {
				if storeID, err := strconv.ParseInt(raw, 10, 64); err == nil {
					span.SetAttributes(attribute.Int64(telemetry.SpanAttrStoreID, storeID))
				}
			}
		}
		c.Next()
	}
}

// SpanErrorMarker marks the request span as failed for 5xx responses and
// records 4xx responses as an event. Place it after Tracing.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		status := c.Writer.Status()
		switch {
		case status >= http.StatusInternalServerError:
			span.SetStatus(codes.Error, http.StatusText(status))
		case status >= http.StatusBadRequest:
			span.AddEvent("client_error", trace.WithAttributes(attribute.Int("http.status_code", status)))
		}
		if len(c.Errors) > 0 {
			span.SetAttributes(attribute.String("gin.errors", c.Errors.String()))
		}
	}
}
