package ecommerce

import (
	"errors"
	"net/url"
	"strings"
)

// TiendanubeConfig holds configuration for the Tiendanube (Nuvem Shop) REST API
type TiendanubeConfig struct {
	// APIBaseURL is the versioned API root, e.g. https://api.tiendanube.com/v1
	APIBaseURL string
	// AccessToken is the app access token for the store
	AccessToken string
	// UserAgent identifies the app; Tiendanube rejects requests without one
	UserAgent string
	// PageSize is the per_page value used while draining the listing
	PageSize int
	// MaxPages bounds how many pages a single listing may span
	MaxPages int
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// TiendanubeAPIURL is the production API endpoint
	TiendanubeAPIURL = "https://api.tiendanube.com/v1"

	defaultTiendanubePageSize  = 200
	maxTiendanubePageSize      = 200
	defaultTiendanubeMaxPages  = 100
	defaultTiendanubeTimeout   = 30
	defaultTiendanubeUserAgent = "catalog-sync (https://github.com/catalogsync/backend)"
)

// ErrTiendanubeNotConfigured is returned by listing calls made without an access token
var ErrTiendanubeNotConfigured = errors.New("tiendanube: access token not configured")

// ErrTiendanubeConfigInvalidBaseURL is returned when the API base URL is not absolute
var ErrTiendanubeConfigInvalidBaseURL = errors.New("tiendanube: API base URL must be an absolute http(s) URL")

// NewTiendanubeConfig creates a new Tiendanube configuration with defaults
func NewTiendanubeConfig(accessToken string) *TiendanubeConfig {
	return &TiendanubeConfig{
		APIBaseURL:     TiendanubeAPIURL,
		AccessToken:    accessToken,
		UserAgent:      defaultTiendanubeUserAgent,
		PageSize:       defaultTiendanubePageSize,
		MaxPages:       defaultTiendanubeMaxPages,
		TimeoutSeconds: defaultTiendanubeTimeout,
	}
}

// Validate fills defaults. The access token is checked per call so the
// service can start without store credentials.
func (c *TiendanubeConfig) Validate() error {
	if c.APIBaseURL == "" {
		c.APIBaseURL = TiendanubeAPIURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrTiendanubeConfigInvalidBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultTiendanubeUserAgent
	}
	if c.PageSize <= 0 || c.PageSize > maxTiendanubePageSize {
		c.PageSize = defaultTiendanubePageSize
	}
	if c.MaxPages <= 0 {
		c.MaxPages = defaultTiendanubeMaxPages
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTiendanubeTimeout
	}
	return nil
}
