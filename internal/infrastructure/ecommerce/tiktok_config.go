package ecommerce

import (
	"errors"
	"net/url"
	"strings"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// TikTokShopConfig holds configuration for TikTok Shop API integration.
// Credentials may be empty: a missing access token is reported per dispatch,
// not at construction.
type TikTokShopConfig struct {
	// AccessToken is the seller access token sent as bearer credential
	AccessToken string
	// ClientKey is the application key from the partner center
	ClientKey string
	// ClientSecret is the application secret from the partner center
	ClientSecret string
	// PartnerID identifies the integration partner
	PartnerID string
	// APIBaseURL is the base URL for the TikTok Shop API
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// TikTokShopProductionAPIURL is the production API endpoint
	TikTokShopProductionAPIURL = "https://business-api.tiktokglobalshop.com"

	defaultTikTokTimeoutSeconds = 30
)

// ErrTikTokConfigInvalidBaseURL is returned when the API base URL is not absolute
var ErrTikTokConfigInvalidBaseURL = errors.New("tiktok: API base URL must be an absolute http(s) URL")

// NewTikTokShopConfig creates a new TikTok Shop configuration with defaults
func NewTikTokShopConfig(accessToken, clientKey, clientSecret, partnerID string) *TikTokShopConfig {
	return &TikTokShopConfig{
		AccessToken:    accessToken,
		ClientKey:      clientKey,
		ClientSecret:   clientSecret,
		PartnerID:      partnerID,
		APIBaseURL:     TikTokShopProductionAPIURL,
		TimeoutSeconds: defaultTikTokTimeoutSeconds,
	}
}

// Validate fills defaults and checks the base URL
func (c *TikTokShopConfig) Validate() error {
	if c.APIBaseURL == "" {
		c.APIBaseURL = TikTokShopProductionAPIURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrTikTokConfigInvalidBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTikTokTimeoutSeconds
	}
	return nil
}

// HasAccessToken returns true when a bearer credential is configured
func (c *TikTokShopConfig) HasAccessToken() bool {
	return c.AccessToken != ""
}

// CredentialStatus implements integration.MarketplaceCredentials
func (c *TikTokShopConfig) CredentialStatus() integration.CredentialStatus {
	return integration.CredentialStatus{
		HasAccessToken:  c.AccessToken != "",
		HasClientKey:    c.ClientKey != "",
		HasClientSecret: c.ClientSecret != "",
		HasPartnerID:    c.PartnerID != "",
	}
}

var _ integration.MarketplaceCredentials = (*TikTokShopConfig)(nil)
