package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// tiktokProductAddPath is the product creation endpoint
const tiktokProductAddPath = "/product/add"

// tiktokErrorBody is the part of a TikTok Shop error response we read
type tiktokErrorBody struct {
	Message any `json:"message"`
}

// TikTokShopAdapter implements MarketplacePublisher for TikTok Shop
type TikTokShopAdapter struct {
	config     *TikTokShopConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTikTokShopAdapter creates a new TikTok Shop adapter with the given configuration
func NewTikTokShopAdapter(config *TikTokShopConfig, logger *zap.Logger) (*TikTokShopAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TikTokShopAdapter{
		config:     config,
		httpClient: newHTTPClient(config.TimeoutSeconds, "tiktok_shop"),
		logger:     logger.Named("tiktok_shop"),
	}, nil
}

// PlatformCode returns the platform code
func (a *TikTokShopAdapter) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeTikTokShop
}

// PublishProduct submits one listing to the product creation endpoint.
// A missing access token fails without any network call.
func (a *TikTokShopAdapter) PublishProduct(ctx context.Context, product integration.MarketplaceProduct) integration.DispatchOutcome {
	if !a.config.HasAccessToken() {
		return integration.FailureOutcome(integration.ErrAccessTokenNotConfigured.Error())
	}

	payload, status, err := a.doRequest(ctx, http.MethodPost, tiktokProductAddPath, product)
	if err != nil {
		a.logger.Debug("Product submission failed",
			zap.String("title", product.Title),
			zap.Error(err),
		)
		return integration.FailureOutcome(err.Error())
	}

	if status < 200 || status >= 300 {
		msg := extractErrorMessage(payload, status)
		a.logger.Debug("Product rejected by marketplace",
			zap.String("title", product.Title),
			zap.Int("status", status),
			zap.String("message", msg),
		)
		return integration.FailureOutcome(msg)
	}

	return integration.SuccessOutcome(opaquePayload(payload))
}

// doRequest sends a JSON request and returns the raw body and status code.
// An error is returned only when no HTTP response was obtained.
func (a *TikTokShopAdapter) doRequest(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.APIBaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+a.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

// extractErrorMessage prefers the message field of a JSON error body
func extractErrorMessage(body []byte, status int) string {
	var errBody tiktokErrorBody
	if json.Unmarshal(body, &errBody) == nil {
		if msg, ok := errBody.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("Request failed with status code %d", status)
}

// opaquePayload returns the body as JSON. Non-JSON bodies become a JSON
// string and an empty body becomes null.
func opaquePayload(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}

// Ensure TikTokShopAdapter implements MarketplacePublisher
var _ integration.MarketplacePublisher = (*TikTokShopAdapter)(nil)
