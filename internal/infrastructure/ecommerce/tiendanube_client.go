package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// tiendanubeErrorBody is the error document returned by the Tiendanube API
type tiendanubeErrorBody struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// TiendanubeClient implements StoreCatalog for Tiendanube / Nuvem Shop
type TiendanubeClient struct {
	config     *TiendanubeConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTiendanubeClient creates a new Tiendanube client with the given configuration
func NewTiendanubeClient(config *TiendanubeConfig, logger *zap.Logger) (*TiendanubeClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TiendanubeClient{
		config:     config,
		httpClient: newHTTPClient(config.TimeoutSeconds, "tiendanube"),
		logger:     logger.Named("tiendanube"),
	}, nil
}

// PlatformCode returns the platform code
func (c *TiendanubeClient) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeTiendanube
}

// ListProducts returns every product of the store. Pages are requested until
// one comes back short, empty, or as a 404 past the first page, which is how
// Tiendanube signals the end of the listing.
func (c *TiendanubeClient) ListProducts(ctx context.Context, storeID int64) ([]integration.SourceProduct, error) {
	if c.config.AccessToken == "" {
		return nil, ErrTiendanubeNotConfigured
	}

	var all []integration.SourceProduct
	for page := 1; page <= c.config.MaxPages; page++ {
		products, last, err := c.fetchPage(ctx, storeID, page)
		if err != nil {
			return nil, err
		}
		all = append(all, products...)
		if last {
			c.logger.Debug("Product listing drained",
				zap.Int64("store_id", storeID),
				zap.Int("pages", page),
				zap.Int("products", len(all)),
			)
			if all == nil {
				all = []integration.SourceProduct{}
			}
			return all, nil
		}
	}

	return nil, fmt.Errorf("%w: listing exceeds %d pages of %d products",
		integration.ErrPlatformInvalidResponse, c.config.MaxPages, c.config.PageSize)
}

// fetchPage requests one page. last is true when no further page exists.
func (c *TiendanubeClient) fetchPage(ctx context.Context, storeID int64, page int) ([]integration.SourceProduct, bool, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(c.config.PageSize))
	endpoint := fmt.Sprintf("%s/%d/products?%s", c.config.APIBaseURL, storeID, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authentication", "bearer "+c.config.AccessToken)
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to read response: %v", integration.ErrPlatformInvalidResponse, err)
	}

	if resp.StatusCode == http.StatusNotFound && page > 1 {
		return nil, true, nil
	}
	if resp.StatusCode >= 400 {
		return nil, false, fmt.Errorf("%w: HTTP %d: %s",
			integration.ErrPlatformRequestFailed, resp.StatusCode, describeTiendanubeError(body, resp.StatusCode))
	}

	var products []integration.SourceProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, false, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}

	return products, len(products) < c.config.PageSize, nil
}

func describeTiendanubeError(body []byte, status int) string {
	var errBody tiendanubeErrorBody
	if json.Unmarshal(body, &errBody) == nil {
		switch {
		case errBody.Description != "":
			return errBody.Description
		case errBody.Message != "":
			return errBody.Message
		}
	}
	return http.StatusText(status)
}

// Ensure TiendanubeClient implements StoreCatalog
var _ integration.StoreCatalog = (*TiendanubeClient)(nil)
