package integration

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// MockStoreCatalog is a mock implementation of StoreCatalog
type MockStoreCatalog struct {
	mock.Mock
}

func (m *MockStoreCatalog) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeTiendanube
}

func (m *MockStoreCatalog) ListProducts(ctx context.Context, storeID int64) ([]integration.SourceProduct, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.SourceProduct), args.Error(1)
}

// MockMarketplacePublisher is a mock implementation of MarketplacePublisher
type MockMarketplacePublisher struct {
	mock.Mock
}

func (m *MockMarketplacePublisher) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeTikTokShop
}

func (m *MockMarketplacePublisher) PublishProduct(ctx context.Context, product integration.MarketplaceProduct) integration.DispatchOutcome {
	args := m.Called(ctx, product)
	return args.Get(0).(integration.DispatchOutcome)
}

// MockSyncRunGuard is a mock implementation of SyncRunGuard
type MockSyncRunGuard struct {
	mock.Mock
}

func (m *MockSyncRunGuard) Acquire(ctx context.Context, storeID int64, runID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, storeID, runID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockSyncRunGuard) Release(ctx context.Context, storeID int64, runID string) error {
	args := m.Called(ctx, storeID, runID)
	return args.Error(0)
}

// staticCredentials is a fixed MarketplaceCredentials
type staticCredentials integration.CredentialStatus

func (c staticCredentials) CredentialStatus() integration.CredentialStatus {
	return integration.CredentialStatus(c)
}

// visibleProduct builds a published, free-shipping product
func visibleProduct(id, name, price string) integration.SourceProduct {
	return integration.SourceProduct{
		ID:           integration.ProductID(id),
		Name:         integration.Localized(map[integration.LanguageCode]string{integration.LanguagePortuguese: name}),
		Price:        integration.PriceOf(price),
		Published:    integration.BoolFlag(true),
		FreeShipping: integration.BoolFlag(true),
	}
}

// hiddenProduct builds a product excluded from the sync set
func hiddenProduct(id, name string) integration.SourceProduct {
	p := visibleProduct(id, name, "1.00")
	p.FreeShipping = integration.BoolFlag(false)
	return p
}
