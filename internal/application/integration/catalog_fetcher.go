package integration

import (
	"context"

	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
)

// CatalogFetcher retrieves the sync set of a store: its products that are
// both published and marked free shipping.
type CatalogFetcher struct {
	catalog integration.StoreCatalog
	metrics *telemetry.SyncMetrics
	logger  *zap.Logger
}

// NewCatalogFetcher creates a new CatalogFetcher. metrics may be nil.
func NewCatalogFetcher(catalog integration.StoreCatalog, metrics *telemetry.SyncMetrics, logger *zap.Logger) *CatalogFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogFetcher{
		catalog: catalog,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchVisibleProducts returns the visible products of storeID in store
// order. Any failure is returned as a *integration.FetchError with no
// products.
func (f *CatalogFetcher) FetchVisibleProducts(ctx context.Context, storeID int64) ([]integration.SourceProduct, error) {
	if storeID <= 0 {
		return nil, &integration.FetchError{StoreID: storeID, Err: integration.ErrInvalidStoreID}
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "catalog_sync", "fetch",
		telemetry.WithAttribute(telemetry.SpanAttrStoreID, storeID),
		telemetry.WithAttribute(telemetry.SpanAttrPlatform, f.catalog.PlatformCode()),
	)
	defer span.End()

	ctx = logger.WithStoreID(ctx, storeID)
	log := logger.WithLogger(ctx, f.logger)

	products, err := f.catalog.ListProducts(ctx, storeID)
	if err != nil {
		fetchErr := &integration.FetchError{StoreID: storeID, Err: err}
		telemetry.RecordError(span, fetchErr)
		log.Error("Failed to fetch store catalog",
			zap.String("platform", f.catalog.PlatformCode().String()),
			zap.Error(err),
		)
		return nil, fetchErr
	}

	visible := integration.FilterVisible(products)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrFetched, len(products),
		telemetry.SpanAttrVisible, len(visible),
	)
	f.metrics.RecordFetch(ctx, len(products), len(visible))
	log.Info("Store catalog fetched",
		zap.Int("fetched", len(products)),
		zap.Int("visible", len(visible)),
	)

	return visible, nil
}
