package integration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
)

// DefaultRunLockTTL bounds how long a crashed run can keep its store locked
const DefaultRunLockTTL = 15 * time.Minute

// SyncService runs the catalog pipeline: fetch the visible products of a
// store, transform each into a marketplace listing, dispatch it and fold the
// outcomes into a SyncBatchResult.
//
// Products are processed one at a time in store order. A failed product is
// recorded and the run moves on.
type SyncService struct {
	fetcher     *CatalogFetcher
	publisher   integration.MarketplacePublisher
	credentials integration.MarketplaceCredentials
	guard       integration.SyncRunGuard
	lockTTL     time.Duration
	metrics     *telemetry.SyncMetrics
	logger      *zap.Logger
	now         func() time.Time
	newRunID    func() string
}

// SyncServiceOption configures a SyncService
type SyncServiceOption func(*SyncService)

// WithRunGuard serializes runs per store. Without a guard concurrent runs
// for the same store are allowed.
func WithRunGuard(guard integration.SyncRunGuard, ttl time.Duration) SyncServiceOption {
	return func(s *SyncService) {
		s.guard = guard
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithSyncMetrics records pipeline metrics
func WithSyncMetrics(metrics *telemetry.SyncMetrics) SyncServiceOption {
	return func(s *SyncService) {
		s.metrics = metrics
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) SyncServiceOption {
	return func(s *SyncService) {
		s.now = now
	}
}

// WithRunIDGenerator replaces the random run ID source
func WithRunIDGenerator(gen func() string) SyncServiceOption {
	return func(s *SyncService) {
		s.newRunID = gen
	}
}

// NewSyncService creates a new SyncService
func NewSyncService(
	fetcher *CatalogFetcher,
	publisher integration.MarketplacePublisher,
	credentials integration.MarketplaceCredentials,
	logger *zap.Logger,
	opts ...SyncServiceOption,
) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SyncService{
		fetcher:     fetcher,
		publisher:   publisher,
		credentials: credentials,
		lockTTL:     DefaultRunLockTTL,
		logger:      logger,
		now:         time.Now,
		newRunID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListVisibleProducts returns the sync set of a store without dispatching it
func (s *SyncService) ListVisibleProducts(ctx context.Context, storeID int64) ([]integration.SourceProduct, error) {
	return s.fetcher.FetchVisibleProducts(ctx, storeID)
}

// CredentialStatus reports which marketplace credentials are configured
func (s *SyncService) CredentialStatus() integration.CredentialStatus {
	if s.credentials == nil {
		return integration.CredentialStatus{}
	}
	return s.credentials.CredentialStatus()
}

// Dispatch submits one listing to the marketplace. It always returns exactly
// one outcome.
func (s *SyncService) Dispatch(ctx context.Context, product integration.MarketplaceProduct) integration.DispatchOutcome {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog_sync", "dispatch",
		telemetry.WithAttribute(telemetry.SpanAttrProductTitle, product.Title),
		telemetry.WithAttribute(telemetry.SpanAttrPlatform, s.publisher.PlatformCode()),
	)
	defer span.End()

	start := s.now()
	outcome := s.publisher.PublishProduct(ctx, product)
	s.metrics.RecordDispatch(ctx, outcome.Kind.String(), s.now().Sub(start))

	telemetry.SetAttribute(span, telemetry.SpanAttrOutcome, outcome.Kind.String())
	if outcome.IsSuccess() {
		telemetry.SetOK(span)
	} else {
		telemetry.RecordError(span, errors.New(outcome.ErrorMessage))
	}
	return outcome
}

// SyncAll runs the whole pipeline for storeID.
//
// A fetch failure aborts the run with a *integration.SyncError wrapping the
// *integration.FetchError. So does a run already in progress for the store.
// Cancelling ctx stops the run between products and returns the partial
// result with Cancelled set and a nil error.
func (s *SyncService) SyncAll(ctx context.Context, storeID int64) (integration.SyncBatchResult, error) {
	runID := s.newRunID()
	ctx = logger.WithRunID(logger.WithStoreID(ctx, storeID), runID)

	ctx, span := telemetry.StartServiceSpan(ctx, "catalog_sync", "sync_all",
		telemetry.WithAttribute(telemetry.SpanAttrStoreID, storeID),
		telemetry.WithAttribute(telemetry.SpanAttrRunID, runID),
	)
	defer span.End()

	// entries carry request_id, store_id, run_id and trace_id from ctx
	log := logger.WithLogger(ctx, s.logger)

	if storeID <= 0 {
		err := &integration.SyncError{
			StoreID: storeID,
			Err:     &integration.FetchError{StoreID: storeID, Err: integration.ErrInvalidStoreID},
		}
		telemetry.RecordError(span, err)
		return integration.SyncBatchResult{}, err
	}

	release, err := s.acquireRun(ctx, storeID, runID, log)
	if err != nil {
		telemetry.RecordError(span, err)
		return integration.SyncBatchResult{}, err
	}
	defer release()

	startedAt := s.now()
	products, err := s.fetcher.FetchVisibleProducts(ctx, storeID)
	if err != nil {
		syncErr := &integration.SyncError{StoreID: storeID, Err: err}
		telemetry.RecordError(span, syncErr)
		s.metrics.RecordRun(ctx, integration.SyncStatusFailed.String(), s.now().Sub(startedAt))
		return integration.SyncBatchResult{}, syncErr
	}

	result := integration.NewSyncBatchResult(runID, storeID, len(products), startedAt)
	telemetry.WithProfilingLabels(ctx, map[string]string{
		telemetry.ProfilingLabelOperation: "sync_all",
		telemetry.ProfilingLabelPlatform:  s.publisher.PlatformCode().String(),
	}, func(ctx context.Context) {
		result = s.fold(ctx, products, result, log)
	})

	telemetry.SetAttributes(span,
		"total", result.Total,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"status", result.Status().String(),
	)
	s.metrics.RecordRun(ctx, result.Status().String(), result.Duration())

	if result.Cancelled {
		telemetry.AddEvent(span, "run_cancelled", "processed", result.Total, "fetched", result.Fetched)
		log.Warn("Sync run cancelled",
			zap.Int("processed", result.Total),
			zap.Int("fetched", result.Fetched),
			zap.NamedError("cause", integration.ErrSyncCancelled),
		)
	} else {
		telemetry.SetOK(span)
	}

	log.Info("Sync run finished",
		zap.String("status", result.Status().String()),
		zap.Int("total", result.Total),
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", result.FailedCount),
		zap.Duration("duration", result.Duration()),
	)

	return result, nil
}

// fold dispatches products sequentially. ctx is checked before each product
// and once more after the last.
func (s *SyncService) fold(
	ctx context.Context,
	products []integration.SourceProduct,
	result integration.SyncBatchResult,
	log *logger.ContextLogger,
) integration.SyncBatchResult {
	for _, p := range products {
		if ctx.Err() != nil {
			return result.Cancel(s.now())
		}

		listing := integration.TransformProduct(p)
		if !listing.PriceKnown {
			s.metrics.RecordPriceUnknown(ctx)
			log.Warn("Product price missing or unparseable, sending 0",
				zap.String("product_id", p.ID.String()),
				zap.String("title", listing.Title),
			)
		}

		outcome := s.Dispatch(ctx, listing)
		if !outcome.IsSuccess() {
			log.Debug("Product dispatch failed",
				zap.String("product_id", p.ID.String()),
				zap.String("error", outcome.ErrorMessage),
			)
		}

		result = result.Append(integration.SyncItemResult{
			ProductID:    p.ID,
			ProductTitle: listing.Title,
			Outcome:      outcome.Kind,
			ErrorMessage: outcome.ErrorMessage,
		})
	}

	if ctx.Err() != nil {
		return result.Cancel(s.now())
	}
	return result.Finish(s.now())
}

// acquireRun takes the per-store guard. A guard backend failure is logged
// and the run proceeds unguarded.
func (s *SyncService) acquireRun(ctx context.Context, storeID int64, runID string, log *logger.ContextLogger) (func(), error) {
	noop := func() {}
	if s.guard == nil {
		return noop, nil
	}

	ok, err := s.guard.Acquire(ctx, storeID, runID, s.lockTTL)
	if err != nil {
		log.Warn("Sync run guard unavailable, continuing without lock", zap.Error(err))
		return noop, nil
	}
	if !ok {
		log.Info("Sync run rejected, another run holds the store")
		return nil, &integration.SyncError{StoreID: storeID, Err: integration.ErrSyncInProgress}
	}

	return func() {
		// the run context may already be cancelled
		if err := s.guard.Release(context.WithoutCancel(ctx), storeID, runID); err != nil {
			log.Warn("Failed to release sync run guard", zap.Error(err))
		}
	}, nil
}
