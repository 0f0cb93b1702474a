package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Fetch stages reported on catalog_fetch_products
const (
	FetchStageFetched = "fetched"
	FetchStageVisible = "visible"
)

// SyncMetrics holds the instruments of the catalog sync pipeline.
// A nil *SyncMetrics records nothing.
type SyncMetrics struct {
	runsTotal        *Counter
	itemsTotal       *Counter
	priceUnknown     *Counter
	runDuration      *Histogram
	dispatchDuration *Histogram
	fetchProducts    *Gauge
}

// NewSyncMetrics registers the sync instruments on the given meter.
func NewSyncMetrics(meter metric.Meter) (*SyncMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &SyncMetrics{}
	var err error

	if m.runsTotal, err = NewCounter(meter,
		"catalog_sync_runs_total",
		"Catalog sync runs by final status",
		"{runs}",
	); err != nil {
		return nil, err
	}

	if m.itemsTotal, err = NewCounter(meter,
		"catalog_sync_items_total",
		"Products dispatched to the marketplace by outcome",
		"{products}",
	); err != nil {
		return nil, err
	}

	if m.priceUnknown, err = NewCounter(meter,
		"catalog_price_unknown_total",
		"Products sent with price 0 because the store price was missing or unparseable",
		"{products}",
	); err != nil {
		return nil, err
	}

	if m.runDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "catalog_sync_run_duration_seconds",
		Description: "Wall time of a catalog sync run",
		Unit:        "s",
		Boundaries:  RunDurationBuckets,
	}); err != nil {
		return nil, err
	}

	if m.dispatchDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "catalog_dispatch_duration_seconds",
		Description: "Latency of one marketplace product submission",
		Unit:        "s",
		Boundaries:  DispatchDurationBuckets,
	}); err != nil {
		return nil, err
	}

	if m.fetchProducts, err = NewGauge(meter,
		"catalog_fetch_products",
		"Products in the last store listing, before and after the visibility filter",
		"{products}",
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordRun records one finished or cancelled run.
func (m *SyncMetrics) RecordRun(ctx context.Context, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.runsTotal.Inc(ctx, AttrSyncStatus.String(status))
	m.runDuration.RecordDuration(ctx, d, AttrSyncStatus.String(status))
}

// RecordDispatch records one marketplace submission.
func (m *SyncMetrics) RecordDispatch(ctx context.Context, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.itemsTotal.Inc(ctx, AttrSyncOutcome.String(outcome))
	m.dispatchDuration.RecordDuration(ctx, d, AttrSyncOutcome.String(outcome))
}

// RecordPriceUnknown counts a product whose price defaulted to zero.
func (m *SyncMetrics) RecordPriceUnknown(ctx context.Context) {
	if m == nil {
		return
	}
	m.priceUnknown.Inc(ctx)
}

// RecordFetch records the listing size before and after filtering.
func (m *SyncMetrics) RecordFetch(ctx context.Context, fetched, visible int) {
	if m == nil {
		return
	}
	m.fetchProducts.Record(ctx, int64(fetched), AttrFetchStage.String(FetchStageFetched))
	m.fetchProducts.Record(ctx, int64(visible), AttrFetchStage.String(FetchStageVisible))
}
