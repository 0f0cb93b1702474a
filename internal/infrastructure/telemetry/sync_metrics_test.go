package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
)

func sumByAttr(t *testing.T, m metricdata.Metrics, key attribute.Key) map[string]int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	out := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value(key)
		out[v.AsString()] += dp.Value
	}
	return out
}

func TestNewSyncMetrics_NilMeter(t *testing.T) {
	_, err := telemetry.NewSyncMetrics(nil)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestSyncMetrics_NilReceiver(t *testing.T) {
	var m *telemetry.SyncMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordRun(ctx, "SUCCESS", time.Second)
		m.RecordDispatch(ctx, "SUCCESS", time.Millisecond)
		m.RecordPriceUnknown(ctx)
		m.RecordFetch(ctx, 3, 1)
	})
}

func TestSyncMetrics_Record(t *testing.T) {
	reader, provider := newManualMeter(t)
	m, err := telemetry.NewSyncMetrics(provider.Meter("sync"))
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordFetch(ctx, 5, 3)
	m.RecordDispatch(ctx, "SUCCESS", 100*time.Millisecond)
	m.RecordDispatch(ctx, "SUCCESS", 200*time.Millisecond)
	m.RecordDispatch(ctx, "FAILURE", 50*time.Millisecond)
	m.RecordPriceUnknown(ctx)
	m.RecordRun(ctx, "PARTIAL", 2*time.Second)

	metrics := collect(t, reader)

	assert.Equal(t, map[string]int64{"SUCCESS": 2, "FAILURE": 1},
		sumByAttr(t, metrics["catalog_sync_items_total"], telemetry.AttrSyncOutcome))
	assert.Equal(t, map[string]int64{"PARTIAL": 1},
		sumByAttr(t, metrics["catalog_sync_runs_total"], telemetry.AttrSyncStatus))
	assert.Equal(t, map[string]int64{"": 1},
		sumByAttr(t, metrics["catalog_price_unknown_total"], telemetry.AttrSyncStatus))

	gauge, ok := metrics["catalog_fetch_products"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	stages := map[string]int64{}
	for _, dp := range gauge.DataPoints {
		v, _ := dp.Attributes.Value(telemetry.AttrFetchStage)
		stages[v.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"fetched": 5, "visible": 3}, stages)

	dispatch, ok := metrics["catalog_dispatch_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range dispatch.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)

	run, ok := metrics["catalog_sync_run_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, run.DataPoints, 1)
	assert.InDelta(t, 2.0, run.DataPoints[0].Sum, 1e-9)
}
