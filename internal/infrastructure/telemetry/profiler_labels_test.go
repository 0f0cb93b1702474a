package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabels(t *testing.T) {
	long := strings.Repeat("x", MaxLabelValueLength+10)

	pairs := sanitizeLabels(map[string]string{
		ProfilingLabelPlatform:  "TIKTOK_SHOP",
		ProfilingLabelOperation: "sync_all",
		"run_id":                "0b9c",
		"empty":                 "",
		"long":                  long,
	})

	assert.Equal(t, []string{
		"long", long[:MaxLabelValueLength],
		"operation", "sync_all",
		"platform", "TIKTOK_SHOP",
	}, pairs)
}

func TestWithProfilingLabels(t *testing.T) {
	t.Run("labels visible inside fn", func(t *testing.T) {
		var got string
		var ok bool
		WithProfilingLabels(context.Background(), map[string]string{
			ProfilingLabelOperation: "sync_all",
		}, func(ctx context.Context) {
			got, ok = pprof.Label(ctx, ProfilingLabelOperation)
		})
		assert.True(t, ok)
		assert.Equal(t, "sync_all", got)
	})

	t.Run("no labels still runs fn", func(t *testing.T) {
		called := false
		WithProfilingLabels(context.Background(), map[string]string{"run_id": "x"}, func(ctx context.Context) {
			called = true
			_, ok := pprof.Label(ctx, "run_id")
			assert.False(t, ok)
		})
		assert.True(t, called)
	})
}
