package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_Disabled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "telemetry")

	shutdown, err := Setup(context.Background(), Options{Enabled: false, Dir: dir})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.NoDirExists(t, dir)
}

func TestSetup_ExportsSpans(t *testing.T) {
	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	})

	dir := t.TempDir()
	shutdown, err := Setup(context.Background(), Options{Enabled: true, Dir: dir, Version: "test"})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "studyaid.ask")
	span.End()

	counter, err := otel.Meter("test").Int64Counter("studyaid.requests")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	require.NoError(t, shutdown(context.Background()))

	traces, err := os.ReadFile(filepath.Join(dir, "studyos_traces.log"))
	require.NoError(t, err)
	assert.Contains(t, string(traces), "studyaid.ask")

	metrics, err := os.ReadFile(filepath.Join(dir, "studyos_metrics.log"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "studyaid.requests")
}
