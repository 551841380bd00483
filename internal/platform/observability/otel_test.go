package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestInit_WritesJSONLogsAndCollectsMetrics(t *testing.T) {
	var buf bytes.Buffer
	instruments, shutdown, err := Init(context.Background(), Config{
		ServiceName:   "cafe-kiosk-test",
		LogOutput:     &buf,
		TraceExporter: ExporterNone,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	instruments.Logger.Info("hello", slog.String("order.id", "1"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "hello", entry["msg"])
	require.Equal(t, "cafe-kiosk-test", entry["service"])

	counter, err := instruments.Meter("test").Int64Counter("orders.created")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)

	var rm metricdata.ResourceMetrics
	require.NoError(t, instruments.MetricReader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Equal(t, "orders.created", rm.ScopeMetrics[0].Metrics[0].Name)

	_, span := instruments.Tracer("test").Start(context.Background(), "span")
	require.True(t, span.SpanContext().IsValid())
	span.End()
}

func TestInit_RejectsUnknownExporter(t *testing.T) {
	_, _, err := Init(context.Background(), Config{ServiceName: "svc", TraceExporter: "zipkin", LogOutput: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestInit_RequiresServiceName(t *testing.T) {
	_, _, err := Init(context.Background(), Config{})
	require.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("")
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, level)

	level, err = ParseLogLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)

	_, err = ParseLogLevel("verbose")
	require.Error(t, err)
}
