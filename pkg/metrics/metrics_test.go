package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	data := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			data[m.Name] = m.Data
		}
	}
	return data
}

func sum(data metricdata.Aggregation) int64 {
	var total int64
	if s, ok := data.(metricdata.Sum[int64]); ok {
		for _, dp := range s.DataPoints {
			total += dp.Value
		}
	}
	return total
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       func(context.Context, *Metrics)
		requests    int64
		inProgress  int64
		latency     uint64
		exceptions  int64
		queries     int64
	}{
		{
			"no requests",
			func(ctx context.Context, m *Metrics) {
				// No-op.
			},
			0,
			0,
			0,
			0,
			0,
		},
		{
			"finished request",
			func(ctx context.Context, m *Metrics) {
				done := m.RequestStarted(ctx, "POST", "/")
				m.SearchQuery(ctx)
				done()
			},
			1,
			0,
			1,
			0,
			1,
		},
		{
			"request in flight",
			func(ctx context.Context, m *Metrics) {
				_ = m.RequestStarted(ctx, "POST", "/")
			},
			1,
			1,
			0,
			0,
			0,
		},
		{
			"request with exception",
			func(ctx context.Context, m *Metrics) {
				done := m.RequestStarted(ctx, "GET", "/")
				m.Exception(ctx, "GET", "/", "string")
				done()
			},
			1,
			0,
			1,
			1,
			0,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			reader := sdkmetric.NewManualReader()
			provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
			defer func() { _ = provider.Shutdown(context.Background()) }()

			m, err := New(provider, "http://search:8000")
			require.NoError(t, err)

			tc.given(context.Background(), m)
			data := collect(t, reader)

			assert.Equal(t, tc.requests, sum(data["http.request"]))
			assert.Equal(t, tc.inProgress, sum(data["http.request.in_progress"]))
			assert.Equal(t, tc.exceptions, sum(data["http.exception"]))
			assert.Equal(t, tc.queries, sum(data["aum.search.query"]))

			var latency uint64
			if h, ok := data["http.request.latency"].(metricdata.Histogram[float64]); ok {
				for _, dp := range h.DataPoints {
					latency += dp.Count
				}
			}
			assert.Equal(t, tc.latency, latency)
		})
	}
}

func TestSearchQueryBackendAttribute(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	m, err := New(provider, "http://search:8000")
	require.NoError(t, err)

	m.SearchQuery(context.Background())

	s, ok := collect(t, reader)["aum.search.query"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, s.DataPoints, 1)

	backend, ok := s.DataPoints[0].Attributes.Value(attribute.Key("backend"))
	require.True(t, ok)
	assert.Equal(t, "http://search:8000", backend.AsString())
}
