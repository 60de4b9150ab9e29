package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/aum-search/aum-web"

var latencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// Metrics holds the request and search instruments. On /metrics they show
// up as http_request_total, http_request_latency_seconds,
// http_request_in_progress, http_exception_total and aum_search_query_total.
type Metrics struct {
	Backend string

	requests   metric.Int64Counter
	latency    metric.Float64Histogram
	inProgress metric.Int64UpDownCounter
	exceptions metric.Int64Counter
	queries    metric.Int64Counter
}

func New(provider metric.MeterProvider, backend string) (*Metrics, error) {
	meter := provider.Meter(meterName)
	m := &Metrics{Backend: backend}

	var err error
	m.requests, err = meter.Int64Counter("http.request",
		metric.WithDescription("Requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create request counter: %w", err)
	}

	m.latency, err = meter.Float64Histogram("http.request.latency",
		metric.WithDescription("Request Latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create latency histogram: %w", err)
	}

	m.inProgress, err = meter.Int64UpDownCounter("http.request.in_progress",
		metric.WithDescription("Requests In-Flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create in-flight counter: %w", err)
	}

	m.exceptions, err = meter.Int64Counter("http.exception",
		metric.WithDescription("Exceptions Raised"),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create exception counter: %w", err)
	}

	m.queries, err = meter.Int64Counter("aum.search.query",
		metric.WithDescription("Search Queries"),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create search query counter: %w", err)
	}

	return m, nil
}

// RequestStarted counts the request and marks it in flight. The returned
// function records the latency and must be called once the request ends.
func (m *Metrics) RequestStarted(ctx context.Context, method, endpoint string) func() {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("endpoint", endpoint),
	)
	start := time.Now()

	m.requests.Add(ctx, 1, attrs)
	m.inProgress.Add(ctx, 1, attrs)

	return func() {
		m.latency.Record(ctx, time.Since(start).Seconds(), attrs)
		m.inProgress.Add(ctx, -1, attrs)
	}
}

func (m *Metrics) Exception(ctx context.Context, method, endpoint, kind string) {
	m.exceptions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("endpoint", endpoint),
		attribute.String("exception_type", kind),
	))
}

// SearchQuery counts one query relayed to the search backend.
func (m *Metrics) SearchQuery(ctx context.Context) {
	m.queries.Add(ctx, 1, metric.WithAttributes(attribute.String("backend", m.Backend)))
}
