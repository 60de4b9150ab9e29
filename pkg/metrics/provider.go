package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/aum-search/aum-web/pkg/env/telemetry"
	"github.com/aum-search/aum-web/pkg/version"
)

const serviceName = "aum-web"

// NewMeterProvider builds a meter provider that always feeds the returned
// /metrics handler and, when an OTLP endpoint is configured, also pushes to
// it periodically.
func NewMeterProvider(ctx context.Context, cfg *telemetry.Env) (*sdkmetric.MeterProvider, http.Handler, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create Prometheus exporter: %w", err)
	}

	options := []sdkmetric.Option{
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", version.Version()),
		)),
		sdkmetric.WithReader(exporter),
	}

	if cfg.Enabled() {
		push, err := newOTLPExporter(ctx, cfg.Endpoint)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(push, sdkmetric.WithInterval(cfg.ExportInterval)),
		))
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return sdkmetric.NewMeterProvider(options...), handler, nil
}

func newOTLPExporter(ctx context.Context, endpoint string) (sdkmetric.Exporter, error) {
	if !strings.HasSuffix(endpoint, "/v1/metrics") {
		endpoint = strings.TrimSuffix(endpoint, "/") + "/v1/metrics"
	}

	options := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(endpoint),
	}
	if strings.HasPrefix(endpoint, "http://") {
		options = append(options, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create OTLP metric exporter: %w", err)
	}
	return exporter, nil
}
