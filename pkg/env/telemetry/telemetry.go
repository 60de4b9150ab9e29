package telemetry

import (
	"net/url"
	"os"
	"time"

	"github.com/aum-search/aum-web/pkg/env"
)

const DefaultExportInterval = 60 * time.Second

// Env configures the optional OTLP metric push. Metrics are always served
// on /metrics; OTEL_EXPORTER_OTLP_ENDPOINT additionally pushes them.
type Env struct {
	Endpoint       string
	ExportInterval time.Duration
}

func NewTelemetryEnv() *Env {
	return &Env{}
}

func (t *Env) Populate() error {
	t.ExportInterval = DefaultExportInterval
	if s := os.Getenv("OTEL_METRIC_EXPORT_INTERVAL"); s != "" {
		d, err := env.ParseDuration(s)
		if err != nil || d == 0 {
			return &env.TypeError{Name: "OTEL_METRIC_EXPORT_INTERVAL"}
		}
		t.ExportInterval = d
	}

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &env.TypeError{Name: "OTEL_EXPORTER_OTLP_ENDPOINT"}
	}
	t.Endpoint = endpoint

	return nil
}

func (t *Env) Enabled() bool {
	return t.Endpoint != ""
}
