package aum

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/aum-search/aum-web/pkg/audit"
	"github.com/aum-search/aum-web/pkg/env"
	"github.com/aum-search/aum-web/pkg/env/backend"
	"github.com/aum-search/aum-web/pkg/metrics"
	"github.com/aum-search/aum-web/pkg/search"
	"github.com/aum-search/aum-web/pkg/web"
)

const (
	defaultPort           = 8080
	defaultRequestTimeout = 2 * time.Minute
)

// Config is built once at start-up and shared read-only by all handlers.
type Config struct {
	BackendEnv  *backend.Env
	Client      *search.Client
	Templates   *web.TemplateManager
	LoggerAudit *audit.LoggerAudit
	SplunkAudit *audit.SplunkAudit
	Metrics     *metrics.Metrics
	Logger      *zap.SugaredLogger
}

func Production() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

func RequestTimeout() time.Duration {
	if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
		if d, err := env.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return defaultRequestTimeout
}

func Port() int {
	if s := os.Getenv("PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil && port > 0 && port < 65536 {
			return port
		}
	}
	return defaultPort
}
