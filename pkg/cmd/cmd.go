package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	aum "github.com/aum-search/aum-web/pkg"
	"github.com/aum-search/aum-web/pkg/audit"
	"github.com/aum-search/aum-web/pkg/env/backend"
	"github.com/aum-search/aum-web/pkg/env/splunk"
	"github.com/aum-search/aum-web/pkg/env/telemetry"
	"github.com/aum-search/aum-web/pkg/handlers"
	"github.com/aum-search/aum-web/pkg/metrics"
	"github.com/aum-search/aum-web/pkg/middleware"
	"github.com/aum-search/aum-web/pkg/search"
	"github.com/aum-search/aum-web/pkg/version"
	"github.com/aum-search/aum-web/pkg/web"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
	writeTimeout      = 2 * time.Minute
)

func Run(logger *zap.SugaredLogger) error {
	production := aum.Production()
	logger.Infof("Starting AUM web version: %s", version.Version())

	be := backend.NewBackendEnv()
	err := be.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure search backend: %w", err)
	}
	logger.Infof("Production: %t, search backend: %s (query encoding: %s)", production, be.URL, be.Encoding)
	if be.Timeout > 0 {
		logger.Debugf("Search backend timeout: %s", be.Timeout)
	}

	tm, err := web.NewTemplateManager()
	if err != nil {
		return fmt.Errorf("unable to load templates: %w", err)
	}

	la := audit.NewLoggerAudit(logger, be.URL)

	se := splunk.NewSplunkEnv()
	err = se.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure Splunk: %w", err)
	}

	var sa *audit.SplunkAudit
	if se.Enabled() {
		logger.Infof("Sending audit to Splunk endpoint: %s", se.Endpoint)
		sa = audit.NewSplunkAudit(se)
	}

	te := telemetry.NewTelemetryEnv()
	err = te.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure telemetry: %w", err)
	}
	if te.Enabled() {
		logger.Infof("Sending metrics to OTLP endpoint: %s (interval: %s)", te.Endpoint, te.ExportInterval)
	}

	provider, metricsHandler, err := metrics.NewMeterProvider(context.Background(), te)
	if err != nil {
		return fmt.Errorf("unable to configure metrics: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()
	otel.SetMeterProvider(provider)

	m, err := metrics.New(provider, be.URL)
	if err != nil {
		return fmt.Errorf("unable to configure metrics: %w", err)
	}

	cfg := &aum.Config{
		BackendEnv:  be,
		Client:      search.NewClient(be),
		Templates:   tm,
		LoggerAudit: la,
		SplunkAudit: sa,
		Metrics:     m,
		Logger:      logger,
	}

	// Temp workaround for easy to access io.Writer.
	defaultLogOutput := log.Default().Writer()

	healthLogOutput := io.Discard
	if !production {
		healthLogOutput = defaultLogOutput
	}

	requestTimeout := aum.RequestTimeout()
	logger.Debugf("Request timeout: %s", requestTimeout)

	r := newRouter(cfg, &routerOptions{
		RequestTimeout: requestTimeout,
		MetricsHandler: metricsHandler,
		LogOutput:      defaultLogOutput,
		QuietLogOutput: healthLogOutput,
	})

	port := aum.Port()
	logger.Infof("HTTP server starting on port: %d", port)

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           r,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("unable to start HTTP server: %w", err)
	}

	return nil
}

type routerOptions struct {
	RequestTimeout time.Duration
	MetricsHandler http.Handler
	LogOutput      io.Writer
	// Health checks and metric scrapes are logged here.
	QuietLogOutput io.Writer
}

func newRouter(cfg *aum.Config, options *routerOptions) *mux.Router {
	logHandler := gorillaHandlers.LoggingHandler

	// RequestID goes first so that every later middleware, Recovery
	// included, sees the request ID.
	searchChain := alice.New(
		alice.Constructor(middleware.RequestID()),
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.Metrics(cfg)),
		alice.Constructor(middleware.Timeout(options.RequestTimeout)),
		alice.Constructor(middleware.Audit(cfg)),
	).Then(handlers.Search(cfg))

	indexChain := alice.New(
		alice.Constructor(middleware.RequestID()),
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.Metrics(cfg)),
	).Then(handlers.Index(cfg))

	r := mux.NewRouter()
	r.Handle("/healthcheck", logHandler(options.QuietLogOutput, handlers.Healthcheck(cfg))).Methods("GET")
	r.Handle("/metrics", logHandler(options.QuietLogOutput, options.MetricsHandler)).Methods("GET")
	r.Handle("/", logHandler(options.LogOutput, indexChain)).Methods("GET")
	r.Handle("/", logHandler(options.LogOutput, searchChain)).Methods("POST")

	return r
}
