// Package api exposes one cruise registry over HTTP, together with Prometheus
// metrics, pprof endpoints and the request logging and CORS middlewares.
package api

import (
	"context"
	"cruise/internal/config"
	"cruise/pkg/controller"
	"cruise/pkg/logger"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// meterName scopes the instruments recorded by this package.
const meterName = "cruise/internal/api"

// Options holds configuration for the HTTP server.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout bounds the handling of a single request.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions maps the HTTP settings of cfg to Options.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

// Server is the cruise HTTP server.
type Server struct {
	*http.Server

	handler       *handler
	meterProvider *sdkmetric.MeterProvider
}

// NewServer wires up a Server using the provided Options. It sets up:
//   - the v1 cruise routes backed by deps
//   - an OpenTelemetry meter exported to a dedicated Prometheus registry
//     served at MetricsPath
//   - pprof endpoints for profiling
//
// The mux is wrapped with CORS and logging middlewares and a request timeout.
func NewServer(ctx context.Context, deps Deps, opts Options) (*Server, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exp, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))

	h, err := newHandler(deps, mp.Meter(meterName))
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	if opts.MetricsPath != "" {
		mux.Handle(opts.MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	mux.Handle(controller.PprofPath, controller.PprofMux())
	h.register(mux)

	var root http.Handler = mux
	if opts.RequestTimeout > 0 {
		root = http.TimeoutHandler(root, opts.RequestTimeout, `{"code":"TIMEOUT","message":"request timed out"}`)
	}
	root = controller.WithCORS(root)
	root = controller.WithLogger(root)

	return &Server{
		Server: &http.Server{
			Addr:              opts.Addr,
			Handler:           root,
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
			MaxHeaderBytes:    opts.MaxHeaderBytes,
			ErrorLog:          logger.StdLogger(ctx),
		},
		handler:       h,
		meterProvider: mp,
	}, nil
}

// Load (re)loads the registry from its reader, recording the load metrics.
func (s *Server) Load(ctx context.Context) error {
	return s.handler.load(ctx)
}

// Shutdown stops the HTTP server and flushes the meter provider.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shut down http server: %w", err)
	}
	if err := s.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shut down meter provider: %w", err)
	}

	return nil
}
