// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package simuuid provides the SimUUID HTTP service.
//
// The service wires the generator into a gin router with request IDs,
// per-client rate limiting, access logging, OpenTelemetry tracing and a
// Prometheus /metrics endpoint.
//
// # Usage
//
//	svc, err := simuuid.New(simuuid.Config{Port: 12310})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := svc.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package simuuid

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/AleutianAI/simuuid/pkg/logging"
	"github.com/AleutianAI/simuuid/pkg/telemetry"
	"github.com/AleutianAI/simuuid/services/simuuid/generator"
	"github.com/AleutianAI/simuuid/services/simuuid/middleware"
	"github.com/AleutianAI/simuuid/services/simuuid/observability"
	"github.com/AleutianAI/simuuid/services/simuuid/routes"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Service defines the SimUUID service lifecycle.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. Run should be called at
// most once per instance.
type Service interface {
	// Run serves HTTP until ctx is cancelled or the listener fails.
	//
	// # Description
	//
	// On cancellation the server stops accepting connections, waits up to
	// Config.ShutdownTimeout for in-flight requests, then flushes
	// telemetry and the logger.
	//
	// # Outputs
	//
	//   - error: nil after a clean shutdown, otherwise the listen or
	//     shutdown error.
	Run(ctx context.Context) error

	// Router returns the configured gin engine, for tests.
	Router() *gin.Engine

	// Generator returns the shared generator behind the batch and stats
	// endpoints.
	Generator() *generator.Generator
}

// =============================================================================
// Configuration
// =============================================================================

// Config holds service configuration. Zero values are replaced by
// applyConfigDefaults.
type Config struct {
	// Port is the HTTP server port. Default: 12310
	Port int

	// Host is the listen address. Default: "" (all interfaces)
	Host string

	// GinMode is "debug", "release" or "test". Default: "release"
	GinMode string

	// RateLimitPerSecond is the sustained request rate per client.
	// Default: 50
	RateLimitPerSecond float64

	// RateLimitBurst is the per-client burst size. Default: 100
	RateLimitBurst int

	// MaxBatch bounds the batch endpoint's count parameter. Default: 100
	MaxBatch int

	// ShutdownTimeout bounds graceful shutdown. Default: 10s
	ShutdownTimeout time.Duration

	// Generator configures the shared generator. Nil means
	// generator.DefaultConfig(). A non-nil value is used as given, so an
	// explicit zero X or Y is rejected by generator.Build.
	Generator *generator.Config

	// Telemetry selects the OTel exporters. Both exporters default to
	// "none" here; telemetry.DefaultConfig reads the OTEL_* variables.
	Telemetry telemetry.Config

	// Registry receives every Prometheus collector of the service. Nil
	// means a fresh registry per service.
	Registry *prometheus.Registry

	// Logger is the service logger. Default: logging.Default()
	Logger *logging.Logger
}

// =============================================================================
// Implementation
// =============================================================================

type service struct {
	config      Config
	router      *gin.Engine
	logger      *logging.Logger
	shared      *generator.Generator
	metrics     *observability.ServiceMetrics
	limiter     *middleware.RateLimiter
	telShutdown func(context.Context) error
}

// New creates a Service from cfg.
//
// # Description
//
//  1. Applies configuration defaults
//  2. Initializes OpenTelemetry providers
//  3. Registers Prometheus collectors
//  4. Builds the shared generator
//  5. Sets up middleware and routes
//
// # Outputs
//
//   - Service: Ready to Run.
//   - error: Telemetry, metrics or generator configuration failure. A
//     generator failure wraps generator.ErrInvalidConfig.
func New(cfg Config) (Service, error) {
	cfg = applyConfigDefaults(cfg)
	gin.SetMode(cfg.GinMode)

	s := &service{
		config: cfg,
		logger: cfg.Logger,
	}

	cfg.Telemetry.Registerer = cfg.Registry
	shutdown, err := telemetry.Init(context.Background(), cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	s.telShutdown = shutdown

	s.metrics = observability.NewServiceMetrics(cfg.Registry)

	genCfg := *cfg.Generator
	genCfg.Logger = s.logger.With("component", "generator")
	s.shared, err = generator.Build(genCfg)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, fmt.Errorf("build shared generator: %w", err)
	}
	if err := s.metrics.RegisterRuleCounters(s.shared.Metrics); err != nil {
		_ = shutdown(context.Background())
		return nil, fmt.Errorf("register rule counters: %w", err)
	}

	s.limiter = middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst, s.logger)
	s.limiter.OnReject(func(route string) {
		s.metrics.RecordError(observability.EndpointForRoute(route), observability.ErrorCodeRateLimited)
	})

	s.initRouter()

	s.logger.Info("SimUUID service initialized",
		"port", cfg.Port,
		"x", s.shared.X(),
		"y", s.shared.Y(),
		"z", s.shared.Z(),
		"trace_exporter", cfg.Telemetry.TraceExporter,
		"metric_exporter", cfg.Telemetry.MetricExporter,
	)
	return s, nil
}

func (s *service) Run(ctx context.Context) error {
	defer s.cleanup()

	s.limiter.StartPruning(ctx, time.Minute, 10*time.Minute)

	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting SimUUID server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)

	case <-ctx.Done():
		s.logger.Info("Shutting down SimUUID server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *service) Router() *gin.Engine {
	return s.router
}

func (s *service) Generator() *generator.Generator {
	return s.shared
}

// =============================================================================
// Private Methods
// =============================================================================

// applyConfigDefaults fills zero-valued fields.
func applyConfigDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = 12310
	}
	if cfg.GinMode == "" {
		cfg.GinMode = gin.ReleaseMode
	}
	if cfg.RateLimitPerSecond == 0 {
		cfg.RateLimitPerSecond = 50
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 100
	}
	if cfg.MaxBatch == 0 {
		cfg.MaxBatch = 100
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Generator == nil {
		def := generator.DefaultConfig()
		cfg.Generator = &def
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "simuuid"
	}
	if cfg.Telemetry.TraceExporter == "" {
		cfg.Telemetry.TraceExporter = telemetry.ExporterNone
	}
	if cfg.Telemetry.MetricExporter == "" {
		cfg.Telemetry.MetricExporter = telemetry.ExporterNone
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return cfg
}

func (s *service) initRouter() {
	s.router = gin.New()
	s.router.Use(
		gin.Recovery(),
		otelgin.Middleware(s.config.Telemetry.ServiceName),
		middleware.RequestID(),
		middleware.AccessLog(s.logger.With("component", "http")),
		s.limiter.Handler(),
	)

	routes.SetupRoutes(s.router, routes.Dependencies{
		Shared:         s.shared,
		Metrics:        s.metrics,
		Logger:         s.logger,
		MaxBatch:       s.config.MaxBatch,
		MetricsHandler: s.metricsHandler(),
	})
}

// metricsHandler serves the service registry. The OTel Prometheus
// exporter, when selected, registers on the same registry, so both
// collector sets appear on one page.
func (s *service) metricsHandler() http.Handler {
	if s.config.Telemetry.MetricExporter == telemetry.ExporterPrometheus {
		if h := telemetry.MetricsHandler(); h != nil {
			return h
		}
	}
	return promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{})
}

func (s *service) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.telShutdown != nil {
		if err := s.telShutdown(ctx); err != nil {
			s.logger.Warn("telemetry shutdown error", "error", err)
		}
	}
	if err := s.logger.Close(); err != nil {
		fmt.Printf("logger close error: %v\n", err)
	}
}

var _ Service = (*service)(nil)
