// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the SimUUID service.
//
// # Description
//
// Metrics cover the HTTP surface of the service:
//   - Request counters (by endpoint and status)
//   - Error counters (by endpoint and error code)
//   - Identifiers issued
//   - Request latency histograms
//   - The shared generator's rule counters, read at scrape time
//
// Generation internals (rule firings per call, output length) are
// instrumented with OpenTelemetry in the generator package and reach the
// same /metrics endpoint through the OTel Prometheus exporter.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AleutianAI/simuuid/services/simuuid/generator"
)

// =============================================================================
// Metric Definitions
// =============================================================================

const metricsNamespace = "simuuid"

const httpSubsystem = "http"

// ServiceMetrics holds the Prometheus collectors for the service.
//
// # Fields
//
//   - RequestsTotal: Requests by endpoint and status (success, error)
//   - ErrorsTotal: Failures by endpoint and error code
//   - IdentifiersTotal: Identifiers returned to clients, by endpoint
//   - RequestDurationSeconds: Handler latency by endpoint
type ServiceMetrics struct {
	// Labels: endpoint, status
	RequestsTotal *prometheus.CounterVec

	// Labels: endpoint, error_code
	ErrorsTotal *prometheus.CounterVec

	// Labels: endpoint
	IdentifiersTotal *prometheus.CounterVec

	// Labels: endpoint
	RequestDurationSeconds *prometheus.HistogramVec

	registerer prometheus.Registerer
}

// NewServiceMetrics creates and registers the collectors on reg.
//
// # Description
//
// Each service instance owns a registry, so tests and embedded services
// never collide on prometheus.DefaultRegisterer.
//
// # Limitations
//
//   - Panics if the collectors are already registered on reg.
func NewServiceMetrics(reg prometheus.Registerer) *ServiceMetrics {
	factory := promauto.With(reg)
	return &ServiceMetrics{
		registerer: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: httpSubsystem,
				Name:      "requests_total",
				Help:      "Total number of requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),

		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: httpSubsystem,
				Name:      "errors_total",
				Help:      "Total number of failed requests by endpoint and error code",
			},
			[]string{"endpoint", "error_code"},
		),

		IdentifiersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: httpSubsystem,
				Name:      "identifiers_total",
				Help:      "Total number of identifiers returned by endpoint",
			},
			[]string{"endpoint"},
		),

		RequestDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: httpSubsystem,
				Name:      "request_duration_seconds",
				Help:      "Handler latency in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
			},
			[]string{"endpoint"},
		),
	}
}

// RegisterRuleCounters exposes a generator's cumulative rule counters as
// simuuid_generator_rules_total{rule=...}, read from snapshot at scrape
// time.
//
// # Outputs
//
//   - error: Non-nil if a collector with the same labels is already
//     registered on the metrics' registry.
func (m *ServiceMetrics) RegisterRuleCounters(snapshot func() generator.RuleCounts) error {
	for kind := generator.RuleSeed; kind <= generator.RulePalindrome; kind++ {
		collector := prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Namespace:   metricsNamespace,
				Subsystem:   "generator",
				Name:        "rules_total",
				Help:        "Cumulative rule applications of the shared generator",
				ConstLabels: prometheus.Labels{"rule": kind.String()},
			},
			func() float64 { return float64(snapshot().Get(kind)) },
		)
		if err := m.registerer.Register(collector); err != nil {
			return fmt.Errorf("register %s rule counter: %w", kind, err)
		}
	}
	return nil
}

// =============================================================================
// Error Codes
// =============================================================================

// ErrorCode categorizes failed requests.
type ErrorCode string

const (
	// ErrorCodeInvalidConfig indicates x or y were rejected by the generator.
	ErrorCodeInvalidConfig ErrorCode = "invalid_config"

	// ErrorCodeBadParameter indicates a parameter that is not an integer
	// or is out of range.
	ErrorCodeBadParameter ErrorCode = "bad_parameter"

	// ErrorCodeRateLimited indicates the client exceeded its request rate.
	ErrorCodeRateLimited ErrorCode = "rate_limited"
)

// =============================================================================
// Endpoint Names
// =============================================================================

// Endpoint labels a route for metrics.
type Endpoint string

const (
	// EndpointSimUUID is GET /simUuid.
	EndpointSimUUID Endpoint = "simuuid"

	// EndpointBatch is GET /v1/simuuid/batch.
	EndpointBatch Endpoint = "batch"

	// EndpointStats is GET /v1/simuuid/stats.
	EndpointStats Endpoint = "stats"

	// EndpointOther covers routes without a dedicated label, including
	// unmatched paths.
	EndpointOther Endpoint = "other"
)

// EndpointForRoute maps a gin route pattern to its metrics label.
func EndpointForRoute(route string) Endpoint {
	switch route {
	case "/simUuid", "/v1/simuuid":
		return EndpointSimUUID
	case "/v1/simuuid/batch":
		return EndpointBatch
	case "/v1/simuuid/stats":
		return EndpointStats
	default:
		return EndpointOther
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

// RecordRequest records a completed request and its latency.
func (m *ServiceMetrics) RecordRequest(endpoint Endpoint, success bool, seconds float64) {
	status := "success"
	if !success {
		status = "error"
	}
	m.RequestsTotal.WithLabelValues(string(endpoint), status).Inc()
	m.RequestDurationSeconds.WithLabelValues(string(endpoint)).Observe(seconds)
}

// RecordError records a failed request by code.
func (m *ServiceMetrics) RecordError(endpoint Endpoint, code ErrorCode) {
	m.ErrorsTotal.WithLabelValues(string(endpoint), string(code)).Inc()
}

// RecordIdentifiers adds n issued identifiers.
func (m *ServiceMetrics) RecordIdentifiers(endpoint Endpoint, n int) {
	m.IdentifiersTotal.WithLabelValues(string(endpoint)).Add(float64(n))
}
