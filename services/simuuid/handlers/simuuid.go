// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers provides HTTP request handlers for the SimUUID service.
package handlers

import (
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/simuuid/pkg/logging"
	"github.com/AleutianAI/simuuid/pkg/telemetry"
	"github.com/AleutianAI/simuuid/pkg/validation"
	"github.com/AleutianAI/simuuid/services/simuuid/generator"
	"github.com/AleutianAI/simuuid/services/simuuid/middleware"
	"github.com/AleutianAI/simuuid/services/simuuid/observability"
)

// tracerName names the spans opened by these handlers.
const tracerName = "simuuid.handlers"

// =============================================================================
// Response Types
// =============================================================================

// BatchResponse is the body of GET /v1/simuuid/batch.
type BatchResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

// StatsResponse is the body of GET /v1/simuuid/stats.
type StatsResponse struct {
	X          int   `json:"x"`
	Y          int   `json:"y"`
	Z          int   `json:"z"`
	Seed       int64 `json:"seed"`
	Divide     int64 `json:"divide"`
	Add        int64 `json:"add"`
	Palindrome int64 `json:"palindrome"`
	Consistent bool  `json:"consistent"`
}

// =============================================================================
// Handlers
// =============================================================================

// HandleSimUUID serves GET /simUuid?x=&y=&z=.
//
// # Description
//
// Builds a fresh generator from the query parameters, defaulting absent
// ones to x=2, y=7, z=5, and returns one identifier as text/plain. The
// generator is discarded after the request, so its counters are not
// observable here; use the stats endpoint for the shared generator.
//
// # Responses
//
//   - 200: The identifier.
//   - 400: The generator's message ("x must be more than 1",
//     "y cannot be 0") or a parameter parse error, as plain text.
func HandleSimUUID(metrics *observability.ServiceMetrics, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := logger.With("request_id", middleware.GetRequestID(c))
		ctx, span := telemetry.StartSpan(c.Request.Context(), tracerName, "HandleSimUUID")
		defer span.End()

		cfg, err := parseGeneratorConfig(c)
		if err != nil {
			telemetry.RecordError(span, err, attribute.String("error_code", string(observability.ErrorCodeBadParameter)))
			reqLogger.Warn("rejected parameters", "error", err)
			metrics.RecordError(observability.EndpointSimUUID, observability.ErrorCodeBadParameter)
			metrics.RecordRequest(observability.EndpointSimUUID, false, time.Since(start).Seconds())
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		cfg.Logger = reqLogger

		gen, err := generator.Build(cfg)
		if err != nil {
			telemetry.RecordError(span, err, attribute.String("error_code", string(observability.ErrorCodeInvalidConfig)))
			var cfgErr *generator.InvalidConfigError
			if errors.As(err, &cfgErr) {
				reqLogger.Warn("invalid generator config", "detail", cfgErr.Detail())
			}
			metrics.RecordError(observability.EndpointSimUUID, observability.ErrorCodeInvalidConfig)
			metrics.RecordRequest(observability.EndpointSimUUID, false, time.Since(start).Seconds())
			c.String(http.StatusBadRequest, err.Error())
			return
		}

		id := gen.Generate(ctx)
		telemetry.SetSpanOK(span)

		metrics.RecordIdentifiers(observability.EndpointSimUUID, 1)
		metrics.RecordRequest(observability.EndpointSimUUID, true, time.Since(start).Seconds())
		c.String(http.StatusOK, id)
	}
}

// HandleBatch serves GET /v1/simuuid/batch?count=N from the shared
// generator.
//
// Identifiers are generated concurrently, bounded by GOMAXPROCS. count
// defaults to 1 and must not exceed maxBatch.
func HandleBatch(shared *generator.Generator, maxBatch int, metrics *observability.ServiceMetrics, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx, span := telemetry.StartSpan(c.Request.Context(), tracerName, "HandleBatch")
		defer span.End()

		count, err := validation.ParseCount(c.Query("count"), maxBatch)
		if err != nil {
			telemetry.RecordError(span, err, attribute.String("error_code", string(observability.ErrorCodeBadParameter)))
			logger.Warn("rejected batch count",
				"request_id", middleware.GetRequestID(c),
				"error", err,
			)
			metrics.RecordError(observability.EndpointBatch, observability.ErrorCodeBadParameter)
			metrics.RecordRequest(observability.EndpointBatch, false, time.Since(start).Seconds())
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid count",
				"details": err.Error(),
			})
			return
		}

		ids := make([]string, count)
		span.SetAttributes(attribute.Int("simuuid.batch.count", count))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range ids {
			g.Go(func() error {
				ids[i] = shared.Generate(gctx)
				return nil
			})
		}
		_ = g.Wait()
		telemetry.SetSpanOK(span)

		metrics.RecordIdentifiers(observability.EndpointBatch, count)
		metrics.RecordRequest(observability.EndpointBatch, true, time.Since(start).Seconds())
		c.JSON(http.StatusOK, BatchResponse{IDs: ids, Count: count})
	}
}

// HandleStats serves GET /v1/simuuid/stats: the shared generator's
// configuration and cumulative rule counters.
func HandleStats(shared *generator.Generator, metrics *observability.ServiceMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		counts := shared.Metrics()
		metrics.RecordRequest(observability.EndpointStats, true, time.Since(start).Seconds())
		c.JSON(http.StatusOK, StatsResponse{
			X:          shared.X(),
			Y:          shared.Y(),
			Z:          shared.Z(),
			Seed:       counts.Get(generator.RuleSeed),
			Divide:     counts.Get(generator.RuleDivide),
			Add:        counts.Get(generator.RuleAdd),
			Palindrome: counts.Get(generator.RulePalindrome),
			Consistent: counts.Consistent(),
		})
	}
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// =============================================================================
// Helpers
// =============================================================================

// parseGeneratorConfig reads x, y and z from the query string, applying
// defaults for absent parameters. Range checks on x and y are left to
// generator.Build so its messages reach the client verbatim.
func parseGeneratorConfig(c *gin.Context) (generator.Config, error) {
	cfg := generator.DefaultConfig()

	params := []struct {
		name string
		dst  *int
	}{
		{"x", &cfg.X},
		{"y", &cfg.Y},
		{"z", &cfg.Z},
	}
	for _, p := range params {
		v, ok, err := validation.ParseOptionalInt(p.name, c.Query(p.name))
		if err != nil {
			return generator.Config{}, err
		}
		if ok {
			*p.dst = v
		}
	}
	return cfg, nil
}
