// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/simuuid/pkg/telemetry"
)

// Package-level tracer and meter for generation.
var (
	tracer = otel.Tracer("simuuid.generator")
	meter  = otel.Meter("simuuid.generator")
)

// Metrics for generation.
var (
	generateLatency metric.Float64Histogram
	generateTotal   metric.Int64Counter
	ruleFiredTotal  metric.Int64Counter
	outputDigits    metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		generateLatency, err = meter.Float64Histogram(
			"simuuid_generate_duration_seconds",
			metric.WithDescription("Duration of identifier generation"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		generateTotal, err = meter.Int64Counter(
			"simuuid_generate_total",
			metric.WithDescription("Total identifiers generated"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		ruleFiredTotal, err = meter.Int64Counter(
			"simuuid_rule_fired_total",
			metric.WithDescription("Total rule applications that changed or inspected the value, by rule"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		outputDigits, err = meter.Int64Histogram(
			"simuuid_identifier_digits",
			metric.WithDescription("Number of digits per generated identifier"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startGenerateSpan creates the span covering one Generate call.
func startGenerateSpan(ctx context.Context, g *Generator) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Generator.Generate",
		trace.WithAttributes(
			attribute.Int("simuuid.x", g.x),
			attribute.Int("simuuid.y", g.y),
			attribute.Int("simuuid.rules", len(g.schedule)),
		),
	)
}

// setGenerateSpanResult records the output size on the span.
func setGenerateSpanResult(span trace.Span, digits int) {
	span.SetAttributes(attribute.Int("simuuid.digits", digits))
}

// addPalindromeEvent attaches the palindrome winner to the active span.
func addPalindromeEvent(ctx context.Context, p Palindrome) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	telemetry.AddSpanEvent(span, "palindrome",
		attribute.String("palindrome.digits", p.Digits),
		attribute.Int("palindrome.center", p.Pivot.Center),
		attribute.Int("palindrome.radius", p.Pivot.Radius),
		attribute.Bool("palindrome.even", p.Even),
	)
}

func recordRuleFired(ctx context.Context, kind RuleKind) {
	if err := initMetrics(); err != nil {
		return
	}
	ruleFiredTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("rule", kind.String())))
}

func recordGenerateMetrics(ctx context.Context, duration time.Duration, digits int) {
	if err := initMetrics(); err != nil {
		return
	}
	generateLatency.Record(ctx, duration.Seconds())
	generateTotal.Add(ctx, 1)
	outputDigits.Record(ctx, int64(digits))
}
