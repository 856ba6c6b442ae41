// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package telemetry bootstraps OpenTelemetry tracing and metrics for SimUUID.
//
// OTel is used directly: packages call otel.Tracer and otel.Meter, and this
// package only decides where the data goes. Backends are swapped through
// configuration, not code.
//
// # Traces
//
// "otlp" exports over gRPC (Jaeger, Tempo, any OTLP collector), "stdout"
// pretty-prints spans for local debugging, "none" leaves the global no-op
// provider in place.
//
// # Metrics
//
// "prometheus" bridges OTel instruments into a Prometheus registry served by
// MetricsHandler, "stdout" prints periodic snapshots, "none" disables them.
//
// # Usage
//
//	shutdown, err := telemetry.Init(ctx, telemetry.DefaultConfig())
//	if err != nil {
//	    return fmt.Errorf("init telemetry: %w", err)
//	}
//	defer shutdown(context.Background())
//
// # Environment Variables
//
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint (default: localhost:4317)
//   - OTEL_TRACES_EXPORTER: otlp, stdout, or none (default: none)
//   - OTEL_METRICS_EXPORTER: prometheus, stdout, or none (default: prometheus)
//   - SIMUUID_ENV: environment name (default: development)
package telemetry
