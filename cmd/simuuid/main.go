// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command simuuid generates rule-based numeric identifiers and serves them
// over HTTP.
//
// # Usage
//
//	# Print five identifiers with the default rules
//	simuuid generate --count 5
//
//	# Deterministic output with rule counters
//	simuuid generate --x 3 --y 11 --z 8 --seed 42 --metrics
//
//	# Serve GET /simUuid on port 12310
//	simuuid serve --config ~/.simuuid/simuuid.yaml
//
// # Environment Variables
//
//   - SIMUUID_PORT: HTTP server port (default: 12310)
//   - SIMUUID_LOG_LEVEL: debug, info, warn or error (default: info)
//   - OTEL_TRACES_EXPORTER: none, stdout or otlp (default: none)
//   - OTEL_METRICS_EXPORTER: none, stdout or prometheus (default: prometheus)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP gRPC collector (default: localhost:4317)
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
