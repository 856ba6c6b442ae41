// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/simuuid/pkg/logging"
	"github.com/AleutianAI/simuuid/services/simuuid/generator"
)

const defaultHeader = `# simuuid configuration
#
# server.port and logging.level can be overridden with SIMUUID_PORT and
# SIMUUID_LOG_LEVEL. The telemetry block honors OTEL_TRACES_EXPORTER,
# OTEL_METRICS_EXPORTER and OTEL_EXPORTER_OTLP_ENDPOINT.
#
# trace_exporter: none | stdout | otlp
# metric_exporter: none | stdout | prometheus
`

// Load reads the configuration at path and applies environment overrides.
//
// An empty path yields DefaultConfig. A path that does not exist is created
// with the defaults first. Fields missing from the file keep their default
// values.
func Load(path string) (SimUUIDConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			fmt.Printf(" First run detected, creating the config at %s\n", path)
			if err := WriteDefault(path); err != nil {
				return cfg, err
			}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read the config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WriteDefault writes DefaultConfig to path with a comment header,
// creating parent directories.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(defaultHeader), data...), 0644)
}

func applyEnv(cfg *SimUUIDConfig) error {
	if v, ok := os.LookupEnv("SIMUUID_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SIMUUID_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v, ok := os.LookupEnv("SIMUUID_LOG_LEVEL"); ok && v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv("OTEL_TRACES_EXPORTER"); ok && v != "" {
		cfg.Telemetry.TraceExporter = v
	}
	if v, ok := os.LookupEnv("OTEL_METRICS_EXPORTER"); ok && v != "" {
		cfg.Telemetry.MetricExporter = v
	}
	if v, ok := os.LookupEnv("OTEL_EXPORTER_OTLP_ENDPOINT"); ok && v != "" {
		cfg.Telemetry.OTLPEndpoint = v
	}
	return nil
}

func validate(cfg SimUUIDConfig) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	if cfg.Server.MaxBatch < 0 {
		return fmt.Errorf("server.max_batch must not be negative")
	}
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := generator.Build(generator.Config{
		X:      cfg.Generator.X,
		Y:      cfg.Generator.Y,
		Z:      cfg.Generator.Z,
		Logger: logging.Nop(),
	}); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	return nil
}
