// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads the simuuid CLI configuration file.
package config

import (
	"time"

	"github.com/AleutianAI/simuuid/pkg/logging"
	"github.com/AleutianAI/simuuid/pkg/telemetry"
	"github.com/AleutianAI/simuuid/services/simuuid"
	"github.com/AleutianAI/simuuid/services/simuuid/generator"
)

// SimUUIDConfig is the root of simuuid.yaml.
type SimUUIDConfig struct {
	Server    ServerConfig     `yaml:"server"`
	Generator GeneratorConfig  `yaml:"generator"`
	Telemetry telemetry.Config `yaml:"telemetry"`
	Logging   LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`                  // e.g. 12310
	GinMode            string        `yaml:"gin_mode"`              // debug, release, test
	RateLimitPerSecond float64       `yaml:"rate_limit_per_second"` // per client IP
	RateLimitBurst     int           `yaml:"rate_limit_burst"`
	MaxBatch           int           `yaml:"max_batch"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"` // e.g. 10s
}

// GeneratorConfig holds the parameters of the shared generator behind the
// batch and stats endpoints. Keys missing from the file keep the defaults;
// keys present are used as written, zero included.
type GeneratorConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() SimUUIDConfig {
	return SimUUIDConfig{
		Server: ServerConfig{
			Port:               12310,
			GinMode:            "release",
			RateLimitPerSecond: 50,
			RateLimitBurst:     100,
			MaxBatch:           100,
			ShutdownTimeout:    10 * time.Second,
		},
		Generator: GeneratorConfig{
			X: generator.DefaultX,
			Y: generator.DefaultY,
			Z: generator.DefaultZ,
		},
		Telemetry: telemetry.Config{
			ServiceName:    "simuuid",
			ServiceVersion: "1.0.0",
			Environment:    "development",
			TraceExporter:  telemetry.ExporterNone,
			MetricExporter: telemetry.ExporterPrometheus,
			OTLPEndpoint:   "localhost:4317",
			OTLPInsecure:   true,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// NewLogger builds the process logger described by the logging block.
func (c SimUUIDConfig) NewLogger() (*logging.Logger, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{
		Level:   level,
		Service: c.Telemetry.ServiceName,
		JSON:    c.Logging.JSON,
	}), nil
}

// ServiceConfig converts the file configuration into a simuuid.Config.
func (c SimUUIDConfig) ServiceConfig(logger *logging.Logger) simuuid.Config {
	return simuuid.Config{
		Port:               c.Server.Port,
		Host:               c.Server.Host,
		GinMode:            c.Server.GinMode,
		RateLimitPerSecond: c.Server.RateLimitPerSecond,
		RateLimitBurst:     c.Server.RateLimitBurst,
		MaxBatch:           c.Server.MaxBatch,
		ShutdownTimeout:    c.Server.ShutdownTimeout,
		Generator: &generator.Config{
			X: c.Generator.X,
			Y: c.Generator.Y,
			Z: c.Generator.Z,
		},
		Telemetry: c.Telemetry,
		Logger:    logger,
	}
}
