// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import (
	"context"
	"math/big"
	"time"

	"github.com/AleutianAI/simuuid/pkg/logging"
)

// Defaults applied by the HTTP and CLI surfaces when a parameter is absent.
const (
	DefaultX = 2
	DefaultY = 7
	DefaultZ = 5

	// MinimumRuleCount is the smallest effective schedule length. Smaller
	// requested counts are raised to it.
	MinimumRuleCount = 3
)

// Config configures a Generator.
type Config struct {
	// X is the divisor of the divide rule. Must be greater than 1.
	X int

	// Y is the addend of the add rule. Must not be 0; may be negative.
	Y int

	// Z is the requested number of rules, seed included. Values below
	// MinimumRuleCount are raised to it.
	Z int

	// Source supplies seed randomness. Nil means CryptoSource.
	Source Source

	// Logger receives palindrome reports at Debug level. Nil means
	// logging.Default().
	Logger *logging.Logger
}

// DefaultConfig returns X=2, Y=7, Z=5 with the crypto source.
func DefaultConfig() Config {
	return Config{X: DefaultX, Y: DefaultY, Z: DefaultZ}
}

// Generator produces identifiers from a fixed rule schedule.
//
// A Generator is immutable after Build except for its counters, which are
// updated atomically. It is safe for concurrent use.
type Generator struct {
	x, y     int
	source   Source
	schedule []Rule
	counters *Counters
	engine   engine
}

// Build validates cfg and returns a ready Generator.
//
// # Description
//
// Checks X before Y, clamps Z up to MinimumRuleCount and precomputes the
// rule schedule. Nothing is drawn from the source until Generate.
//
// # Inputs
//
//   - cfg: Generator configuration.
//
// # Outputs
//
//   - *Generator: The generator, with all counters at zero.
//   - error: *InvalidConfigError wrapping ErrInvalidConfig when X <= 1
//     ("x must be more than 1") or Y == 0 ("y cannot be 0").
//
// # Examples
//
//	gen, err := generator.Build(generator.Config{X: 2, Y: 7, Z: 5})
//
//	_, err = generator.Build(generator.Config{X: 1, Y: 7, Z: 5})
//	// err.Error() == "x must be more than 1"
func Build(cfg Config) (*Generator, error) {
	if cfg.X <= 1 {
		return nil, &InvalidConfigError{Field: "x", Value: cfg.X, Message: "x must be more than 1"}
	}
	if cfg.Y == 0 {
		return nil, &InvalidConfigError{Field: "y", Value: cfg.Y, Message: "y cannot be 0"}
	}

	n := cfg.Z
	if n < MinimumRuleCount {
		n = MinimumRuleCount
	}

	source := cfg.Source
	if source == nil {
		source = CryptoSource{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Generator{
		x:        cfg.X,
		y:        cfg.Y,
		source:   source,
		schedule: buildSchedule(n, cfg.X, cfg.Y),
		counters: &Counters{},
		engine:   engine{source: source, logger: logger},
	}, nil
}

// Generate runs the schedule once and returns a 30 to 40 digit identifier.
//
// # Description
//
// The seed rule starts a fresh working value; every later rule transforms
// or inspects it; the result is normalized into the output band. ctx only
// carries trace context: generation is CPU-bound and is not cancelled.
//
// # Outputs
//
//   - string: Decimal digits, no sign, no leading zero.
//
// # Thread Safety
//
// Safe for concurrent use. Each call owns its working value; only the
// shared counters are touched, atomically.
func (g *Generator) Generate(ctx context.Context) string {
	start := time.Now()
	ctx, span := startGenerateSpan(ctx, g)
	defer span.End()

	var value *big.Int
	for _, rule := range g.schedule {
		value = g.engine.apply(ctx, rule, value, g.counters)
	}
	out := Normalize(value)

	setGenerateSpanResult(span, len(out))
	recordGenerateMetrics(ctx, time.Since(start), len(out))
	return out
}

// Metrics returns a snapshot of the cumulative rule counters.
func (g *Generator) Metrics() RuleCounts {
	return g.counters.Snapshot()
}

// X returns the divisor.
func (g *Generator) X() int { return g.x }

// Y returns the addend.
func (g *Generator) Y() int { return g.y }

// Z returns the effective rule count, at least MinimumRuleCount.
func (g *Generator) Z() int { return len(g.schedule) }

// Source returns the randomness source.
func (g *Generator) Source() Source { return g.source }

// Schedule returns a copy of the rule schedule.
func (g *Generator) Schedule() []Rule {
	return append([]Rule(nil), g.schedule...)
}
