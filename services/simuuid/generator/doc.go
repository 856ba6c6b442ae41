// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package generator produces SimUUID identifiers: 30 to 40 digit decimal
// strings derived from a random seed by a fixed, repeating rule schedule.
//
// # Pipeline
//
//	 ┌──────────┐   ┌───────────┐   ┌─────────┐   ┌────────────────┐
//	 │ Seed (R0)│──▶│ Divide(x) │──▶│ Add(y)  │──▶│ PalindromeScan │──┐
//	 └──────────┘   │   (R1)    │   │  (R2)   │   │      (R3)      │  │
//	                └───────────┘   └─────────┘   └────────────────┘  │
//	                      ▲                                           │
//	                      └──────────── repeats until z rules ────────┘
//	                                         │
//	                                         ▼
//	                                  ┌────────────┐
//	                                  │ Normalize  │──▶ "1234...890"
//	                                  └────────────┘
//
// Every rule that fires increments one of four cumulative counters. The
// counters are shared by all callers of a Generator and are updated
// atomically, so Generate may be called from many goroutines at once.
//
// # Usage
//
//	gen, err := generator.Build(generator.Config{X: 2, Y: 7, Z: 5})
//	if err != nil {
//	    return err // *InvalidConfigError, errors.Is(err, ErrInvalidConfig)
//	}
//	id := gen.Generate(ctx)
//	counts := gen.Metrics()
//
// # Randomness
//
// The seed rule draws from a Source. CryptoSource is the default.
// NewSeededSource and NewReplaySource make generation reproducible.
package generator
