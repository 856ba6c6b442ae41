// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/simuuid/pkg/logging"
	"github.com/AleutianAI/simuuid/pkg/validation"
)

func quietConfig(x, y, z int) Config {
	return Config{X: x, Y: y, Z: z, Logger: logging.Nop()}
}

// =============================================================================
// Build Tests
// =============================================================================

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name      string
		x, y      int
		wantField string
		wantMsg   string
	}{
		{"x of one", 1, 7, "x", "x must be more than 1"},
		{"x of zero", 0, 7, "x", "x must be more than 1"},
		{"negative x", -5, 7, "x", "x must be more than 1"},
		{"y of zero", 2, 0, "y", "y cannot be 0"},
		{"x checked before y", 1, 0, "x", "x must be more than 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			gen, err := Build(quietConfig(tt.x, tt.y, 5))

			// Assert
			require.Error(t, err)
			assert.Nil(t, gen)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var cfgErr *InvalidConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.Contains(t, cfgErr.Detail(), tt.wantField+"=")
		})
	}
}

func TestBuild_Accepts(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		z     int
		wantZ int
	}{
		{"defaults", DefaultX, DefaultY, DefaultZ, 5},
		{"negative y", 3, -7, 6, 6},
		{"z clamped from zero", 2, 7, 0, MinimumRuleCount},
		{"z clamped from negative", 2, 7, -4, MinimumRuleCount},
		{"z of two clamped", 2, 7, 2, MinimumRuleCount},
		{"large z", 2, 7, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := Build(quietConfig(tt.x, tt.y, tt.z))
			require.NoError(t, err)

			assert.Equal(t, tt.x, gen.X())
			assert.Equal(t, tt.y, gen.Y())
			assert.Equal(t, tt.wantZ, gen.Z())
			assert.Len(t, gen.Schedule(), tt.wantZ)
			assert.Equal(t, RuleCounts{}, gen.Metrics())
		})
	}
}

func TestBuild_DefaultSource(t *testing.T) {
	gen, err := Build(DefaultConfig())
	require.NoError(t, err)
	assert.IsType(t, CryptoSource{}, gen.Source())
}

func TestSchedule_ReturnsCopy(t *testing.T) {
	gen, err := Build(quietConfig(2, 7, 5))
	require.NoError(t, err)

	s := gen.Schedule()
	s[0] = Rule{Kind: RulePalindrome}

	assert.Equal(t, RuleSeed, gen.Schedule()[0].Kind)
}

// =============================================================================
// Generate Tests
// =============================================================================

func TestGenerate_TenThousandDefault(t *testing.T) {
	// Arrange
	gen, err := Build(quietConfig(DefaultX, DefaultY, DefaultZ))
	require.NoError(t, err)

	// Act / Assert
	for i := 0; i < 10000; i++ {
		id := gen.Generate(context.Background())
		require.NoError(t, validation.ValidateIdentifier(id), "iteration %d", i)
	}

	counts := gen.Metrics()
	assert.Equal(t, int64(10000), counts.Get(RuleSeed))
	assert.Equal(t, int64(10000), counts.Get(RulePalindrome))
	assert.True(t, counts.Consistent(), "counts %v", counts)
	assert.GreaterOrEqual(t, counts[RuleDivide]+counts[RuleAdd], int64(10000))
}

func TestGenerate_KnownSeed(t *testing.T) {
	// Arrange: 13 bytes of 0x02 gives an even seed.
	seedBytes := []byte{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}
	gen, err := Build(Config{
		X: 2, Y: 7, Z: 3,
		Source: NewReplaySource([]int{0}, []byte{2}),
		Logger: logging.Nop(),
	})
	require.NoError(t, err)

	want := new(big.Int).SetBytes(seedBytes)
	want.Quo(want, big.NewInt(2)) // 0x0101..01, odd
	want.Add(want, big.NewInt(7))

	// Act
	got := gen.Generate(context.Background())

	// Assert
	assert.Equal(t, Normalize(want), got)
	assert.Equal(t, RuleCounts{1, 1, 1, 0}, gen.Metrics())
}

func TestGenerate_ZeroSeedStillInBand(t *testing.T) {
	gen, err := Build(Config{
		X: 2, Y: 7, Z: 3,
		Source: NewReplaySource(nil, nil),
		Logger: logging.Nop(),
	})
	require.NoError(t, err)

	id := gen.Generate(context.Background())

	assert.NoError(t, validation.ValidateIdentifier(id))
	// 0 is even: divided to 0, add skipped.
	assert.Equal(t, RuleCounts{1, 1, 0, 0}, gen.Metrics())
}

func TestGenerate_NegativeY(t *testing.T) {
	gen, err := Build(Config{X: 3, Y: -1000, Z: 9, Source: NewSeededSource(5), Logger: logging.Nop()})
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		require.NoError(t, validation.ValidateIdentifier(gen.Generate(context.Background())))
	}
}

func TestGenerate_DeterministicWithSeededSource(t *testing.T) {
	build := func(seed uint64) *Generator {
		gen, err := Build(Config{X: 3, Y: 11, Z: 7, Source: NewSeededSource(seed), Logger: logging.Nop()})
		require.NoError(t, err)
		return gen
	}

	a, b, other := build(42), build(42), build(43)

	var seqA, seqB, seqOther []string
	for i := 0; i < 25; i++ {
		seqA = append(seqA, a.Generate(context.Background()))
		seqB = append(seqB, b.Generate(context.Background()))
		seqOther = append(seqOther, other.Generate(context.Background()))
	}

	assert.Equal(t, seqA, seqB)
	assert.Equal(t, a.Metrics(), b.Metrics())
	assert.NotEqual(t, seqA, seqOther)
}

func TestGenerate_ConcurrentCallers(t *testing.T) {
	// Arrange
	gen, err := Build(quietConfig(2, 7, 5))
	require.NoError(t, err)

	const workers, perWorker = 8, 250
	var wg sync.WaitGroup
	ids := make(chan string, workers*perWorker)

	// Act
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids <- gen.Generate(context.Background())
			}
		}()
	}
	wg.Wait()
	close(ids)

	// Assert
	for id := range ids {
		require.NoError(t, validation.ValidateIdentifier(id))
	}
	counts := gen.Metrics()
	assert.Equal(t, int64(workers*perWorker), counts.Get(RuleSeed))
	assert.Equal(t, int64(workers*perWorker), counts.Get(RulePalindrome))
	assert.True(t, counts.Consistent())
}

func TestGenerate_CountersAreCumulative(t *testing.T) {
	gen, err := Build(quietConfig(2, 7, 3))
	require.NoError(t, err)

	gen.Generate(context.Background())
	first := gen.Metrics()
	gen.Generate(context.Background())
	second := gen.Metrics()

	assert.Equal(t, int64(1), first.Get(RuleSeed))
	assert.Equal(t, int64(2), second.Get(RuleSeed))
	assert.Zero(t, second.Get(RulePalindrome))
}

func TestGenerate_RecordsSpanWithPalindromeEvent(t *testing.T) {
	gen, err := Build(Config{X: 2, Y: 7, Z: 4, Source: NewSeededSource(1), Logger: logging.Nop()})
	require.NoError(t, err)

	id := gen.Generate(context.Background())

	var found bool
	for _, s := range spanRecorder.Ended() {
		if s.Name() != "Generator.Generate" {
			continue
		}
		attrs := map[string]int64{}
		for _, kv := range s.Attributes() {
			attrs[string(kv.Key)] = kv.Value.AsInt64()
		}
		if attrs["simuuid.rules"] != 4 || attrs["simuuid.digits"] != int64(len(id)) {
			continue
		}
		for _, ev := range s.Events() {
			if ev.Name == "palindrome" {
				found = true
			}
		}
	}
	assert.True(t, found, "no Generate span with a palindrome event")
}
