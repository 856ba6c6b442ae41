// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	fiftyNines, ok := new(big.Int).SetString(strings.Repeat("9", 50), 10)
	require.True(t, ok)

	tests := []struct {
		name string
		in   *big.Int
		want string
	}{
		{"zero lifts to minimum", big.NewInt(0), "1" + strings.Repeat("0", 29)},
		{"one lifts to minimum", big.NewInt(1), "1" + strings.Repeat("0", 29)},
		{"small value scales up", big.NewInt(123), "123" + strings.Repeat("0", 27)},
		{"negative uses magnitude", big.NewInt(-123), "123" + strings.Repeat("0", 27)},
		{"large value scales down", pow10(45), "1" + strings.Repeat("0", 39)},
		{"truncates digits", fiftyNines, strings.Repeat("9", 40)},
		{"minimum unchanged", MinMagnitude(), "1" + strings.Repeat("0", 29)},
		{"maximum unchanged", MaxMagnitude(), strings.Repeat("9", 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, len(got), MinDigits)
			assert.LessOrEqual(t, len(got), MaxDigits)
		})
	}
}

func TestNormalizeValue_DoesNotMutateInput(t *testing.T) {
	in := big.NewInt(-5)
	_ = NormalizeValue(in)
	assert.Equal(t, int64(-5), in.Int64())
}

func TestNormalize_Idempotent(t *testing.T) {
	src := NewSeededSource(7)
	buf := make([]byte, 24)
	for i := 0; i < 500; i++ {
		src.FillBytes(buf[:1+src.IntN(len(buf))])
		v := new(big.Int).SetBytes(buf)

		once := NormalizeValue(v)
		twice := NormalizeValue(once)

		require.Zero(t, once.Cmp(twice), "normalize not idempotent for %s", v)
	}
}

func TestMagnitudeBand(t *testing.T) {
	assert.Len(t, MinMagnitude().String(), MinDigits)
	assert.Len(t, MaxMagnitude().String(), MaxDigits)

	// Accessors return copies.
	MinMagnitude().SetInt64(0)
	assert.Len(t, MinMagnitude().String(), MinDigits)
}
