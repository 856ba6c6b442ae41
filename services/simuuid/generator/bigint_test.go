// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTwosComplement(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		want  int64
	}{
		{"empty", nil, 0},
		{"positive byte", []byte{0x7f}, 127},
		{"min byte", []byte{0x80}, -128},
		{"minus one", []byte{0xff, 0xff}, -1},
		{"leading zero keeps sign positive", []byte{0x00, 0x80}, 128},
		{"multi byte negative", []byte{0xfe, 0x00}, -512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeTwosComplement(tt.bytes).Int64())
		})
	}
}

func TestIsEven(t *testing.T) {
	assert.True(t, isEven(big.NewInt(0)))
	assert.True(t, isEven(big.NewInt(10)))
	assert.False(t, isEven(big.NewInt(7)))
	assert.True(t, isEven(big.NewInt(-4)))
	assert.False(t, isEven(big.NewInt(-3)))
}

func TestQuo_TruncatesTowardZero(t *testing.T) {
	assert.Equal(t, int64(3), quo(big.NewInt(7), big.NewInt(2)).Int64())
	assert.Equal(t, int64(-3), quo(big.NewInt(-7), big.NewInt(2)).Int64())
}

func TestMagnitudeDigits(t *testing.T) {
	assert.Equal(t, "123", magnitudeDigits(big.NewInt(-123)))
	assert.Equal(t, "0", magnitudeDigits(big.NewInt(0)))
	assert.Equal(t, "1000000000000000000000000000000", magnitudeDigits(pow10(30)))
}
