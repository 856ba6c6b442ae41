// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededSource_Reproducible(t *testing.T) {
	a, b := NewSeededSource(2024), NewSeededSource(2024)

	bufA, bufB := make([]byte, 37), make([]byte, 37)
	a.FillBytes(bufA)
	b.FillBytes(bufB)
	assert.Equal(t, bufA, bufB)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.IntN(34), b.IntN(34))
	}
}

func TestSeededSource_IntNRange(t *testing.T) {
	s := NewSeededSource(1)
	seen := map[int]bool{}
	for i := 0; i < 5000; i++ {
		v := s.IntN(SeedSpreadBits)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, SeedSpreadBits)
		seen[v] = true
	}
	assert.Len(t, seen, SeedSpreadBits)
}

func TestReplaySource(t *testing.T) {
	s := NewReplaySource([]int{5, 40, -1}, []byte{1, 2, 3})

	assert.Equal(t, 5, s.IntN(34))
	assert.Equal(t, 6, s.IntN(34))
	assert.Equal(t, 33, s.IntN(34))
	assert.Equal(t, 5, s.IntN(34))

	buf := make([]byte, 5)
	s.FillBytes(buf)
	assert.Equal(t, []byte{1, 2, 3, 1, 2}, buf)
}

func TestReplaySource_EmptyScripts(t *testing.T) {
	s := NewReplaySource(nil, nil)
	assert.Equal(t, 0, s.IntN(10))

	buf := []byte{9, 9}
	s.FillBytes(buf)
	assert.Equal(t, []byte{0, 0}, buf)
}

func TestCryptoSource(t *testing.T) {
	var s CryptoSource
	for i := 0; i < 200; i++ {
		v := s.IntN(SeedSpreadBits)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, SeedSpreadBits)
	}

	buf := make([]byte, 32)
	s.FillBytes(buf)
	assert.NotEqual(t, make([]byte, 32), buf)
}

func TestSeededSource_ConcurrentUse(t *testing.T) {
	s := NewSeededSource(3)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 17)
			for j := 0; j < 100; j++ {
				s.FillBytes(buf)
				_ = s.IntN(34)
			}
		}()
	}
	wg.Wait()
}
