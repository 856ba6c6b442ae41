// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// Source is the randomness consumed by the seed rule.
//
// Implementations must be safe for concurrent use; a Generator shares its
// Source across all Generate calls.
type Source interface {
	// IntN returns a uniform integer in [0, n). n is always positive.
	IntN(n int) int

	// FillBytes overwrites p with random bytes.
	FillBytes(p []byte)
}

// =============================================================================
// Crypto Source
// =============================================================================

// CryptoSource draws from crypto/rand. It is the default Source.
type CryptoSource struct{}

// IntN returns a uniform integer in [0, n) from crypto/rand.
func (CryptoSource) IntN(n int) int {
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand: %v", err))
	}
	return int(v.Int64())
}

// FillBytes fills p from crypto/rand.
func (CryptoSource) FillBytes(p []byte) {
	if _, err := crand.Read(p); err != nil {
		panic(fmt.Sprintf("crypto/rand: %v", err))
	}
}

// =============================================================================
// Seeded Source
// =============================================================================

// SeededSource is a deterministic ChaCha8 stream. Two sources built from
// the same seed produce the same sequence of IntN and FillBytes results,
// provided the calls are made in the same order.
type SeededSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeededSource returns a SeededSource keyed by seed.
func NewSeededSource(seed uint64) *SeededSource {
	var key [32]byte
	for i := 0; i < len(key); i += 8 {
		binary.LittleEndian.PutUint64(key[i:], seed+uint64(i))
	}
	return &SeededSource{rng: mrand.New(mrand.NewChaCha8(key))}
}

// IntN returns the next integer in [0, n).
func (s *SeededSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// FillBytes fills p with the next len(p) bytes of the stream.
func (s *SeededSource) FillBytes(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var word [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(word[:], s.rng.Uint64())
		copy(p[i:], word[:])
	}
}

// =============================================================================
// Replay Source
// =============================================================================

// ReplaySource replays fixed scripts of integers and bytes, wrapping
// around when a script is exhausted. It pins exact seed values in tests.
type ReplaySource struct {
	mu      sync.Mutex
	ints    []int
	bytes   []byte
	intPos  int
	bytePos int
}

// NewReplaySource returns a source that yields ints (reduced modulo n) from
// IntN and consecutive bytes from FillBytes. Empty scripts yield zeros.
func NewReplaySource(ints []int, bytes []byte) *ReplaySource {
	return &ReplaySource{
		ints:  append([]int(nil), ints...),
		bytes: append([]byte(nil), bytes...),
	}
}

// IntN returns the next scripted integer modulo n.
func (s *ReplaySource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.intPos%len(s.ints)]
	s.intPos++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// FillBytes copies the next scripted bytes into p.
func (s *ReplaySource) FillBytes(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range p {
		if len(s.bytes) == 0 {
			p[i] = 0
			continue
		}
		p[i] = s.bytes[s.bytePos%len(s.bytes)]
		s.bytePos++
	}
}

var (
	_ Source = CryptoSource{}
	_ Source = (*SeededSource)(nil)
	_ Source = (*ReplaySource)(nil)
)
