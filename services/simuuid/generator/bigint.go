// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import "math/big"

// Arbitrary-precision helpers over math/big. Rule code only touches
// big.Int through these so the value semantics (truncating division,
// sign-free decimal rendering) live in one place.

var bigTen = big.NewInt(10)

// isEven reports whether v is divisible by 2. Bit(0) of a negative value
// matches the parity of its magnitude.
func isEven(v *big.Int) bool {
	return v.Bit(0) == 0
}

// quo returns v / d truncated toward zero.
func quo(v, d *big.Int) *big.Int {
	return new(big.Int).Quo(v, d)
}

// add returns v + d.
func add(v, d *big.Int) *big.Int {
	return new(big.Int).Add(v, d)
}

// decodeTwosComplement interprets b as a big-endian two's-complement
// integer. An empty slice decodes to zero.
func decodeTwosComplement(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		// v - 2^(8*len(b))
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(8*len(b))))
	}
	return v
}

// magnitudeDigits renders |v| in base 10 without a sign.
func magnitudeDigits(v *big.Int) string {
	if v.Sign() < 0 {
		return new(big.Int).Abs(v).String()
	}
	return v.String()
}

// pow10 returns 10^n.
func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}
