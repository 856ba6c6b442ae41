// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import "math/big"

// Output band. Every identifier has between MinDigits and MaxDigits
// decimal digits.
const (
	MinDigits = 30
	MaxDigits = 40
)

var (
	minMagnitude = pow10(MinDigits - 1)
	maxMagnitude = new(big.Int).Sub(pow10(MaxDigits), big.NewInt(1))
)

// MinMagnitude returns the smallest normalized value, 10^29.
func MinMagnitude() *big.Int { return new(big.Int).Set(minMagnitude) }

// MaxMagnitude returns the largest normalized value, 10^40 - 1.
func MaxMagnitude() *big.Int { return new(big.Int).Set(maxMagnitude) }

// NormalizeValue scales |v| into [MinMagnitude, MaxMagnitude].
//
// # Description
//
// Multiplies by 10 while the value is below the band and integer-divides
// by 10 while it is above. Zero is treated as 1 so the upward loop
// terminates. v is not modified.
//
// # Outputs
//
//   - *big.Int: A new value with 30 to 40 decimal digits. Values already in
//     the band are returned unchanged, so NormalizeValue is idempotent.
func NormalizeValue(v *big.Int) *big.Int {
	out := new(big.Int).Abs(v)
	if out.Sign() == 0 {
		out.SetInt64(1)
	}
	for out.Cmp(minMagnitude) < 0 {
		out.Mul(out, bigTen)
	}
	for out.Cmp(maxMagnitude) > 0 {
		out.Quo(out, bigTen)
	}
	return out
}

// Normalize returns the decimal string of NormalizeValue(v).
func Normalize(v *big.Int) string {
	return NormalizeValue(v).String()
}
