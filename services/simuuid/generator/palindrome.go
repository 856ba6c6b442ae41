// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

// Pivot locates a palindrome by its center index and radius.
//
// For an odd-length palindrome Center is the middle digit and the
// palindrome spans [Center-Radius, Center+Radius]. For an even-length
// palindrome Center is the left digit of the middle pair and the span is
// [Center-Radius, Center+1+Radius]. {-1, -1} means nothing was found.
type Pivot struct {
	Radius int
	Center int
}

// NoPivot is returned when a scan finds no palindrome.
var NoPivot = Pivot{Radius: -1, Center: -1}

// Palindrome is the winner selected by Longest.
type Palindrome struct {
	// Digits is the palindromic substring.
	Digits string

	// Start is the index of the first digit of Digits.
	Start int

	// Even is true for a pair-centered palindrome.
	Even bool

	Pivot Pivot
}

// ScanMiddles finds the longest odd-length palindrome in digits.
//
// # Description
//
// Starts with every index as a candidate center at radius 0. Each pass
// drops candidates whose window would leave the string or whose end
// digits differ. While any candidate survives, the last survivor and the
// current radius are remembered and the radius grows by one.
//
// # Outputs
//
//   - Pivot: Radius and Center of the longest odd palindrome. When several
//     tie, the rightmost center wins. NoPivot for an empty string.
//
// # Examples
//
//	ScanMiddles("12321") // {Radius: 2, Center: 2}
//	ScanMiddles("12345") // {Radius: 0, Center: 4}
func ScanMiddles(digits string) Pivot {
	centers := make([]int, len(digits))
	for i := range centers {
		centers[i] = i
	}
	return scan(digits, centers, 0)
}

// ScanPairs finds the longest even-length palindrome in digits.
//
// Candidate pairs are (m, m+1) for every adjacent index pair; radius 0
// compares the pair itself. Returns NoPivot when no two adjacent digits
// are equal.
//
//	ScanPairs("1221")  // {Radius: 1, Center: 1}
//	ScanPairs("12345") // NoPivot
func ScanPairs(digits string) Pivot {
	if len(digits) < 2 {
		return NoPivot
	}
	centers := make([]int, len(digits)-1)
	for i := range centers {
		centers[i] = i
	}
	return scan(digits, centers, 1)
}

// scan expands all centers in lockstep. offset is 0 for odd palindromes
// and 1 for even ones: the right edge is center+offset+radius.
func scan(digits string, centers []int, offset int) Pivot {
	best := NoPivot
	for radius := 0; len(centers) > 0; radius++ {
		kept := centers[:0]
		for _, c := range centers {
			lo, hi := c-radius, c+offset+radius
			if lo < 0 || hi >= len(digits) || digits[lo] != digits[hi] {
				continue
			}
			kept = append(kept, c)
		}
		centers = kept
		if len(centers) > 0 {
			best = Pivot{Radius: radius, Center: centers[len(centers)-1]}
		}
	}
	return best
}

// Longest selects the longest palindrome in digits.
//
// The odd-length result wins when its radius is strictly greater than the
// even-length radius or when no even palindrome exists. On equal radii the
// even palindrome wins, since it is one digit longer. An empty input
// returns a zero Palindrome with NoPivot.
func Longest(digits string) Palindrome {
	if digits == "" {
		return Palindrome{Pivot: NoPivot}
	}

	mid := ScanMiddles(digits)
	pair := ScanPairs(digits)

	if mid.Radius > pair.Radius || pair.Radius == -1 {
		start := mid.Center - mid.Radius
		return Palindrome{
			Digits: digits[start : mid.Center+mid.Radius+1],
			Start:  start,
			Pivot:  mid,
		}
	}

	start := pair.Center - pair.Radius
	return Palindrome{
		Digits: digits[start : pair.Center+pair.Radius+2],
		Start:  start,
		Even:   true,
		Pivot:  pair,
	}
}
