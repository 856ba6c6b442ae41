// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides strict parsing for user-provided inputs.
//
// Request parameters reach the generator as raw query strings. These
// helpers accept only plain decimal integers that fit in 32 bits, so a
// value like "2.0", "0x10" or " 3" is rejected before it can be
// interpreted as a rule operand.
package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var (
	// ErrNotInteger is returned when a parameter is not a decimal integer.
	ErrNotInteger = errors.New("not a decimal integer")

	// ErrOutOfRange is returned when a parameter does not fit its allowed range.
	ErrOutOfRange = errors.New("out of range")
)

// integerPattern matches an optionally signed run of decimal digits.
var integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

// identifierPattern matches a SimUUID identifier: 30 to 40 decimal digits.
var identifierPattern = regexp.MustCompile(`^[0-9]{30,40}$`)

// ParseOptionalInt parses an optional 32-bit integer parameter.
//
// Returns present=false and no error when raw is empty, so the caller can
// apply its default. Errors wrap ErrNotInteger or ErrOutOfRange and name
// the parameter.
//
// Example:
//
//	x, ok, err := validation.ParseOptionalInt("x", c.Query("x"))
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    x = generator.DefaultX
//	}
func ParseOptionalInt(name, raw string) (value int, present bool, err error) {
	if raw == "" {
		return 0, false, nil
	}
	if !integerPattern.MatchString(raw) {
		return 0, false, fmt.Errorf("parameter %s=%q: %w", name, raw, ErrNotInteger)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false, fmt.Errorf("parameter %s=%q: %w", name, raw, ErrOutOfRange)
	}
	return int(n), true, nil
}

// ParseCount parses a positive count bounded by max, defaulting to 1 when
// raw is empty.
func ParseCount(raw string, max int) (int, error) {
	n, ok, err := ParseOptionalInt("count", raw)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 1, nil
	}
	if n < 1 || n > max {
		return 0, fmt.Errorf("parameter count=%d must be between 1 and %d: %w", n, max, ErrOutOfRange)
	}
	return n, nil
}

// ValidateIdentifier checks that id is 30 to 40 decimal digits.
func ValidateIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if !identifierPattern.MatchString(id) {
		return fmt.Errorf("invalid identifier %q (must be 30-40 decimal digits)", id)
	}
	return nil
}
