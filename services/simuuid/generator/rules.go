// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import (
	"context"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/AleutianAI/simuuid/pkg/logging"
)

// =============================================================================
// Rule Kinds
// =============================================================================

// RuleKind identifies a rule and the counter slot it increments.
type RuleKind int

const (
	// RuleSeed replaces the working value with a fresh random integer.
	RuleSeed RuleKind = iota

	// RuleDivide divides an even value by x.
	RuleDivide

	// RuleAdd adds y to an odd value.
	RuleAdd

	// RulePalindrome logs the longest palindromic digit run. The value is
	// not changed.
	RulePalindrome
)

// RuleCount is the number of rule kinds and counter slots.
const RuleCount = 4

// String returns the metric label for k.
func (k RuleKind) String() string {
	switch k {
	case RuleSeed:
		return "seed"
	case RuleDivide:
		return "divide"
	case RuleAdd:
		return "add"
	case RulePalindrome:
		return "palindrome"
	default:
		return fmt.Sprintf("rule(%d)", int(k))
	}
}

// Rule is one step of a generation schedule. Operand is the divisor for
// RuleDivide, the addend for RuleAdd, and nil otherwise.
type Rule struct {
	Kind    RuleKind
	Operand *big.Int
}

// String renders the rule for logs, e.g. "divide(2)".
func (r Rule) String() string {
	if r.Operand == nil {
		return r.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", r.Kind, r.Operand)
}

// =============================================================================
// Counters
// =============================================================================

// RuleCounts is a snapshot of the four counters, indexed by RuleKind.
type RuleCounts [RuleCount]int64

// Get returns the count for kind.
func (c RuleCounts) Get(kind RuleKind) int64 { return c[kind] }

// Consistent reports whether divide and add together fired at least half
// as often as seed. Every schedule of three or more rules satisfies this:
// an odd seed triggers the add rule and an even one the divide rule.
func (c RuleCounts) Consistent() bool {
	return 2*(c[RuleDivide]+c[RuleAdd]) >= c[RuleSeed]
}

// Counters holds one atomic cell per rule kind. The cells are independent;
// a snapshot taken during concurrent generation may mix cells read at
// slightly different moments.
type Counters struct {
	slots [RuleCount]atomic.Int64
}

func (c *Counters) inc(kind RuleKind) {
	c.slots[kind].Add(1)
}

// Snapshot reads every cell.
func (c *Counters) Snapshot() RuleCounts {
	var out RuleCounts
	for i := range c.slots {
		out[i] = c.slots[i].Load()
	}
	return out
}

// =============================================================================
// Schedule
// =============================================================================

// buildSchedule returns the seed rule followed by n-1 rules cycling
// through divide, add and palindrome.
func buildSchedule(n, x, y int) []Rule {
	repeated := [3]Rule{
		{Kind: RuleDivide, Operand: big.NewInt(int64(x))},
		{Kind: RuleAdd, Operand: big.NewInt(int64(y))},
		{Kind: RulePalindrome},
	}
	schedule := make([]Rule, 0, n)
	schedule = append(schedule, Rule{Kind: RuleSeed})
	for i := 1; i < n; i++ {
		schedule = append(schedule, repeated[(i-1)%len(repeated)])
	}
	return schedule
}

// =============================================================================
// Rule Engine
// =============================================================================

// Seed length: SeedBaseBits plus a uniform draw from [0, SeedSpreadBits).
const (
	SeedBaseBits   = 96
	SeedSpreadBits = 34
)

// engine applies rules. It holds no per-call state.
type engine struct {
	source Source
	logger *logging.Logger
}

// apply runs rule against value and returns the new working value,
// incrementing the rule's counter when it fires. value is never mutated.
func (e *engine) apply(ctx context.Context, rule Rule, value *big.Int, counters *Counters) *big.Int {
	switch rule.Kind {
	case RuleSeed:
		counters.inc(RuleSeed)
		recordRuleFired(ctx, RuleSeed)
		return e.seed()

	case RuleDivide:
		if !isEven(value) {
			return value
		}
		counters.inc(RuleDivide)
		recordRuleFired(ctx, RuleDivide)
		return quo(value, rule.Operand)

	case RuleAdd:
		if isEven(value) {
			return value
		}
		counters.inc(RuleAdd)
		recordRuleFired(ctx, RuleAdd)
		return add(value, rule.Operand)

	case RulePalindrome:
		counters.inc(RulePalindrome)
		recordRuleFired(ctx, RulePalindrome)
		e.reportPalindrome(ctx, value)
		return value

	default:
		return value
	}
}

// seed draws bitLen = 96 + [0,34) bits, reads bitLen/8+1 bytes, decodes
// them as a signed big-endian integer and returns the magnitude.
func (e *engine) seed() *big.Int {
	bitLen := SeedBaseBits + e.source.IntN(SeedSpreadBits)
	buf := make([]byte, bitLen/8+1)
	e.source.FillBytes(buf)
	v := decodeTwosComplement(buf)
	return v.Abs(v)
}

func (e *engine) reportPalindrome(ctx context.Context, value *big.Int) {
	p := Longest(magnitudeDigits(value))
	addPalindromeEvent(ctx, p)
	if e.logger.Enabled(logging.LevelDebug) {
		e.logger.Debug("palindrome selected",
			"palindrome", p.Digits,
			"length", len(p.Digits),
			"center", p.Pivot.Center,
			"radius", p.Pivot.Radius,
			"even", p.Even,
		)
	}
}
