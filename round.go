// Copyright 2026 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package bid

// Rounder defines a function that returns true if 1 should be added to the
// absolute value of a number being rounded. result is the truncated
// magnitude to which the 1 would be added, neg is the sign of the number.
// half is -1 if the discarded digits are < 0.5, 0 if = 0.5, or 1 if > 0.5.
// A Rounder is only consulted when the discarded digits are not all zero.
type Rounder func(result Uint128, neg bool, half int) bool

var (
	// RoundDown rounds toward 0; truncate.
	RoundDown Rounder = roundDown
	// RoundHalfUp rounds up if the digits are >= 0.5; ties go away from
	// zero.
	RoundHalfUp Rounder = roundHalfUp
	// RoundHalfEven rounds up if the digits are > 0.5. If the digits are equal
	// to 0.5, it rounds up if the previous digit is odd, always producing an
	// even digit.
	RoundHalfEven Rounder = roundHalfEven
	// RoundCeiling towards +Inf: rounds up if digits are > 0 and the number
	// is positive.
	RoundCeiling Rounder = roundCeiling
	// RoundFloor towards -Inf: rounds up if digits are > 0 and the number
	// is negative.
	RoundFloor Rounder = roundFloor
	// RoundHalfDown rounds up if the digits are > 0.5.
	RoundHalfDown Rounder = roundHalfDown
	// RoundUp rounds away from 0.
	RoundUp Rounder = roundUp
)

func roundDown(result Uint128, neg bool, half int) bool {
	return false
}

func roundUp(result Uint128, neg bool, half int) bool {
	return true
}

func roundHalfUp(result Uint128, neg bool, half int) bool {
	return half >= 0
}

func roundHalfEven(result Uint128, neg bool, half int) bool {
	if half > 0 {
		return true
	}
	if half < 0 {
		return false
	}
	return result.Lo&1 == 1
}

func roundHalfDown(result Uint128, neg bool, half int) bool {
	return half > 0
}

func roundFloor(result Uint128, neg bool, half int) bool {
	return neg
}

func roundCeiling(result Uint128, neg bool, half int) bool {
	return !neg
}

// RoundToPrecision rounds the significand d to at most precision digits.
// It returns the rounded coefficient, the power of ten by which the value was
// scaled down (discarded digits plus one if rounding carried into a new
// digit, as in 999 -> 10 at precision 2), and whether any non-zero digit was
// discarded.
//
// precision must be in [1, MaxPrecision]; Context.RoundDigits checks it.
func RoundToPrecision(d *Digits, precision int, r Rounder, neg bool) (coeff Uint128, shift int, inexact bool) {
	return roundToPrecision(d, precision, r, neg, false)
}

// roundToPrecision is RoundToPrecision for a significand followed by an
// unrepresented tail: sticky reports that the true value has non-zero digits
// beyond the last digit of d.
func roundToPrecision(
	d *Digits, precision int, r Rounder, neg, sticky bool,
) (coeff Uint128, shift int, inexact bool) {
	shift = d.NumDigits() - precision
	if shift < 0 {
		shift = 0
	}
	coeff, inexact = roundDrop(d, shift, r, neg, sticky)
	if coeff == pow10[precision] {
		// 99...9 rounded up to 10^precision: drop the new trailing zero.
		coeff = pow10[precision-1]
		shift++
	}
	return coeff, shift, inexact
}

// roundDrop discards the drop least significant digits of d and rounds the
// rest with r. The result may carry into one more digit than d has left.
// Exactness and the tie are decided from the rounding digit and the trailing
// zero count alone, without scanning the discarded digits.
func roundDrop(d *Digits, drop int, r Rounder, neg, sticky bool) (coeff Uint128, inexact bool) {
	coeff = d.shiftRight(drop)
	if d.IsZero() || drop == 0 {
		if !sticky {
			return coeff, false
		}
		if r(coeff, neg, -1) {
			coeff = coeff.Add64(1)
		}
		return coeff, true
	}

	tz := d.TrailingZeros()
	var half int
	switch rd := d.Digit(drop - 1); {
	case tz >= drop:
		// Every discarded digit is zero.
		if !sticky {
			return coeff, false
		}
		half = -1
	case rd < 5:
		half = -1
	case rd > 5:
		half = 1
	case tz == drop-1 && !sticky:
		half = 0
	default:
		half = 1
	}
	if r(coeff, neg, half) {
		coeff = coeff.Add64(1)
	}
	return coeff, true
}

// stripZeros removes up to max trailing zeros from x and returns the result
// and the number removed. Coefficients up to 1024 are served straight from
// the factors table.
func stripZeros(x Uint128, max int) (Uint128, int) {
	if x.IsZero() || max <= 0 {
		return x, 0
	}
	var n int
	if x.Hi == 0 && x.Lo <= factorsTableSize {
		_, n = SmallFactor(uint32(x.Lo))
	} else {
		d := Decompose128(x)
		n = d.TrailingZeros()
	}
	if n > max {
		n = max
	}
	if n == 0 {
		return x, 0
	}
	q, _ := x.QuoRem10n(n)
	return q, n
}
