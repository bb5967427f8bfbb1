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

import "math/bits"

// WideArith provides the two double-word primitives the engine needs. Targets
// with a native 64x64->128 multiply and 128/64 divide use the math/bits
// intrinsics; the portable implementation only needs 32-bit operations.
type WideArith interface {
	// Mul64 returns the 128-bit product of x and y.
	Mul64(x, y uint64) (hi, lo uint64)
	// Div64 returns the quotient and remainder of (hi, lo) divided by y.
	// hi must be less than y.
	Div64(hi, lo, y uint64) (quo, rem uint64)
}

// arith is the WideArith used by this package, fixed at initialization.
var arith = selectArith()

func selectArith() WideArith {
	if bits.UintSize == 64 {
		return bitsArith{}
	}
	return portableArith{}
}

type bitsArith struct{}

func (bitsArith) Mul64(x, y uint64) (hi, lo uint64) {
	return bits.Mul64(x, y)
}

func (bitsArith) Div64(hi, lo, y uint64) (quo, rem uint64) {
	return bits.Div64(hi, lo, y)
}

type portableArith struct{}

const (
	mask32 = 1<<32 - 1
	base32 = 1 << 32
)

func (portableArith) Mul64(x, y uint64) (hi, lo uint64) {
	x0, x1 := x&mask32, x>>32
	y0, y1 := y&mask32, y>>32
	w0 := x0 * y0
	t := x1*y0 + w0>>32
	w1 := t & mask32
	w2 := t >> 32
	w1 += x0 * y1
	hi = x1*y1 + w2 + w1>>32
	lo = x * y
	return
}

// Div64 is Knuth's algorithm D specialised to two 32-bit digit divisors, as
// in Hacker's Delight divlu.
func (portableArith) Div64(hi, lo, y uint64) (quo, rem uint64) {
	if y <= hi {
		panic("bid: Div64 quotient overflow")
	}
	if hi == 0 {
		return lo / y, lo % y
	}
	s := uint(bits.LeadingZeros64(y))
	y <<= s

	yn1 := y >> 32
	yn0 := y & mask32
	un32 := hi<<s | lo>>(64-s)
	if s == 0 {
		un32 = hi
	}
	un10 := lo << s
	un1 := un10 >> 32
	un0 := un10 & mask32
	q1 := un32 / yn1
	rhat := un32 - q1*yn1

	for q1 >= base32 || q1*yn0 > base32*rhat+un1 {
		q1--
		rhat += yn1
		if rhat >= base32 {
			break
		}
	}

	un21 := un32*base32 + un1 - q1*y
	q0 := un21 / yn1
	rhat = un21 - q0*yn1

	for q0 >= base32 || q0*yn0 > base32*rhat+un0 {
		q0--
		rhat += yn1
		if rhat >= base32 {
			break
		}
	}

	return q1*base32 + q0, (un21*base32 + un0 - q0*y) >> s
}
