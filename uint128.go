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

import (
	"fmt"
	"math/big"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer. It holds every decimal128
// coefficient (up to 34 digits) and intermediate values of up to 38 digits.
type Uint128 struct {
	Hi, Lo uint64
}

// Uint256 is an unsigned 256-bit integer, least significant word first. It
// holds the exact product of two Uint128 coefficients.
type Uint256 [4]uint64

var (
	pow10u64 = makePow10u64()
	pow10    = makePow10()
)

func makePow10u64() (t [20]uint64) {
	p := uint64(1)
	for i := range t {
		t[i] = p
		p *= 10
	}
	return t
}

func makePow10() (t [39]Uint128) {
	x := Uint128{Lo: 1}
	for i := range t {
		t[i] = x
		x, _ = x.mul64(10)
	}
	return t
}

// U128 returns x as a Uint128.
func U128(x uint64) Uint128 {
	return Uint128{Lo: x}
}

// IsZero reports whether x == 0.
func (x Uint128) IsZero() bool {
	return x.Hi == 0 && x.Lo == 0
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Uint128) Cmp(y Uint128) int {
	switch {
	case x.Hi < y.Hi:
		return -1
	case x.Hi > y.Hi:
		return 1
	case x.Lo < y.Lo:
		return -1
	case x.Lo > y.Lo:
		return 1
	}
	return 0
}

// Add returns x+y modulo 2^128.
func (x Uint128) Add(y Uint128) Uint128 {
	lo, c := bits.Add64(x.Lo, y.Lo, 0)
	hi, _ := bits.Add64(x.Hi, y.Hi, c)
	return Uint128{Hi: hi, Lo: lo}
}

// Add64 returns x+y modulo 2^128.
func (x Uint128) Add64(y uint64) Uint128 {
	lo, c := bits.Add64(x.Lo, y, 0)
	return Uint128{Hi: x.Hi + c, Lo: lo}
}

// Sub returns x-y modulo 2^128.
func (x Uint128) Sub(y Uint128) Uint128 {
	lo, b := bits.Sub64(x.Lo, y.Lo, 0)
	hi, _ := bits.Sub64(x.Hi, y.Hi, b)
	return Uint128{Hi: hi, Lo: lo}
}

// BitLen returns the number of bits required to represent x.
func (x Uint128) BitLen() int {
	if x.Hi != 0 {
		return 64 + bits.Len64(x.Hi)
	}
	return bits.Len64(x.Lo)
}

func (x Uint128) mul64(y uint64) (z Uint128, overflow uint64) {
	hi, lo := arith.Mul64(x.Lo, y)
	h2, l2 := arith.Mul64(x.Hi, y)
	var c uint64
	z.Lo = lo
	z.Hi, c = bits.Add64(hi, l2, 0)
	return z, h2 + c
}

// Mul64 returns x*y. The product must fit in 128 bits.
func (x Uint128) Mul64(y uint64) Uint128 {
	z, _ := x.mul64(y)
	return z
}

// Mul10n returns x*10^n. The product must fit in 128 bits.
func (x Uint128) Mul10n(n int) Uint128 {
	for n >= 19 {
		x = x.Mul64(pow10u64[19])
		n -= 19
	}
	return x.Mul64(pow10u64[n])
}

// QuoRem64 returns x/y and x%y.
func (x Uint128) QuoRem64(y uint64) (Uint128, uint64) {
	var q Uint128
	var r uint64
	q.Hi, r = x.Hi/y, x.Hi%y
	q.Lo, r = arith.Div64(r, x.Lo, y)
	return q, r
}

// QuoRem10n returns x/10^n and x%10^n, for n <= 38.
func (x Uint128) QuoRem10n(n int) (q, r Uint128) {
	if n <= 19 {
		q, rem := x.QuoRem64(pow10u64[n])
		return q, U128(rem)
	}
	// Two steps: 10^n = 10^19 * 10^(n-19).
	q1, r1 := x.QuoRem64(pow10u64[19])
	q, r2 := q1.QuoRem64(pow10u64[n-19])
	r = U128(r2).Mul64(pow10u64[19]).Add64(r1)
	return q, r
}

// Mul returns the full 256-bit product x*y.
func (x Uint128) Mul(y Uint128) Uint256 {
	var z Uint256
	var c uint64
	h00, l00 := arith.Mul64(x.Lo, y.Lo)
	h01, l01 := arith.Mul64(x.Lo, y.Hi)
	h10, l10 := arith.Mul64(x.Hi, y.Lo)
	h11, l11 := arith.Mul64(x.Hi, y.Hi)

	z[0] = l00
	z[1], c = bits.Add64(h00, l01, 0)
	z[2], c = bits.Add64(h01, l11, c)
	z[3] = h11 + c
	z[1], c = bits.Add64(z[1], l10, 0)
	z[2], c = bits.Add64(z[2], h10, c)
	z[3] += c
	return z
}

// Big returns x as a big.Int.
func (x Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(x.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(x.Lo))
}

// String formats x in base 10.
func (x Uint128) String() string {
	d := Decompose128(x)
	return d.String()
}

// Format implements fmt.Formatter for %v, %s and %d.
func (x Uint128) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, x.String())
}

// IsZero reports whether x == 0.
func (x *Uint256) IsZero() bool {
	return x[0]|x[1]|x[2]|x[3] == 0
}

// Uint128 returns the low 128 bits of x.
func (x *Uint256) Uint128() Uint128 {
	return Uint128{Hi: x[1], Lo: x[0]}
}

func (x *Uint256) fitsUint128() bool {
	return x[2]|x[3] == 0
}

func (x *Uint256) bitLen() int {
	for i := 3; i >= 0; i-- {
		if x[i] != 0 {
			return i*64 + bits.Len64(x[i])
		}
	}
	return 0
}

func (x *Uint256) bit(i int) uint64 {
	return x[i/64] >> uint(i%64) & 1
}

// mulUint256 returns x*y for x < 2^256 and y < 2^64, and the overflow word.
func mulUint256(x Uint256, y uint64) (z Uint256, overflow uint64) {
	var carry uint64
	for i := range x {
		hi, lo := arith.Mul64(x[i], y)
		var c uint64
		z[i], c = bits.Add64(lo, carry, 0)
		carry = hi + c
	}
	return z, carry
}

// quoRem256 divides the 256-bit x by the 128-bit y, y != 0. The quotient
// must fit in 128 bits.
func quoRem256(x Uint256, y Uint128) (q, r Uint128) {
	if x.fitsUint128() && x.Uint128().Cmp(y) < 0 {
		return Uint128{}, x.Uint128()
	}
	if y.Hi == 0 {
		// Schoolbook division by a single word.
		var rem uint64
		var qw Uint256
		for i := 3; i >= 0; i-- {
			qw[i], rem = arith.Div64(rem, x[i], y.Lo)
		}
		return qw.Uint128(), U128(rem)
	}
	// Binary long division; the remainder stays below 2^129 so one carry bit
	// is enough.
	for i := x.bitLen() - 1; i >= 0; i-- {
		top := r.Hi >> 63
		r.Hi = r.Hi<<1 | r.Lo>>63
		r.Lo = r.Lo<<1 | x.bit(i)
		q.Hi = q.Hi<<1 | q.Lo>>63
		q.Lo <<= 1
		if top != 0 || r.Cmp(y) >= 0 {
			r = r.Sub(y)
			q.Lo |= 1
		}
	}
	return q, r
}

// Uint256 returns x widened to 256 bits.
func (x Uint128) Uint256() Uint256 {
	return Uint256{x.Lo, x.Hi}
}

func (x *Uint256) cmp(y *Uint256) int {
	for i := 3; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

func add256(x, y Uint256) (z Uint256) {
	var c uint64
	for i := range x {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
	return z
}

// sub256 returns x-y for x >= y.
func sub256(x, y Uint256) (z Uint256) {
	var b uint64
	for i := range x {
		z[i], b = bits.Sub64(x[i], y[i], b)
	}
	return z
}

// mul10n256 returns x*10^n. The product must fit in 256 bits.
func mul10n256(x Uint256, n int) Uint256 {
	for n > 0 {
		k := n
		if k > 19 {
			k = 19
		}
		x, _ = mulUint256(x, pow10u64[k])
		n -= k
	}
	return x
}

// Lsh returns x<<n.
func (x Uint128) Lsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: x.Lo << (n - 64)}
	case n == 0:
		return x
	}
	return Uint128{Hi: x.Hi<<n | x.Lo>>(64-n), Lo: x.Lo << n}
}

// Rsh returns x>>n.
func (x Uint128) Rsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Lo: x.Hi >> (n - 64)}
	case n == 0:
		return x
	}
	return Uint128{Hi: x.Hi >> n, Lo: x.Lo>>n | x.Hi<<(64-n)}
}

// And returns x&y.
func (x Uint128) And(y Uint128) Uint128 {
	return Uint128{Hi: x.Hi & y.Hi, Lo: x.Lo & y.Lo}
}

// Or returns x|y.
func (x Uint128) Or(y Uint128) Uint128 {
	return Uint128{Hi: x.Hi | y.Hi, Lo: x.Lo | y.Lo}
}

// mask128 returns 2^n-1.
func mask128(n uint) Uint128 {
	return U128(1).Lsh(n).Sub(U128(1))
}
