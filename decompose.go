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
	"math/bits"
	"strconv"
)

const (
	// MaxWords is the widest significand, in 64-bit words, that the
	// decomposition engine accepts.
	MaxWords = 6
	// maxGroups is enough base-10^8 groups for 2^384 (116 digits), rounded
	// up to whole 16-digit chunks.
	maxGroups = 16

	chunkBase = groupBase * groupBase // 10^16
)

// Digits is a significand split into base-10^8 digit groups, least
// significant group first. The zero value is 0.
type Digits struct {
	g [maxGroups]uint32
	n int
}

// decompose64 splits x < 10^16 into two base-10^8 groups without dividing.
// The low 26 bits (less than 10^8) seed the low group; every following 7-bit
// window adds its table entry, carrying out of the low group as needed. The
// table drops the third group of each entry, so hi is only exact modulo
// 10^8, which is all that a value below 10^16 needs.
func decompose64(x uint64) (lo, hi uint32) {
	lo = uint32(x & convertMask)
	x >>= convertShift
	for j := 0; x != 0; j++ {
		e := &tables.Convert[j][x&(convertSlots-1)]
		lo += e[0]
		hi += e[1]
		if lo >= groupBase {
			lo -= groupBase
			hi++
		}
		x >>= convertWindow
	}
	for hi >= groupBase {
		hi -= groupBase
	}
	return lo, hi
}

// Decompose64 returns the digit groups of x.
func Decompose64(x uint64) Digits {
	var d Digits
	q, r := quoRem1e16(arith, 0, x)
	d.g[0], d.g[1] = decompose64(r)
	d.g[2] = uint32(q)
	d.n = 3
	d.trim()
	return d
}

// Decompose128 returns the digit groups of x.
func Decompose128(x Uint128) Digits {
	buf := [MaxWords]uint64{x.Lo, x.Hi}
	return decomposeWords(&buf, 2)
}

// DecomposeWords returns the digit groups of the integer whose 64-bit words
// are given least significant first. At most MaxWords words are supported;
// wider input is a caller bug. See CheckedDecompose.
func DecomposeWords(words []uint64) Digits {
	var buf [MaxWords]uint64
	n := copy(buf[:], words)
	return decomposeWords(&buf, n)
}

// CheckedDecompose is DecomposeWords with the width checked.
func CheckedDecompose(words []uint64) (Digits, error) {
	if len(words) > MaxWords {
		return Digits{}, RangeViolation.New("significand of %d words exceeds %d", len(words), MaxWords)
	}
	return DecomposeWords(words), nil
}

// decomposeWords consumes buf. Values of 10^16 and above are peeled into
// 16-digit chunks by quoRem1e16, and each chunk goes through the table
// engine.
func decomposeWords(buf *[MaxWords]uint64, n int) Digits {
	return decomposeWith(arith, buf, n)
}

func decomposeWith(a WideArith, buf *[MaxWords]uint64, n int) Digits {
	var d Digits
	for n > 0 && buf[n-1] == 0 {
		n--
	}
	for n > 1 || buf[0] >= chunkBase {
		var rem uint64
		for i := n - 1; i >= 0; i-- {
			buf[i], rem = quoRem1e16(a, rem, buf[i])
		}
		d.g[d.n], d.g[d.n+1] = decompose64(rem)
		d.n += 2
		if buf[n-1] == 0 {
			n--
		}
	}
	d.g[d.n], d.g[d.n+1] = decompose64(buf[0])
	d.n += 2
	d.trim()
	return d
}

const (
	five16    = 152587890625         // 5^16; 10^16 = 5^16 << 16
	five16Inv = 16615349947311448411 // floor(2^101 / 5^16)
)

// quoRem1e16 returns the quotient and remainder of (hi, lo) by 10^16 without
// a divide instruction. hi must be less than 10^16. The 2^16 factor is a
// shift; the quotient by 5^16 is estimated from a fixed-point reciprocal,
// never above the true quotient, and corrected by a few subtractions.
func quoRem1e16(a WideArith, hi, lo uint64) (q, r uint64) {
	low := lo & (1<<16 - 1)
	xlo := lo>>16 | hi<<48
	xhi := hi >> 16
	ph, pl := a.Mul64(xhi<<25|xlo>>39, five16Inv)
	q = ph<<2 | pl>>62
	mh, ml := a.Mul64(q, five16)
	rlo, borrow := bits.Sub64(xlo, ml, 0)
	rhi := xhi - mh - borrow
	for rhi != 0 || rlo >= five16 {
		rlo, borrow = bits.Sub64(rlo, five16, 0)
		rhi -= borrow
		q++
	}
	return q, rlo<<16 | low
}

func (d *Digits) trim() {
	for d.n > 1 && d.g[d.n-1] == 0 {
		d.n--
	}
	if d.n == 0 {
		d.n = 1
	}
}

// Len returns the number of digit groups; it is at least 1.
func (d *Digits) Len() int {
	if d.n == 0 {
		return 1
	}
	return d.n
}

// Group returns digit group i, where group 0 holds the units.
func (d *Digits) Group(i int) uint32 {
	if i >= d.n {
		return 0
	}
	return d.g[i]
}

// IsZero reports whether d is 0.
func (d *Digits) IsZero() bool {
	return d.n <= 1 && d.g[0] == 0
}

// NumDigits returns the number of decimal digits. Zero has one digit.
func (d *Digits) NumDigits() int {
	top := d.Len() - 1
	return top*groupDigits + groupDigitCount(d.g[top])
}

func groupDigitCount(g uint32) int {
	n := 1
	for n < groupDigits && uint64(g) >= pow10u64[n] {
		n++
	}
	return n
}

// Digit returns decimal digit i, where digit 0 is the units digit.
func (d *Digits) Digit(i int) int {
	g := d.Group(i / groupDigits)
	return int(g / uint32(pow10u64[i%groupDigits]) % 10)
}

// TrailingZeros returns the number of trailing decimal zeros of d, or 0 if d
// is zero.
func (d *Digits) TrailingZeros() int {
	n := 0
	for i := 0; i < d.n; i++ {
		if g := d.g[i]; g != 0 {
			return n + groupZeros(g)
		}
		n += groupDigits
	}
	return 0
}

// groupZeros counts the trailing zeros of 0 < g < 10^8 with table lookups.
func groupZeros(g uint32) int {
	if g <= factorsTableSize {
		_, n := SmallFactor(g)
		return n
	}
	// g/10^4 by reciprocal multiplication; exact for every g < 10^8.
	h := uint32(uint64(g) * 0x068DB8BB >> 40)
	l := g - h*10000
	n := 0
	if l == 0 {
		n = 4
		l = h
	}
	return n + TrailingZeros10000(l)
}

// shiftRight returns d/10^n, the digits that survive after dropping the n
// least significant ones. The result must fit in 128 bits.
func (d *Digits) shiftRight(n int) Uint128 {
	gi, s := n/groupDigits, n%groupDigits
	var acc Uint128
	for i := d.Len() - 1; i > gi; i-- {
		acc = acc.Mul64(groupBase).Add64(uint64(d.g[i]))
	}
	if gi >= d.Len() {
		return acc
	}
	return acc.Mul64(pow10u64[groupDigits-s]).Add64(uint64(d.g[gi]) / pow10u64[s])
}

// Groups returns the digit groups, least significant first.
func (d *Digits) Groups() []uint32 {
	return d.g[:d.Len()]
}

// DigitsFromGroups builds Digits from base-10^8 groups, least significant
// first. Every group must be below 10^8 and there may be at most 16.
func DigitsFromGroups(groups []uint32) Digits {
	var d Digits
	d.n = copy(d.g[:], groups)
	d.trim()
	return d
}

// Uint128 reassembles d. d must have at most 38 digits.
func (d *Digits) Uint128() Uint128 {
	return d.shiftRight(0)
}

// Words reassembles d into MaxWords 64-bit words, least significant first.
func (d *Digits) Words() []uint64 {
	var w [MaxWords]uint64
	for i := d.Len() - 1; i >= 0; i-- {
		carry := uint64(d.g[i])
		for j := range w {
			hi, lo := arith.Mul64(w[j], groupBase)
			var c uint64
			w[j], c = bits.Add64(lo, carry, 0)
			carry = hi + c
		}
	}
	n := MaxWords
	for n > 1 && w[n-1] == 0 {
		n--
	}
	return w[:n]
}

// String formats d in base 10.
func (d *Digits) String() string {
	return string(d.AppendTo(make([]byte, 0, d.NumDigits())))
}

// AppendTo appends the decimal digits of d to buf.
func (d *Digits) AppendTo(buf []byte) []byte {
	top := d.Len() - 1
	buf = strconv.AppendUint(buf, uint64(d.g[top]), 10)
	for i := top - 1; i >= 0; i-- {
		var tmp [groupDigits]byte
		g := d.g[i]
		for j := groupDigits - 1; j >= 0; j-- {
			tmp[j] = byte('0' + g%10)
			g /= 10
		}
		buf = append(buf, tmp[:]...)
	}
	return buf
}
