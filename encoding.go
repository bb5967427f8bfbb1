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

import "github.com/cockroachdb/bid/internal/bcd"

// Both encodings start with a sign bit and a 5-bit combination field.
// 11110 is Infinity and 11111 a NaN, with the next bit set for a signaling
// NaN; the remaining bits of a NaN carry its payload.
const (
	combInf  = 0x1E
	combNaN  = 0x1F
	combMask = 0x1F
)

func (f Format) signBit(neg bool) Uint128 {
	if !neg {
		return Uint128{}
	}
	return U128(1).Lsh(uint(f.Bits) - 1)
}

// special encodes an infinity or NaN; payload has already been packed into
// the trailing significand bits.
func (f Format) special(d *Decimal, payload Uint128) Uint128 {
	top := uint(f.Bits)
	w := f.signBit(d.Negative)
	switch d.Form {
	case Infinite:
		return w.Or(U128(combInf).Lsh(top - 6))
	case NaNSignaling:
		w = w.Or(U128(1).Lsh(top - 7))
	}
	return w.Or(U128(combNaN).Lsh(top - 6)).Or(payload)
}

func (f Format) checkPayload(d *Decimal) error {
	if d.Form != Infinite && d.Coeff.Cmp(pow10[f.Precision-1]) >= 0 {
		return RangeViolation.New("%s: NaN payload %s has more than %d digits", f, d.Coeff, f.Precision-1)
	}
	return nil
}

// biased checks that the finite d fits f unchanged and returns its biased
// exponent. Round d with f.Context() first to bring any value into range.
func (f Format) biased(d *Decimal) (uint64, error) {
	if d.Coeff.Cmp(pow10[f.Precision]) >= 0 {
		return 0, RangeViolation.New("%s: coefficient %s has more than %d digits", f, d.Coeff, f.Precision)
	}
	b := int64(d.Exponent) + int64(f.Bias)
	if b < 0 || b > int64(f.maxBiased()) {
		return 0, RangeViolation.New("%s: exponent %d outside [%d, %d]", f, d.Exponent, f.Etiny(), f.Etop())
	}
	return uint64(b), nil
}

// EncodeBID packs d with a binary integer coefficient into the low f.Bits
// bits of the result.
func (f Format) EncodeBID(d *Decimal) (Uint128, error) {
	if d.Form != Finite {
		if err := f.checkPayload(d); err != nil {
			return Uint128{}, err
		}
		return f.special(d, d.Coeff), nil
	}
	biased, err := f.biased(d)
	if err != nil {
		return Uint128{}, err
	}
	cb := uint(f.coeffBits())
	w := f.signBit(d.Negative)
	e := U128(biased)
	if d.Coeff.BitLen() <= int(cb) {
		return w.Or(e.Lsh(cb)).Or(d.Coeff), nil
	}
	// The coefficient's top bits are an implied 100 after the 11 marker.
	top := uint(f.Bits)
	return w.Or(U128(3).Lsh(top - 3)).Or(e.Lsh(cb - 2)).Or(d.Coeff.And(mask128(cb - 2))), nil
}

// DecodeBID unpacks the BID encoding in the low f.Bits bits of w. A
// non-canonical coefficient or payload decodes as zero.
func (f Format) DecodeBID(w Uint128) *Decimal {
	top := uint(f.Bits)
	d := &Decimal{Negative: w.Rsh(top-1).Lo&1 == 1}
	cb := uint(f.coeffBits())
	emask := uint64(1)<<uint(f.expBits) - 1
	var biased uint64
	var coeff Uint128
	switch comb := w.Rsh(top-6).Lo & combMask; {
	case comb == combInf:
		d.Form = Infinite
		return d
	case comb == combNaN:
		f.decodeNaN(d, w, w.And(mask128(uint(f.trailingBits()))))
		return d
	case comb>>3 == 3:
		biased = w.Rsh(cb-2).Lo & emask
		coeff = w.And(mask128(cb - 2)).Or(U128(4).Lsh(cb - 2))
	default:
		biased = w.Rsh(cb).Lo & emask
		coeff = w.And(mask128(cb))
	}
	if coeff.Cmp(pow10[f.Precision]) >= 0 {
		coeff = Uint128{}
	}
	d.Coeff = coeff
	d.Exponent = int32(int64(biased) - int64(f.Bias))
	return d
}

func (f Format) decodeNaN(d *Decimal, w, payload Uint128) {
	d.Form = NaN
	if w.Rsh(uint(f.Bits)-7).Lo&1 == 1 {
		d.Form = NaNSignaling
	}
	if payload.Cmp(pow10[f.Precision-1]) < 0 {
		d.Coeff = payload
	}
}

func (f Format) declets() int {
	return (f.Precision - 1) / 3
}

// packDeclets packs the low 3*n digits of num, ten bits per three digits.
func packDeclets(num bcd.Number, n int) Uint128 {
	var w Uint128
	for i, dl := range num.Declets(n) {
		w = w.Or(U128(uint64(dl)).Lsh(uint(10 * i)))
	}
	return w
}

// unpackDeclets reverses packDeclets, with msd as the digit above the
// declets.
func unpackDeclets(w Uint128, n int, msd uint64) Uint128 {
	triples := make([]uint16, n)
	for i := range triples {
		triples[i] = bcd.DecodeDeclet(uint16(w.Rsh(uint(10*i)).Lo & 0x3FF))
	}
	num := bcd.FromTriples(triples, bcd.Digit(msd))
	digits := DigitsFromGroups(num.Groups())
	return digits.Uint128()
}

func toBCD(x Uint128) bcd.Number {
	digits := Decompose128(x)
	return bcd.FromGroups(digits.Groups())
}

// EncodeDPD packs d with a densely packed decimal coefficient into the low
// f.Bits bits of the result.
func (f Format) EncodeDPD(d *Decimal) (Uint128, error) {
	if d.Form != Finite {
		if err := f.checkPayload(d); err != nil {
			return Uint128{}, err
		}
		return f.special(d, packDeclets(toBCD(d.Coeff), f.declets())), nil
	}
	biased, err := f.biased(d)
	if err != nil {
		return Uint128{}, err
	}
	top := uint(f.Bits)
	cont := uint(f.contBits())
	num := toBCD(d.Coeff)
	// The combination field carries the top two exponent bits and the
	// leading digit.
	msd := uint64(num.Digit(f.Precision - 1))
	e2 := biased >> cont
	var comb uint64
	if msd < 8 {
		comb = e2<<3 | msd
	} else {
		comb = 0x18 | e2<<1 | msd&1
	}
	w := f.signBit(d.Negative).Or(U128(comb).Lsh(top - 6))
	w = w.Or(U128(biased & (1<<cont - 1)).Lsh(uint(f.trailingBits())))
	return w.Or(packDeclets(num, f.declets())), nil
}

// DecodeDPD unpacks the DPD encoding in the low f.Bits bits of w.
// Non-canonical declets decode to the value they alias.
func (f Format) DecodeDPD(w Uint128) *Decimal {
	top := uint(f.Bits)
	tb := uint(f.trailingBits())
	d := &Decimal{Negative: w.Rsh(top-1).Lo&1 == 1}
	comb := w.Rsh(top-6).Lo & combMask
	switch comb {
	case combInf:
		d.Form = Infinite
		return d
	case combNaN:
		f.decodeNaN(d, w, unpackDeclets(w, f.declets(), 0))
		return d
	}
	var e2, msd uint64
	if comb>>3 == 3 {
		e2, msd = comb>>1&3, 8+comb&1
	} else {
		e2, msd = comb>>3, comb&7
	}
	cont := uint(f.contBits())
	biased := e2<<cont | w.Rsh(tb).Lo&(1<<cont-1)
	d.Coeff = unpackDeclets(w, f.declets(), msd)
	d.Exponent = int32(int64(biased) - int64(f.Bias))
	return d
}

// EncodeBID32 packs d into a decimal32 with a binary coefficient.
func EncodeBID32(d *Decimal) (uint32, error) {
	w, err := Decimal32.EncodeBID(d)
	return uint32(w.Lo), err
}

// DecodeBID32 unpacks a decimal32 with a binary coefficient.
func DecodeBID32(w uint32) *Decimal {
	return Decimal32.DecodeBID(U128(uint64(w)))
}

// EncodeBID64 packs d into a decimal64 with a binary coefficient.
func EncodeBID64(d *Decimal) (uint64, error) {
	w, err := Decimal64.EncodeBID(d)
	return w.Lo, err
}

// DecodeBID64 unpacks a decimal64 with a binary coefficient.
func DecodeBID64(w uint64) *Decimal {
	return Decimal64.DecodeBID(U128(w))
}

// EncodeBID128 packs d into a decimal128 with a binary coefficient.
func EncodeBID128(d *Decimal) (Uint128, error) {
	return Decimal128.EncodeBID(d)
}

// DecodeBID128 unpacks a decimal128 with a binary coefficient.
func DecodeBID128(w Uint128) *Decimal {
	return Decimal128.DecodeBID(w)
}

// EncodeDPD32 packs d into a decimal32 with a densely packed coefficient.
func EncodeDPD32(d *Decimal) (uint32, error) {
	w, err := Decimal32.EncodeDPD(d)
	return uint32(w.Lo), err
}

// DecodeDPD32 unpacks a decimal32 with a densely packed coefficient.
func DecodeDPD32(w uint32) *Decimal {
	return Decimal32.DecodeDPD(U128(uint64(w)))
}

// EncodeDPD64 packs d into a decimal64 with a densely packed coefficient.
func EncodeDPD64(d *Decimal) (uint64, error) {
	w, err := Decimal64.EncodeDPD(d)
	return w.Lo, err
}

// DecodeDPD64 unpacks a decimal64 with a densely packed coefficient.
func DecodeDPD64(w uint64) *Decimal {
	return Decimal64.DecodeDPD(U128(w))
}

// EncodeDPD128 packs d into a decimal128 with a densely packed coefficient.
func EncodeDPD128(d *Decimal) (Uint128, error) {
	return Decimal128.EncodeDPD(d)
}

// DecodeDPD128 unpacks a decimal128 with a densely packed coefficient.
func DecodeDPD128(w Uint128) *Decimal {
	return Decimal128.DecodeDPD(w)
}
