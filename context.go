// Copyright 2016 The Cockroach Authors.
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

// MaxPrecision is the largest Context precision, the decimal128 precision.
const MaxPrecision = 34

// Context maintains options for Decimal operations. Operations never modify
// the Context, so one value may be shared by any number of goroutines.
type Context struct {
	// Precision is the number of places to round during rounding. It must be
	// in [1, MaxPrecision].
	Precision uint32
	// MaxExponent specifies the largest effective exponent. The
	// effective exponent is the value of the Decimal in scientific notation. That
	// is, for 10e2, the effective exponent is 3 (1.0e3).
	MaxExponent int32
	// MinExponent is similar to MaxExponent, but for the smallest effective
	// exponent of a normal number. Smaller results are subnormal.
	MinExponent int32
	// Traps are the conditions which will trigger an error result if the
	// corresponding Flag condition occurred.
	Traps Condition
	// Rounding specifies the Rounder to use during rounding. RoundHalfUp is used if
	// nil.
	Rounding Rounder
	// Clamp limits the exponent of a result to MaxExponent-Precision+1, padding
	// the coefficient with zeros, as the interchange formats require.
	Clamp bool
}

// BaseContext is a useful default Context: decimal128 limits with the
// default traps.
var BaseContext = Context{
	Precision:   MaxPrecision,
	MaxExponent: 6144,
	MinExponent: -6143,
	Traps:       DefaultTraps,
}

// WithPrecision returns a copy of c but with the specified precision.
func (c *Context) WithPrecision(p uint32) Context {
	r := *c
	r.Precision = p
	return r
}

func (c *Context) rounding() Rounder {
	if c.Rounding == nil {
		return RoundHalfUp
	}
	return c.Rounding
}

// check reports a context outside the supported limits as a RangeViolation
// naming op. The error is returned unwrapped so RangeViolation.Has sees it.
func (c *Context) check(op string) error {
	if c.Precision < 1 || c.Precision > MaxPrecision {
		return RangeViolation.New("%s: precision %d outside [1, %d]", op, c.Precision, MaxPrecision)
	}
	if c.MinExponent > c.MaxExponent {
		return RangeViolation.New("%s: MinExponent %d above MaxExponent %d", op, c.MinExponent, c.MaxExponent)
	}
	return nil
}

func (c *Context) goError(res Condition) (Condition, error) {
	return res.GoError(c.Traps)
}

// etiny is the exponent of the smallest subnormal.
func (c *Context) etiny() int64 {
	return int64(c.MinExponent) - int64(c.Precision) + 1
}

// etop is the largest exponent of a full-precision coefficient.
func (c *Context) etop() int64 {
	return int64(c.MaxExponent) - int64(c.Precision) + 1
}

// zeroExpLimit is the largest exponent a zero may keep.
func (c *Context) zeroExpLimit() int64 {
	if c.Clamp {
		return c.etop()
	}
	return int64(c.MaxExponent)
}

// roundsToFloor reports whether r rounds toward -Inf. Rounders are functions
// and cannot be compared, so call one: only RoundFloor rounds a discarded
// fraction below one half up for a negative number and not for a positive one.
func roundsToFloor(r Rounder) bool {
	return r(Uint128{}, true, -1) && !r(Uint128{}, false, -1)
}

// clampDrop limits the number of digits to drop from a significand of nd
// digits. Dropping nd+1 digits already leaves a zero rounding digit, so any
// larger count rounds the same way.
func clampDrop(drop, nd int64) int {
	if drop > nd+1 {
		drop = nd + 1
	}
	return int(drop)
}

// finalize sets d to the exact value digits*10^exp rounded into c. sticky
// reports a non-zero tail, smaller than half a unit, below the last digit of
// digits. The conditions raised are returned.
func (c *Context) finalize(d *Decimal, digits *Digits, exp int64, neg, sticky bool) Condition {
	d.Form = Finite
	d.Negative = neg
	if digits.IsZero() && !sticky {
		d.Coeff = Uint128{}
		return c.fixZero(d, exp)
	}

	var res Condition
	var coeff Uint128
	var inexact bool
	r := c.rounding()
	nd := int64(digits.NumDigits())
	if exp+nd-1 < int64(c.MinExponent) {
		// Subnormal: round at Etiny. A carry may make the result normal again,
		// which needs no further adjustment.
		res |= Subnormal
		drop := c.etiny() - exp
		if drop < 0 {
			drop = 0
		}
		coeff, inexact = roundDrop(digits, clampDrop(drop, nd), r, neg, sticky)
		if drop > 0 {
			exp += drop
			res |= Rounded
		}
		if inexact {
			res |= Underflow | Inexact
			if coeff.IsZero() {
				res |= Clamped
			}
		}
	} else {
		var shift int
		p := int(c.Precision)
		coeff, shift, inexact = roundToPrecision(digits, p, r, neg, sticky)
		if shift > 0 {
			exp += int64(shift)
			res |= Rounded
		}
		if inexact {
			res |= Inexact
		}
		if exp+int64(numDigits128(coeff))-1 > int64(c.MaxExponent) {
			res |= Overflow | Inexact | Rounded
			max := pow10[p].Sub(U128(1))
			if r(max, neg, 1) {
				d.Form = Infinite
				d.Coeff = Uint128{}
				d.Exponent = 0
				return res
			}
			coeff, exp = max, c.etop()
		}
	}
	if c.Clamp && exp > c.etop() {
		coeff = coeff.Mul10n(int(exp - c.etop()))
		exp = c.etop()
		res |= Clamped
	}
	d.Coeff = coeff
	d.Exponent = int32(exp)
	return res
}

// fixZero sets the exponent of the zero d to exp, brought into range.
func (c *Context) fixZero(d *Decimal, exp int64) Condition {
	var res Condition
	if lo := c.etiny(); exp < lo {
		exp = lo
		res |= Clamped
	}
	if hi := c.zeroExpLimit(); exp > hi {
		exp = hi
		res |= Clamped
	}
	d.Exponent = int32(exp)
	return res
}

// nanResult sets d to the NaN an operation on x and y propagates, if any. y
// may be nil. A signaling NaN takes precedence and raises InvalidOperation.
func (c *Context) nanResult(d, x, y *Decimal) (Condition, bool) {
	var nan *Decimal
	var res Condition
	switch {
	case x.Form == NaNSignaling:
		nan, res = x, InvalidOperation
	case y != nil && y.Form == NaNSignaling:
		nan, res = y, InvalidOperation
	case x.Form == NaN:
		nan = x
	case y != nil && y.Form == NaN:
		nan = y
	default:
		return 0, false
	}
	neg, payload := nan.Negative, c.nanPayload(nan.Coeff)
	*d = Decimal{Form: NaN, Negative: neg, Coeff: payload}
	return res, true
}

// nanPayload keeps the low digits of a payload that does not fit the
// coefficient of a NaN in c.
func (c *Context) nanPayload(p Uint128) Uint128 {
	n := int(c.Precision)
	if c.Clamp {
		n--
	}
	if numDigits128(p) <= n {
		return p
	}
	_, r := p.QuoRem10n(n)
	return r
}

func (c *Context) setInvalid(d *Decimal) Condition {
	*d = Decimal{Form: NaN}
	return InvalidOperation
}

// Add sets d to the sum x+y.
func (c *Context) Add(d, x, y *Decimal) (Condition, error) {
	return c.add(d, x, y, false, "Add")
}

// Sub sets d to the difference x-y.
func (c *Context) Sub(d, x, y *Decimal) (Condition, error) {
	return c.add(d, x, y, true, "Sub")
}

func (c *Context) add(d, x, y *Decimal, subtract bool, op string) (Condition, error) {
	if err := c.check(op); err != nil {
		return 0, err
	}
	if res, ok := c.nanResult(d, x, y); ok {
		return c.goError(res)
	}
	a, b := *x, *y
	if subtract {
		b.Negative = !b.Negative
	}
	if a.Form == Infinite || b.Form == Infinite {
		if a.Form == Infinite && b.Form == Infinite && a.Negative != b.Negative {
			return c.goError(c.setInvalid(d))
		}
		neg := a.Negative
		if a.Form != Infinite {
			neg = b.Negative
		}
		*d = Decimal{Form: Infinite, Negative: neg}
		return 0, nil
	}

	r := c.rounding()
	ideal := int64(a.Exponent)
	if b.Exponent < a.Exponent {
		ideal = int64(b.Exponent)
	}
	switch {
	case a.IsZero() && b.IsZero():
		neg := a.Negative
		if a.Negative != b.Negative {
			neg = roundsToFloor(r)
		}
		*d = Decimal{Negative: neg}
		return c.goError(c.fixZero(d, ideal))
	case a.IsZero():
		return c.goError(c.addZero(d, &b, ideal))
	case b.IsZero():
		return c.goError(c.addZero(d, &a, ideal))
	}

	if a.Exponent < b.Exponent {
		a, b = b, a
	}
	ea, eb := int64(a.Exponent), int64(b.Exponent)
	da, db := int64(a.NumDigits()), int64(b.NumDigits())
	// Every digit of the result at or above position t is fixed by a alone
	// when b < 10^t; only b's sign and being non-zero matter.
	t := ea + da - int64(c.Precision) - 2
	if t > ea {
		t = ea
	}
	bc := b.Coeff
	if eb+db <= t {
		bc, eb = U128(1), t-1
	}
	aw := mul10n256(a.Coeff.Uint256(), int(ea-eb))
	bw := bc.Uint256()

	var sum Uint256
	neg := a.Negative
	if a.Negative == b.Negative {
		sum = add256(aw, bw)
	} else {
		switch aw.cmp(&bw) {
		case 0:
			*d = Decimal{Negative: roundsToFloor(r)}
			return c.goError(c.fixZero(d, eb))
		case -1:
			sum, neg = sub256(bw, aw), b.Negative
		default:
			sum = sub256(aw, bw)
		}
	}
	digits := DecomposeWords(sum[:])
	return c.goError(c.finalize(d, &digits, eb, neg, false))
}

// addZero sets d to z+0, where the zero had exponent ideal or above. The
// coefficient of z is padded toward the ideal exponent as far as the
// precision allows.
func (c *Context) addZero(d, z *Decimal, ideal int64) Condition {
	var res Condition
	exp := int64(z.Exponent)
	coeff := z.Coeff
	if pad := exp - ideal; pad > 0 {
		room := int64(c.Precision) - int64(z.NumDigits())
		if room < 0 {
			room = 0
		}
		if pad > room {
			pad = room
			res |= Rounded
		}
		coeff = coeff.Mul10n(int(pad))
		exp -= pad
	}
	digits := Decompose128(coeff)
	return res | c.finalize(d, &digits, exp, z.Negative, false)
}

// Mul sets d to the product x*y.
func (c *Context) Mul(d, x, y *Decimal) (Condition, error) {
	if err := c.check("Mul"); err != nil {
		return 0, err
	}
	if res, ok := c.nanResult(d, x, y); ok {
		return c.goError(res)
	}
	neg := x.Negative != y.Negative
	if x.Form == Infinite || y.Form == Infinite {
		if x.IsZero() || y.IsZero() {
			return c.goError(c.setInvalid(d))
		}
		*d = Decimal{Form: Infinite, Negative: neg}
		return 0, nil
	}
	exp := int64(x.Exponent) + int64(y.Exponent)
	prod := x.Coeff.Mul(y.Coeff)
	digits := DecomposeWords(prod[:])
	return c.goError(c.finalize(d, &digits, exp, neg, false))
}

// Quo sets d to the quotient x/y, correctly rounded.
func (c *Context) Quo(d, x, y *Decimal) (Condition, error) {
	if err := c.check("Quo"); err != nil {
		return 0, err
	}
	if res, ok := c.nanResult(d, x, y); ok {
		return c.goError(res)
	}
	neg := x.Negative != y.Negative
	switch {
	case x.Form == Infinite && y.Form == Infinite:
		return c.goError(c.setInvalid(d))
	case x.Form == Infinite:
		*d = Decimal{Form: Infinite, Negative: neg}
		return 0, nil
	case y.Form == Infinite:
		*d = Decimal{Negative: neg, Exponent: int32(c.etiny())}
		return c.goError(Clamped)
	}
	if y.IsZero() {
		if x.IsZero() {
			*d = Decimal{Form: NaN}
			return c.goError(DivisionUndefined | InvalidOperation)
		}
		*d = Decimal{Form: Infinite, Negative: neg}
		return c.goError(DivisionByZero)
	}
	ideal := int64(x.Exponent) - int64(y.Exponent)
	if x.IsZero() {
		*d = Decimal{Negative: neg}
		return c.goError(c.fixZero(d, ideal))
	}

	// Scale the dividend so the quotient has at least Precision+1 digits; the
	// remainder then only says whether the tail is zero.
	shift := int(c.Precision) + 1 + y.NumDigits() - x.NumDigits()
	if shift < 0 {
		shift = 0
	}
	num := mul10n256(x.Coeff.Uint256(), shift)
	q, rem := quoRem256(num, y.Coeff)
	exp := ideal - int64(shift)
	sticky := !rem.IsZero()
	if !sticky {
		var n int
		q, n = stripZeros(q, shift)
		exp += int64(n)
	}
	digits := Decompose128(q)
	return c.goError(c.finalize(d, &digits, exp, neg, sticky))
}

// Round sets d to x rounded to c.
func (c *Context) Round(d, x *Decimal) (Condition, error) {
	if err := c.check("Round"); err != nil {
		return 0, err
	}
	if res, ok := c.nanResult(d, x, nil); ok {
		return c.goError(res)
	}
	if x.Form == Infinite {
		*d = Decimal{Form: Infinite, Negative: x.Negative}
		return 0, nil
	}
	digits := Decompose128(x.Coeff)
	return c.goError(c.finalize(d, &digits, int64(x.Exponent), x.Negative, false))
}

// Reduce sets d to x rounded to c with all trailing zeros removed from the
// coefficient, as far as the exponent range allows. A zero gets exponent 0.
func (c *Context) Reduce(d, x *Decimal) (Condition, error) {
	res, err := c.Round(d, x)
	if err != nil || d.Form != Finite {
		return res, err
	}
	if d.IsZero() {
		d.Exponent = 0
		return res, nil
	}
	max := c.zeroExpLimit() - int64(d.Exponent)
	if max > MaxPrecision {
		max = MaxPrecision
	}
	coeff, n := stripZeros(d.Coeff, int(max))
	d.Coeff = coeff
	d.Exponent += int32(n)
	return res, nil
}

// Quantize sets d to x rescaled to the exponent of y, rounding with c's
// Rounder. The result must fit in c's precision or InvalidOperation is
// raised.
func (c *Context) Quantize(d, x, y *Decimal) (Condition, error) {
	if err := c.check("Quantize"); err != nil {
		return 0, err
	}
	if res, ok := c.nanResult(d, x, y); ok {
		return c.goError(res)
	}
	if x.Form == Infinite || y.Form == Infinite {
		if x.Form == Infinite && y.Form == Infinite {
			*d = Decimal{Form: Infinite, Negative: x.Negative}
			return 0, nil
		}
		return c.goError(c.setInvalid(d))
	}
	exp := int64(y.Exponent)
	if exp < c.etiny() || exp > int64(c.MaxExponent) {
		return c.goError(c.setInvalid(d))
	}
	neg := x.Negative
	if x.IsZero() {
		*d = Decimal{Negative: neg}
		return c.goError(c.fixZero(d, exp))
	}
	p := int64(c.Precision)
	xe := int64(x.Exponent)
	adj := xe + int64(x.NumDigits()) - 1
	if adj > int64(c.MaxExponent) || adj-exp+1 > p {
		return c.goError(c.setInvalid(d))
	}

	var res Condition
	var coeff Uint128
	if exp > xe {
		digits := Decompose128(x.Coeff)
		var inexact bool
		coeff, inexact = roundDrop(&digits, clampDrop(exp-xe, int64(digits.NumDigits())), c.rounding(), neg, false)
		// A carry may add a digit.
		if nd := int64(numDigits128(coeff)); nd > p || exp+nd-1 > int64(c.MaxExponent) {
			return c.goError(c.setInvalid(d))
		}
		res |= Rounded
		if inexact {
			res |= Inexact
		}
	} else {
		coeff = x.Coeff.Mul10n(int(xe - exp))
	}

	*d = Decimal{Negative: neg, Coeff: coeff}
	if coeff.IsZero() {
		return c.goError(res | c.fixZero(d, exp))
	}
	if exp+int64(numDigits128(coeff))-1 < int64(c.MinExponent) {
		res |= Subnormal
	}
	if c.Clamp && exp > c.etop() {
		d.Coeff = coeff.Mul10n(int(exp - c.etop()))
		exp = c.etop()
		res |= Clamped
	}
	d.Exponent = int32(exp)
	return c.goError(res)
}

// Abs sets d to |x| (the absolute value of x).
func (c *Context) Abs(d, x *Decimal) (Condition, error) {
	d.Set(x)
	if !d.isNaN() {
		d.Negative = false
	}
	return c.Round(d, d)
}

// Neg sets d to -x. The negation of a zero is +0, except under RoundFloor.
func (c *Context) Neg(d, x *Decimal) (Condition, error) {
	d.Set(x)
	switch {
	case d.isNaN():
	case d.IsZero():
		d.Negative = roundsToFloor(c.rounding()) && !x.Negative
	default:
		d.Negative = !d.Negative
	}
	return c.Round(d, d)
}

// RoundDigits is RoundToPrecision with c's precision and Rounder, and with
// the precision checked.
func (c *Context) RoundDigits(digits *Digits, neg bool) (coeff Uint128, shift int, inexact bool, err error) {
	if err := c.check("RoundDigits"); err != nil {
		return Uint128{}, 0, false, err
	}
	coeff, shift, inexact = RoundToPrecision(digits, int(c.Precision), c.rounding(), neg)
	return coeff, shift, inexact, nil
}

// NewFromString creates a new decimal from s rounded to c. NaN payloads too
// long for c are truncated; a signaling NaN is kept as is.
func (c *Context) NewFromString(s string) (*Decimal, Condition, error) {
	d, err := NewFromString(s)
	if err != nil {
		return nil, 0, err
	}
	if d.isNaN() {
		if err := c.check("NewFromString"); err != nil {
			return nil, 0, err
		}
		d.Coeff = c.nanPayload(d.Coeff)
		return d, 0, nil
	}
	res, err := c.Round(d, d)
	return d, res, err
}
