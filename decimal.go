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
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Decimal is an unpacked decimal floating point value. Its value is:
//
//     (-1)^Negative * Coeff * 10^Exponent
//
// when Form is Finite. A Decimal is not tied to an encoding; the Context
// used to produce it decides which format's limits it respects, and the
// Encode functions pack it.
type Decimal struct {
	Form     Form
	Negative bool
	Exponent int32
	// Coeff is the coefficient of a finite value, or the payload of a NaN.
	Coeff Uint128
}

// Form specifies the form of a Decimal.
type Form int8

const (
	// Finite is the finite form.
	Finite Form = iota
	// Infinite is the infinite form.
	Infinite
	// NaNSignaling is the signaling NaN form. It will always raise the
	// InvalidOperation condition during an operation.
	NaNSignaling
	// NaN is the NaN form.
	NaN
)

var formStrings = map[Form]string{
	Finite:       "Finite",
	Infinite:     "Infinite",
	NaNSignaling: "NaNSignaling",
	NaN:          "NaN",
}

func (f Form) String() string {
	return formStrings[f]
}

// maxParseDigits is the most coefficient digits a string may carry; more
// than this cannot be held in a Uint128.
const maxParseDigits = 38

// New creates a new decimal with the given coefficient and exponent.
func New(coeff int64, exponent int32) *Decimal {
	d := &Decimal{Exponent: exponent}
	d.SetInt64(coeff)
	d.Exponent = exponent
	return d
}

// NewFromString creates a new decimal from s. The value is taken exactly;
// use Context.NewFromString to round it to a context.
func NewFromString(s string) (*Decimal, error) {
	d := new(Decimal)
	if err := d.SetString(s); err != nil {
		return nil, err
	}
	return d, nil
}

// SetInt64 sets d to x and returns d.
func (d *Decimal) SetInt64(x int64) *Decimal {
	d.Form = Finite
	d.Negative = x < 0
	if x < 0 {
		d.Coeff = U128(uint64(-(x + 1)) + 1)
	} else {
		d.Coeff = U128(uint64(x))
	}
	d.Exponent = 0
	return d
}

// Set sets d's fields to the values of x and returns d.
func (d *Decimal) Set(x *Decimal) *Decimal {
	*d = *x
	return d
}

// SetString sets d to s and returns an error if s is not a decimal string
// or has more than 38 coefficient digits.
func (d *Decimal) SetString(s string) error {
	orig := s
	*d = Decimal{}
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		d.Negative = s[0] == '-'
		s = s[1:]
	}

	switch ls := strings.ToLower(s); {
	case ls == "inf" || ls == "infinity":
		d.Form = Infinite
		return nil
	case strings.HasPrefix(ls, "snan"):
		d.Form = NaNSignaling
		return d.setPayload(ls[4:], orig)
	case strings.HasPrefix(ls, "nan"):
		d.Form = NaN
		return d.setPayload(ls[3:], orig)
	}

	var exp int64
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.ParseInt(s[i+1:], 10, 32)
		if err != nil {
			return errors.Wrapf(err, "parse exponent: %s", s[i+1:])
		}
		exp = e
		s = s[:i]
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		exp -= int64(len(s) - i - 1)
		s = s[:i] + s[i+1:]
	}
	if s == "" {
		return errors.Errorf("parse mantissa: %s", orig)
	}
	digits := strings.TrimLeft(s, "0")
	if len(digits) > maxParseDigits {
		return RangeViolation.New("%s: more than %d coefficient digits", orig, maxParseDigits)
	}
	coeff, ok := parseUint128(s)
	if !ok {
		return errors.Errorf("parse mantissa: %s", orig)
	}
	if exp > math.MaxInt32 || exp < math.MinInt32 {
		return RangeViolation.New("%s: exponent out of range", orig)
	}
	d.Coeff = coeff
	d.Exponent = int32(exp)
	return nil
}

func (d *Decimal) setPayload(s, orig string) error {
	if s == "" {
		return nil
	}
	if len(strings.TrimLeft(s, "0")) > maxParseDigits {
		return RangeViolation.New("%s: NaN payload too long", orig)
	}
	p, ok := parseUint128(s)
	if !ok {
		return errors.Errorf("parse payload: %s", orig)
	}
	d.Coeff = p
	return nil
}

func parseUint128(s string) (Uint128, bool) {
	var x Uint128
	if s == "" {
		return x, false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return x, false
		}
		x = x.Mul64(10).Add64(uint64(c - '0'))
	}
	return x, true
}

// String formats d using scientific notation where the exponent demands
// it, as in the General Decimal Arithmetic to-scientific-string.
func (d *Decimal) String() string {
	return string(d.Append(nil))
}

// Append appends the to-scientific-string form of d to buf.
func (d *Decimal) Append(buf []byte) []byte {
	if d.Negative {
		buf = append(buf, '-')
	}
	switch d.Form {
	case Infinite:
		return append(buf, "Infinity"...)
	case NaN, NaNSignaling:
		if d.Form == NaNSignaling {
			buf = append(buf, 's')
		}
		buf = append(buf, "NaN"...)
		if !d.Coeff.IsZero() {
			digits := Decompose128(d.Coeff)
			buf = digits.AppendTo(buf)
		}
		return buf
	}

	digits := Decompose128(d.Coeff)
	var tmp [40]byte
	c := digits.AppendTo(tmp[:0])
	exp := int(d.Exponent)
	adj := exp + len(c) - 1
	switch {
	case exp <= 0 && adj >= -6:
		if exp == 0 {
			return append(buf, c...)
		}
		point := len(c) + exp
		if point > 0 {
			buf = append(buf, c[:point]...)
			buf = append(buf, '.')
			return append(buf, c[point:]...)
		}
		buf = append(buf, "0."...)
		for ; point < 0; point++ {
			buf = append(buf, '0')
		}
		return append(buf, c...)
	default:
		buf = append(buf, c[0])
		if len(c) > 1 {
			buf = append(buf, '.')
			buf = append(buf, c[1:]...)
		}
		buf = append(buf, 'E')
		if adj >= 0 {
			buf = append(buf, '+')
		}
		return strconv.AppendInt(buf, int64(adj), 10)
	}
}

// GoString implements fmt.GoStringer.
func (d *Decimal) GoString() string {
	return fmt.Sprintf(`{Form: %s, Negative: %t, Coeff: %s, Exponent: %d}`, d.Form, d.Negative, d.Coeff, d.Exponent)
}

// IsZero returns true if d is a finite zero.
func (d *Decimal) IsZero() bool {
	return d.Form == Finite && d.Coeff.IsZero()
}

// Sign returns, if d is Finite:
//
//	-1 if d <  0
//	 0 if d == 0 or -0
//	+1 if d >  0
//
// Otherwise (if d is Infinite or NaN):
//
//	-1 if d.Negative == true
//	+1 if d.Negative == false
func (d *Decimal) Sign() int {
	if d.IsZero() {
		return 0
	}
	if d.Negative {
		return -1
	}
	return 1
}

// Cmp compares d and x and returns:
//
//	-1 if d <  x
//	 0 if d == x
//	+1 if d >  x
//
// -0 and 0 are equal. An error carrying InvalidOperation is returned if
// either d or x is NaN.
func (d *Decimal) Cmp(x *Decimal) (int, error) {
	if d.isNaN() || x.isNaN() {
		return 0, errors.Wrapf(conditionError(InvalidOperation), "Cmp(%s, %s)", d, x)
	}
	ds, xs := d.Sign(), x.Sign()
	switch {
	case ds < xs:
		return -1, nil
	case ds > xs:
		return 1, nil
	case ds == 0:
		return 0, nil
	}
	c := d.cmpAbs(x)
	if ds < 0 {
		c = -c
	}
	return c, nil
}

// cmpAbs compares the magnitudes of the non-zero, non-NaN d and x.
func (d *Decimal) cmpAbs(x *Decimal) int {
	di, xi := d.Form == Infinite, x.Form == Infinite
	switch {
	case di && xi:
		return 0
	case di:
		return 1
	case xi:
		return -1
	}
	// Adjusted exponents decide unless they are equal, in which case the
	// alignment shift is below the coefficient width.
	da := int64(d.Exponent) + int64(d.NumDigits())
	xa := int64(x.Exponent) + int64(x.NumDigits())
	switch {
	case da < xa:
		return -1
	case da > xa:
		return 1
	}
	dc, xc := d.Coeff, x.Coeff
	if d.Exponent > x.Exponent {
		dc = dc.Mul10n(int(d.Exponent - x.Exponent))
	} else {
		xc = xc.Mul10n(int(x.Exponent - d.Exponent))
	}
	return dc.Cmp(xc)
}

// NumDigits returns the number of decimal digits of d.Coeff.
func (d *Decimal) NumDigits() int {
	return numDigits128(d.Coeff)
}

// isNaN reports whether d is a quiet or signaling NaN.
func (d *Decimal) isNaN() bool {
	return d.Form == NaN || d.Form == NaNSignaling
}

var (
	decimalZero = New(0, 0)
	decimalOne  = New(1, 0)
)
