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

import "github.com/zeebo/errs"

var (
	// RangeViolation is the class of errors reported when a caller passes an
	// argument outside the supported bounds: a precision outside [1, 34], a
	// significand wider than MaxWords, or a value that does not fit the
	// encoding it is packed into.
	RangeViolation = errs.Class("range violation")
	// GenerationError is the class of errors reported when a generated table
	// entry fails its exactness check.
	GenerationError = errs.Class("table generation")
)

// ErrDecimal performs operations on decimals and collects errors during
// operations. If an error is already set, the operation is skipped. Designed to
// be used for many operations in a row, with a single error check at the end.
type ErrDecimal struct {
	err error
	Ctx *Context
	// Flags are the accumulated flags from operations.
	Flags Condition
}

// MakeErrDecimal creates a ErrDecimal with given context.
func MakeErrDecimal(c *Context) ErrDecimal {
	return ErrDecimal{
		Ctx: c,
	}
}

// Err returns the first error encountered or the context's trap error
// if present.
func (e *ErrDecimal) Err() error {
	if e.err != nil {
		return e.err
	}
	if e.Ctx != nil {
		_, e.err = e.Flags.GoError(e.Ctx.Traps)
		return e.err
	}
	return nil
}

func (e *ErrDecimal) op2(d, x *Decimal, f func(a, b *Decimal) (Condition, error)) *Decimal {
	if e.Err() != nil {
		return d
	}
	res, err := f(d, x)
	e.Flags |= res
	e.err = err
	return d
}

func (e *ErrDecimal) op3(d, x, y *Decimal, f func(a, b, c *Decimal) (Condition, error)) *Decimal {
	if e.Err() != nil {
		return d
	}
	res, err := f(d, x, y)
	e.Flags |= res
	e.err = err
	return d
}

// Abs performs e.Ctx.Abs(d, x) and returns d.
func (e *ErrDecimal) Abs(d, x *Decimal) *Decimal {
	return e.op2(d, x, e.Ctx.Abs)
}

// Add performs e.Ctx.Add(d, x, y) and returns d.
func (e *ErrDecimal) Add(d, x, y *Decimal) *Decimal {
	return e.op3(d, x, y, e.Ctx.Add)
}

// Mul performs e.Ctx.Mul(d, x, y) and returns d.
func (e *ErrDecimal) Mul(d, x, y *Decimal) *Decimal {
	return e.op3(d, x, y, e.Ctx.Mul)
}

// Neg performs e.Ctx.Neg(d, x) and returns d.
func (e *ErrDecimal) Neg(d, x *Decimal) *Decimal {
	return e.op2(d, x, e.Ctx.Neg)
}

// Quantize performs e.Ctx.Quantize(d, x, y) and returns d.
func (e *ErrDecimal) Quantize(d, x, y *Decimal) *Decimal {
	return e.op3(d, x, y, e.Ctx.Quantize)
}

// Quo performs e.Ctx.Quo(d, x, y) and returns d.
func (e *ErrDecimal) Quo(d, x, y *Decimal) *Decimal {
	return e.op3(d, x, y, e.Ctx.Quo)
}

// Reduce performs e.Ctx.Reduce(d, x) and returns d.
func (e *ErrDecimal) Reduce(d, x *Decimal) *Decimal {
	return e.op2(d, x, e.Ctx.Reduce)
}

// Round performs e.Ctx.Round(d, x) and returns d.
func (e *ErrDecimal) Round(d, x *Decimal) *Decimal {
	return e.op2(d, x, e.Ctx.Round)
}

// Sub performs e.Ctx.Sub(d, x, y) and returns d.
func (e *ErrDecimal) Sub(d, x, y *Decimal) *Decimal {
	return e.op3(d, x, y, e.Ctx.Sub)
}

// Cmp returns 0 if Err is set. Otherwise returns x.Cmp(y).
func (e *ErrDecimal) Cmp(x, y *Decimal) int {
	if e.Err() != nil {
		return 0
	}
	var c int
	c, e.err = x.Cmp(y)
	return c
}
