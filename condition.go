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
	"strings"

	"github.com/pkg/errors"
)

// Condition holds condition flags. Operations never panic on a condition;
// they report it, and the Context's Traps decide which ones become errors.
type Condition uint32

const (
	// Overflow is raised when the adjusted exponent of a result is above
	// MaxExponent after rounding.
	Overflow Condition = 1 << iota
	// Underflow is raised when a result is both subnormal and inexact.
	Underflow
	// Inexact is raised when a result is not exact (one or more non-zero
	// coefficient digits were discarded during rounding).
	Inexact
	// Subnormal is raised when a result's adjusted exponent is below
	// MinExponent before rounding.
	Subnormal
	// Rounded is raised when digits are discarded during rounding, even
	// if they were all zero.
	Rounded
	// DivisionUndefined is raised when both division operands are 0.
	DivisionUndefined
	// DivisionByZero is raised when a non-zero dividend is divided by zero.
	DivisionByZero
	// InvalidOperation is raised for operations on signaling NaNs and for
	// operations with no defined result, such as Inf - Inf.
	InvalidOperation
	// Clamped is raised when the exponent of a result has been altered or
	// constrained in order to fit the format.
	Clamped
)

// DefaultTraps is the set of conditions that are usually worth an error.
const DefaultTraps = Overflow | Underflow | DivisionUndefined | DivisionByZero | InvalidOperation

// Any returns true if any flag is true.
func (r Condition) Any() bool { return r != 0 }

// Overflow returns true if the Overflow flag is set.
func (r Condition) Overflow() bool { return r&Overflow != 0 }

// Underflow returns true if the Underflow flag is set.
func (r Condition) Underflow() bool { return r&Underflow != 0 }

// Inexact returns true if the Inexact flag is set.
func (r Condition) Inexact() bool { return r&Inexact != 0 }

// Subnormal returns true if the Subnormal flag is set.
func (r Condition) Subnormal() bool { return r&Subnormal != 0 }

// Rounded returns true if the Rounded flag is set.
func (r Condition) Rounded() bool { return r&Rounded != 0 }

// DivisionUndefined returns true if the DivisionUndefined flag is set.
func (r Condition) DivisionUndefined() bool { return r&DivisionUndefined != 0 }

// DivisionByZero returns true if the DivisionByZero flag is set.
func (r Condition) DivisionByZero() bool { return r&DivisionByZero != 0 }

// InvalidOperation returns true if the InvalidOperation flag is set.
func (r Condition) InvalidOperation() bool { return r&InvalidOperation != 0 }

// Clamped returns true if the Clamped flag is set.
func (r Condition) Clamped() bool { return r&Clamped != 0 }

// GoError converts r to an error based on the given traps and returns
// r. Traps are the conditions which will trigger an error result if the
// corresponding Flag condition occurred.
func (r Condition) GoError(traps Condition) (Condition, error) {
	if r&traps != 0 {
		return r, conditionError(r & traps)
	}
	return r, nil
}

var conditionNames = []struct {
	c    Condition
	name string
}{
	{Overflow, "overflow"},
	{Underflow, "underflow"},
	{Inexact, "inexact"},
	{Subnormal, "subnormal"},
	{Rounded, "rounded"},
	{DivisionUndefined, "division undefined"},
	{DivisionByZero, "division by zero"},
	{InvalidOperation, "invalid operation"},
	{Clamped, "clamped"},
}

func (r Condition) String() string {
	var names []string
	for _, n := range conditionNames {
		if r&n.c != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ", ")
}

type conditionError Condition

func (e conditionError) Error() string {
	if e == 0 {
		// A Condition was turned into an error without any trapped flag. This
		// should only occur if there's a bug in bid.
		panic("not an error")
	}
	return Condition(e).String()
}

// ConditionOf returns the trapped conditions carried by err, or 0 if err did
// not come from a trapped condition.
func ConditionOf(err error) Condition {
	if e, ok := errors.Cause(err).(conditionError); ok {
		return Condition(e)
	}
	return 0
}
