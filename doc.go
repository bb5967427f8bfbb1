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

/*
Package bid implements IEEE 754-2008 decimal floating point arithmetic on a
128-bit coefficient, with the decimal32, decimal64 and decimal128 interchange
encodings in both their binary integer (BID) and densely packed decimal (DPD)
forms.

Arithmetic is done by a Context, which holds the precision, exponent limits,
rounding and traps. The Context returns the set of conditions an operation
raised, and an error if any of them is trapped:

	c := bid.Decimal64Context
	d := new(bid.Decimal)
	res, err := c.Quo(d, bid.New(1, 0), bid.New(3, 0))
	// d = 0.3333333333333333, res = inexact, rounded, err = nil

Binary significands are turned into decimal digits through precomputed
tables, so no step of the conversion divides. GenerateTables rebuilds them
and Digests fingerprints them; cmd/bidtables exposes both.

Values are encoded with Format.EncodeBID and Format.EncodeDPD. A value must
fit the format unchanged; round it with Format.Context first.
*/
package bid
