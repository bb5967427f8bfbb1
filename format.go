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

// Format describes one of the IEEE 754-2008 decimal interchange formats.
type Format struct {
	Name string
	// Bits is the width of the encoding.
	Bits int
	// Precision is the number of coefficient digits.
	Precision int
	// MaxExponent is Emax, the largest adjusted exponent.
	MaxExponent int32
	// Bias is added to the exponent of a coefficient written as an integer.
	Bias int32
	// expBits is the width of the whole biased exponent; its top two bits
	// share the combination field.
	expBits int
}

var (
	// Decimal32 is the 32-bit format: 7 digits, Emax 96.
	Decimal32 = Format{Name: "decimal32", Bits: 32, Precision: 7, MaxExponent: 96, Bias: 101, expBits: 8}
	// Decimal64 is the 64-bit format: 16 digits, Emax 384.
	Decimal64 = Format{Name: "decimal64", Bits: 64, Precision: 16, MaxExponent: 384, Bias: 398, expBits: 10}
	// Decimal128 is the 128-bit format: 34 digits, Emax 6144.
	Decimal128 = Format{Name: "decimal128", Bits: 128, Precision: 34, MaxExponent: 6144, Bias: 6176, expBits: 14}
)

// MinExponent returns Emin, the smallest adjusted exponent of a normal
// value.
func (f Format) MinExponent() int32 {
	return 1 - f.MaxExponent
}

// Etiny returns the smallest exponent of a subnormal coefficient.
func (f Format) Etiny() int32 {
	return f.MinExponent() - int32(f.Precision) + 1
}

// Etop returns the largest exponent of a coefficient written as an integer.
func (f Format) Etop() int32 {
	return f.MaxExponent - int32(f.Precision) + 1
}

// Context returns a Context that rounds results into f, with IEEE clamping
// and no traps.
func (f Format) Context() Context {
	return Context{
		Precision:   uint32(f.Precision),
		MaxExponent: f.MaxExponent,
		MinExponent: f.MinExponent(),
		Rounding:    RoundHalfEven,
		Clamp:       true,
	}
}

func (f Format) String() string {
	return f.Name
}

// Field widths shared by BID and DPD.
func (f Format) contBits() int     { return f.expBits - 2 }          // exponent continuation
func (f Format) trailingBits() int { return f.Bits - 6 - f.contBits() } // trailing significand
func (f Format) coeffBits() int    { return f.Bits - 1 - f.expBits }   // BID small-form coefficient
func (f Format) maxBiased() int32  { return 3<<uint(f.contBits()) - 1 }

var (
	// Decimal32Context rounds into decimal32.
	Decimal32Context = Decimal32.Context()
	// Decimal64Context rounds into decimal64.
	Decimal64Context = Decimal64.Context()
	// Decimal128Context rounds into decimal128.
	Decimal128Context = Decimal128.Context()
)
