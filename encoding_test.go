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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type encodingTest struct {
	d        string
	bid, dpd Uint128
}

func u(hi, lo uint64) Uint128 { return Uint128{Hi: hi, Lo: lo} }

var encodingTests = map[*Format][]encodingTest{
	&Decimal32: {
		{"1", U128(0x32800001), U128(0x22500001)},
		{"-1", U128(0xB2800001), U128(0xA2500001)},
		{"0", U128(0x32800000), U128(0x22500000)},
		{"-0", U128(0xB2800000), U128(0xA2500000)},
		{"9999999E+90", U128(0x77F8967F), U128(0x77F3FCFF)},
		{"-9999999E+90", U128(0xF7F8967F), U128(0xF7F3FCFF)},
		{"1E-101", U128(0x00000001), U128(0x00000001)},
		{"1234.567", U128(0x3112D687), U128(0x2624D2E7)},
		{"8000000E+5", U128(0x357A1200), U128(0x6AA00000)},
		{"9E+2", U128(0x33800009), U128(0x22700009)},
		{"Inf", U128(0x78000000), U128(0x78000000)},
		{"-Inf", U128(0xF8000000), U128(0xF8000000)},
		{"NaN", U128(0x7C000000), U128(0x7C000000)},
		{"sNaN", U128(0x7E000000), U128(0x7E000000)},
		{"-NaN123", U128(0xFC00007B), U128(0xFC0000A3)},
	},
	&Decimal64: {
		{"1", U128(0x31C0000000000001), U128(0x2238000000000001)},
		{"-1", U128(0xB1C0000000000001), U128(0xA238000000000001)},
		{"0", U128(0x31C0000000000000), U128(0x2238000000000000)},
		{"-0", U128(0xB1C0000000000000), U128(0xA238000000000000)},
		{"9999999999999999E+369", U128(0x77FB86F26FC0FFFF), U128(0x77FCFF3FCFF3FCFF)},
		{"-9999999999999999E+369", U128(0xF7FB86F26FC0FFFF), U128(0xF7FCFF3FCFF3FCFF)},
		{"1E-398", U128(0x0000000000000001), U128(0x0000000000000001)},
		{"1234.567", U128(0x316000000012D687), U128(0x222C00000014D2E7)},
		{"8000000E+5", U128(0x32600000007A1200), U128(0x224C000000800000)},
		{"9E+2", U128(0x3200000000000009), U128(0x2240000000000009)},
		{"Inf", U128(0x7800000000000000), U128(0x7800000000000000)},
		{"-Inf", U128(0xF800000000000000), U128(0xF800000000000000)},
		{"NaN", U128(0x7C00000000000000), U128(0x7C00000000000000)},
		{"sNaN", U128(0x7E00000000000000), U128(0x7E00000000000000)},
		{"-NaN123", U128(0xFC0000000000007B), U128(0xFC000000000000A3)},
	},
	&Decimal128: {
		{"1", u(0x3040000000000000, 1), u(0x2208000000000000, 1)},
		{"-1", u(0xB040000000000000, 1), u(0xA208000000000000, 1)},
		{"0", u(0x3040000000000000, 0), u(0x2208000000000000, 0)},
		{"-0", u(0xB040000000000000, 0), u(0xA208000000000000, 0)},
		{"9999999999999999999999999999999999E+6111", u(0x5FFFED09BEAD87C0, 0x378D8E63FFFFFFFF), u(0x77FFCFF3FCFF3FCF, 0xF3FCFF3FCFF3FCFF)},
		{"-9999999999999999999999999999999999E+6111", u(0xDFFFED09BEAD87C0, 0x378D8E63FFFFFFFF), u(0xF7FFCFF3FCFF3FCF, 0xF3FCFF3FCFF3FCFF)},
		{"1E-6176", u(0, 1), u(0, 1)},
		{"1234.567", u(0x303A000000000000, 0x12D687), u(0x2207400000000000, 0x14D2E7)},
		{"8000000E+5", u(0x304A000000000000, 0x7A1200), u(0x2209400000000000, 0x800000)},
		{"9E+2", u(0x3044000000000000, 9), u(0x2208800000000000, 9)},
		{"Inf", u(0x7800000000000000, 0), u(0x7800000000000000, 0)},
		{"-Inf", u(0xF800000000000000, 0), u(0xF800000000000000, 0)},
		{"NaN", u(0x7C00000000000000, 0), u(0x7C00000000000000, 0)},
		{"sNaN", u(0x7E00000000000000, 0), u(0x7E00000000000000, 0)},
		{"-NaN123", u(0xFC00000000000000, 0x7B), u(0xFC00000000000000, 0xA3)},
	},
}

func TestEncoding(t *testing.T) {
	for f, tests := range encodingTests {
		f := *f
		t.Run(f.Name, func(t *testing.T) {
			for _, tc := range tests {
				t.Run(tc.d, func(t *testing.T) {
					d := newDecimal(t, tc.d)
					bid, err := f.EncodeBID(d)
					require.NoError(t, err)
					require.Equal(t, tc.bid, bid, "BID %#x, want %#x", bid.Big(), tc.bid.Big())
					dpd, err := f.EncodeDPD(d)
					require.NoError(t, err)
					require.Equal(t, tc.dpd, dpd, "DPD %#x, want %#x", dpd.Big(), tc.dpd.Big())

					require.Equal(t, *d, *f.DecodeBID(bid))
					require.Equal(t, *d, *f.DecodeDPD(dpd))
				})
			}
		})
	}
}

func TestEncodingWrappers(t *testing.T) {
	one := decimalOne
	w32, err := EncodeBID32(one)
	require.NoError(t, err)
	require.Equal(t, uint32(0x32800001), w32)
	require.Equal(t, *one, *DecodeBID32(w32))

	w32, err = EncodeDPD32(one)
	require.NoError(t, err)
	require.Equal(t, uint32(0x22500001), w32)
	require.Equal(t, *one, *DecodeDPD32(w32))

	w64, err := EncodeBID64(one)
	require.NoError(t, err)
	require.Equal(t, uint64(0x31C0000000000001), w64)
	require.Equal(t, *one, *DecodeBID64(w64))

	w64, err = EncodeDPD64(one)
	require.NoError(t, err)
	require.Equal(t, uint64(0x2238000000000001), w64)
	require.Equal(t, *one, *DecodeDPD64(w64))

	w128, err := EncodeBID128(one)
	require.NoError(t, err)
	require.Equal(t, u(0x3040000000000000, 1), w128)
	require.Equal(t, *one, *DecodeBID128(w128))

	w128, err = EncodeDPD128(one)
	require.NoError(t, err)
	require.Equal(t, u(0x2208000000000000, 1), w128)
	require.Equal(t, *one, *DecodeDPD128(w128))
}

func TestEncodingRange(t *testing.T) {
	tests := []struct {
		f Format
		d string
	}{
		{Decimal32, "12345678"},
		{Decimal32, "1E+91"},
		{Decimal32, "1E-102"},
		{Decimal32, "NaN1234567"},
		{Decimal64, "12345678901234567"},
		{Decimal64, "1E+370"},
		{Decimal128, "1E+6112"},
		{Decimal128, "sNaN1234567890123456789012345678901234"},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s/%s", tc.f, tc.d), func(t *testing.T) {
			d := newDecimal(t, tc.d)
			_, err := tc.f.EncodeBID(d)
			require.True(t, RangeViolation.Has(err), "%+v", err)
			_, err = tc.f.EncodeDPD(d)
			require.True(t, RangeViolation.Has(err), "%+v", err)

			// Rounding into the format first always makes the value encodable.
			c := tc.f.Context()
			var r Decimal
			_, err = c.Round(&r, d)
			require.NoError(t, err)
			_, err = tc.f.EncodeBID(&r)
			require.NoError(t, err)
		})
	}
}

func TestDecodeNonCanonical(t *testing.T) {
	// A large-form BID coefficient of 10^p or more decodes as zero.
	d := DecodeBID64(0x6C7386F26FC10000)
	require.Equal(t, "0", d.String())
	d = DecodeBID32(0x6CB89680)
	require.Equal(t, "0", d.String())
	d = DecodeBID128(u(0x3041ED09BEAD87C0, 0x378D8E6400000000))
	require.Equal(t, "0", d.String())

	// A BID NaN payload of 10^(p-1) or more decodes as no payload.
	d = DecodeBID32(0x7C000000 | 1000000)
	require.Equal(t, "NaN", d.String())

	// Non-canonical declets alias canonical values.
	d = DecodeDPD64(0x22380000000003FF)
	require.Equal(t, "999", d.String())
	d = DecodeDPD64(0x223800000000037E)
	require.Equal(t, "898", d.String())

	// The combination field ignores the trailing bits of an infinity.
	d = DecodeDPD64(0x78000000000003FF)
	require.Equal(t, "Infinity", d.String())
	d = DecodeBID64(0xF8000000000003FF)
	require.Equal(t, "-Infinity", d.String())
}

func TestEncodingRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for _, f := range []Format{Decimal32, Decimal64, Decimal128} {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			for i := 0; i < 2000; i++ {
				coeff := Uint128{Hi: rng.Uint64(), Lo: rng.Uint64()}
				coeff, _ = coeff.QuoRem10n(38 - rng.Intn(f.Precision+1))
				if coeff.Cmp(pow10[f.Precision]) >= 0 {
					coeff, _ = coeff.QuoRem10n(1)
				}
				d := &Decimal{
					Negative: rng.Intn(2) == 0,
					Coeff:    coeff,
					Exponent: f.Etiny() + rng.Int31n(f.Etop()-f.Etiny()+1),
				}
				if !d.Coeff.IsZero() && numDigits128(d.Coeff) > f.Precision {
					t.Fatalf("bad generator: %s", d.Coeff)
				}
				bid, err := f.EncodeBID(d)
				require.NoError(t, err)
				require.Equal(t, *d, *f.DecodeBID(bid), "%#v", d)
				dpd, err := f.EncodeDPD(d)
				require.NoError(t, err)
				require.Equal(t, *d, *f.DecodeDPD(dpd), "%#v", d)
			}
		})
	}
}
