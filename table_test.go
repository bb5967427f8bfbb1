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

import (
	"encoding/hex"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateTablesDeterministic(t *testing.T) {
	a, err := GenerateTables()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateTables()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("tables differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a, tables); diff != "" {
		t.Fatalf("package tables differ from a fresh build (-fresh +package):\n%s", diff)
	}
}

func TestTableDigests(t *testing.T) {
	convert, packed, factors := tables.Digests()
	for _, tc := range []struct {
		name string
		sum  []byte
		want string
	}{
		{"convert", convert[:], ConvertDigest},
		{"packed zeros", packed[:], PackedZerosDigest},
		{"factors", factors[:], FactorsDigest},
	} {
		if got := hex.EncodeToString(tc.sum); got != tc.want {
			t.Errorf("%s: digest %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestConvertEntry(t *testing.T) {
	base := big.NewInt(groupBase)
	v := new(big.Int)
	q := new(big.Int)
	r := new(big.Int)
	for j := 0; j < convertBlocks; j++ {
		for k := 0; k < convertSlots; k++ {
			v.SetInt64(int64(k))
			v.Lsh(v, uint(convertShift+convertWindow*j))
			q.QuoRem(v, base, r)
			q.Mod(q, base)
			e := ConvertEntry(j, k)
			if uint64(e[0]) != r.Uint64() || uint64(e[1]) != q.Uint64() {
				t.Errorf("convert[%d][%d] = %v, want {%s, %s}", j, k, e, r, q)
			}
		}
	}
	// The first entries of the lowest block.
	if e := ConvertEntry(0, 1); e != [2]uint32{67108864, 0} {
		t.Errorf("convert[0][1] = %v", e)
	}
	if e := ConvertEntry(0, 2); e != [2]uint32{34217728, 1} {
		t.Errorf("convert[0][2] = %v", e)
	}
}

func TestTrailingZeros10000(t *testing.T) {
	if n := TrailingZeros10000(0); n != 3 {
		t.Errorf("TrailingZeros10000(0) = %d, want 3", n)
	}
	for k := uint32(1); k < zerosTableSize; k++ {
		if got, want := TrailingZeros10000(k), decimalZeros(k); got != want {
			t.Errorf("TrailingZeros10000(%d) = %d, want %d", k, got, want)
		}
	}
	for k, want := range map[uint32]int{10: 1, 100: 2, 1000: 3, 5000: 3, 9990: 1, 4: 0, 7: 0} {
		if got := TrailingZeros10000(k); got != want {
			t.Errorf("TrailingZeros10000(%d) = %d, want %d", k, got, want)
		}
	}
}

func TestFactors(t *testing.T) {
	for k := uint32(1); k <= factorsTableSize; k++ {
		twos, fives := Factors(k)
		x := k
		for i := 0; i < twos; i++ {
			x /= 2
		}
		for i := 0; i < fives; i++ {
			x /= 5
		}
		prod := x << uint(twos)
		for i := 0; i < fives; i++ {
			prod *= 5
		}
		if prod != k || x%2 == 0 || x%5 == 0 {
			t.Errorf("Factors(%d) = 2^%d 5^%d leaves %d", k, twos, fives, x)
		}
	}
	if twos, fives := Factors(1000); twos != 3 || fives != 3 {
		t.Errorf("Factors(1000) = %d, %d", twos, fives)
	}
	if twos, fives := Factors(1024); twos != 10 || fives != 0 {
		t.Errorf("Factors(1024) = %d, %d", twos, fives)
	}
	if twos, fives := Factors(625); twos != 0 || fives != 4 {
		t.Errorf("Factors(625) = %d, %d", twos, fives)
	}
}

func TestSmallFactor(t *testing.T) {
	tests := []struct {
		k, factor uint32
		zeros     int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{10, 1, 1},
		{120, 12, 1},
		{1000, 1, 3},
		{1024, 1024, 0},
		{500, 5, 2},
		{999, 999, 0},
	}
	for _, tc := range tests {
		factor, zeros := SmallFactor(tc.k)
		if factor != tc.factor || zeros != tc.zeros {
			t.Errorf("SmallFactor(%d) = %d, %d; want %d, %d", tc.k, factor, zeros, tc.factor, tc.zeros)
		}
	}
}

func TestNumDigits(t *testing.T) {
	runTest := func(start string, c byte) {
		var buf strings.Builder
		buf.WriteString(start)
		for i := len(start); i < 38; i++ {
			buf.WriteByte(c)
			bs := buf.String()
			t.Run(bs, func(t *testing.T) {
				d := newDecimal(t, bs)
				if n, e := d.NumDigits(), len(bs); n != e {
					t.Fatalf("%s ('%c'): expected %d, got %d", bs, c, e, n)
				}
			})
		}
	}
	runTest("", '9')
	runTest("1", '0')
}

func TestDigitsLookupTable(t *testing.T) {
	// Make sure all elements in table make sense.
	min := new(big.Int)
	prevBorder := new(big.Int)
	for i := 1; i <= digitsTableSize; i++ {
		elem := digitsLookupTable[i]

		min.SetInt64(2)
		min.Exp(min, big.NewInt(int64(i-1)), nil)
		if minLen := len(min.String()); minLen != elem.digits {
			t.Errorf("expected 2^%d to have %d digits, found %d", i, elem.digits, minLen)
		}
		if elem.digits >= len(pow10) {
			continue
		}

		border := elem.border.Big()
		if zeros := strings.Count(border.String(), "0"); zeros != elem.digits {
			t.Errorf("the %d digits for digitsLookupTable[%d] does not agree with the border %v", elem.digits, i, border)
		}

		if min.Cmp(border) >= 0 {
			t.Errorf("expected 2^%d = %v to be less than the border, found %v", i-1, min, border)
		}

		if border.Cmp(prevBorder) > 0 {
			if min.Cmp(prevBorder) <= 0 {
				t.Errorf("expected 2^%d = %v to be greater than or equal to the border, found %v", i-1, min, prevBorder)
			}
			prevBorder = border
		}
	}

	// Throw random values at the table and make sure the digit lengths line
	// up.
	const randomTrials = 100
	for i := 0; i < randomTrials; i++ {
		x := Uint128{Hi: rand.Uint64() >> uint(rand.Intn(64)), Lo: rand.Uint64()}
		if actualDigits, tableDigits := len(x.Big().String()), numDigits128(x); actualDigits != tableDigits {
			t.Errorf("expected %d digits for %v, found %d", actualDigits, x, tableDigits)
		}
	}
}
