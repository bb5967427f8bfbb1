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
	"crypto/sha256"
	"encoding/binary"
	"math/big"
)

const (
	// convertBlocks is the number of 7-bit windows above the low 26 bits that
	// the conversion table covers. 26+5*7 = 61 bits, which is enough for any
	// value below 10^16.
	convertBlocks = 5
	convertSlots  = 128
	convertShift  = 26
	convertWindow = 7
	convertMask   = 1<<convertShift - 1

	groupBase   = 100000000 // 10^8, one digit group
	groupDigits = 8

	zerosTableSize   = 10000
	factorsTableSize = 1024
)

// Tables holds the three lookup tables used by the decomposition engine and
// the rounding kernels. A single instance is built during package
// initialization and never written again.
type Tables struct {
	// Convert[j][k] is {V mod 10^8, floor(V/10^8) mod 10^8} for
	// V = k*2^(26+7*j).
	Convert [convertBlocks][convertSlots][2]uint32
	// PackedZeros holds, for even k < 10000, the greatest i such that 10^i
	// divides k, at bits (k&7)..(k&7)+1 of byte k>>3. k = 0 is stored as 3.
	PackedZeros [zerosTableSize / 8]uint8
	// Factors[k-1] is {v2(k), v5(k)} for k in [1, 1024].
	Factors [factorsTableSize][2]uint8
}

var tables *Tables

func init() {
	t, err := GenerateTables()
	if err != nil {
		panic(err)
	}
	tables = t
}

// GenerateTables computes the lookup tables from their definitions. Every
// entry is checked against an exact big.Int computation; a mismatch is a
// GenerationError.
func GenerateTables() (*Tables, error) {
	t := new(Tables)
	if err := t.genConvert(); err != nil {
		return nil, err
	}
	if err := t.genPackedZeros(); err != nil {
		return nil, err
	}
	if err := t.genFactors(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tables) genConvert() error {
	base := big.NewInt(groupBase)
	mod := new(big.Int).Mul(base, base)
	v := new(big.Int)
	q := new(big.Int)
	r := new(big.Int)
	check := new(big.Int)
	for j := 0; j < convertBlocks; j++ {
		for k := 0; k < convertSlots; k++ {
			v.SetInt64(int64(k))
			v.Lsh(v, uint(convertShift+convertWindow*j))
			q.QuoRem(v, base, r)
			q.Mod(q, base)
			if !r.IsUint64() || !q.IsUint64() || r.Uint64() >= groupBase || q.Uint64() >= groupBase {
				return GenerationError.New("convert[%d][%d]: digits out of range", j, k)
			}
			lo, hi := uint32(r.Uint64()), uint32(q.Uint64())

			// The dropped third digit must vanish modulo 10^16.
			check.SetUint64(uint64(hi))
			check.Mul(check, base)
			check.Add(check, r)
			check.Sub(v, check)
			if check.Mod(check, mod).Sign() != 0 {
				return GenerationError.New("convert[%d][%d]: %s != %d + %d*10^8 (mod 10^16)", j, k, v, lo, hi)
			}
			t.Convert[j][k] = [2]uint32{lo, hi}
		}
	}
	return nil
}

func (t *Tables) genPackedZeros() error {
	for k := 0; k < zerosTableSize; k += 2 {
		n := decimalZeros(uint32(k))
		if k == 0 {
			n = 3
		}
		if n > 3 {
			return GenerationError.New("packed zeros: %d has %d trailing zeros", k, n)
		}
		t.PackedZeros[k>>3] |= uint8(n << uint(k&7))
	}
	// Unpack everything again so the layout is validated against the packing
	// formula, not just assumed.
	for k := 2; k < zerosTableSize; k += 2 {
		if got, want := t.trailingZeros10000(uint32(k)), decimalZeros(uint32(k)); got != want {
			return GenerationError.New("packed zeros: %d unpacks to %d, want %d", k, got, want)
		}
	}
	return nil
}

func (t *Tables) genFactors() error {
	for k := uint32(1); k <= factorsTableSize; k++ {
		twos, fives := 0, 0
		for x := k; x%2 == 0; x /= 2 {
			twos++
		}
		for x := k; x%5 == 0; x /= 5 {
			fives++
		}
		if twos > 10 || fives > 4 {
			return GenerationError.New("factors: %d = 2^%d 5^%d", k, twos, fives)
		}
		t.Factors[k-1] = [2]uint8{uint8(twos), uint8(fives)}
	}
	return nil
}

// Hex SHA-256 digests, in the layout of Digests, of the tables published
// with the Intel decimal library.
const (
	ConvertDigest     = "210975f4557bdd18cf79602339f8b550aa0d992ed9369d7d4206aae61ca475ed"
	PackedZerosDigest = "2e76b697a4b277af33d363120938bd94efe0349a5c55a39eb4e642de2d577cab"
	FactorsDigest     = "ab1b4530fea563e8a4ad61271ff7754ea57dbfc9ebbdf83310e70043b4178aeb"
)

// Digests returns the SHA-256 of each table: Convert as little-endian 32-bit
// words in index order, PackedZeros as is, and Factors as flattened pairs.
// They let a regenerated copy be checked bit for bit against published data.
func (t *Tables) Digests() (convert, packedZeros, factors [sha256.Size]byte) {
	buf := make([]byte, 0, convertBlocks*convertSlots*2*4)
	for j := range t.Convert {
		for k := range t.Convert[j] {
			for _, v := range t.Convert[j][k] {
				var w [4]byte
				binary.LittleEndian.PutUint32(w[:], v)
				buf = append(buf, w[:]...)
			}
		}
	}
	convert = sha256.Sum256(buf)
	packedZeros = sha256.Sum256(t.PackedZeros[:])
	buf = buf[:0]
	for _, f := range t.Factors {
		buf = append(buf, f[0], f[1])
	}
	factors = sha256.Sum256(buf)
	return convert, packedZeros, factors
}

// decimalZeros counts trailing decimal zeros by repeated division. It is only
// used to build and verify the tables.
func decimalZeros(k uint32) int {
	if k == 0 {
		return 0
	}
	n := 0
	for k%10 == 0 {
		k /= 10
		n++
	}
	return n
}

func (t *Tables) trailingZeros10000(k uint32) int {
	if k&1 != 0 {
		return 0
	}
	return int(t.PackedZeros[k>>3]>>(k&7)) & 3
}

// ConvertEntry returns the conversion table entry for block j and slot k as
// {remainder digit, carry into the next digit}.
func ConvertEntry(j, k int) [2]uint32 {
	return tables.Convert[j][k]
}

// TrailingZeros10000 returns the number of trailing decimal zeros of k, for
// 0 < k < 10000. Odd k have none and are not stored. Zero reports 3.
func TrailingZeros10000(k uint32) int {
	return tables.trailingZeros10000(k)
}

// Factors returns the exponents of 2 and 5 in k, for 1 <= k <= 1024.
func Factors(k uint32) (twos, fives int) {
	f := tables.Factors[k-1]
	return int(f[0]), int(f[1])
}

// SmallFactor returns k with every factor of ten removed, and the number of
// factors removed, for k <= 1024. SmallFactor(0) is (0, 0).
func SmallFactor(k uint32) (factor uint32, zeros int) {
	if k == 0 {
		return 0, 0
	}
	twos, fives := Factors(k)
	zeros = twos
	if fives < zeros {
		zeros = fives
	}
	return k / uint32(pow10u64[zeros]), zeros
}

// digitsLookupTable is used to map binary digit counts to their corresponding
// decimal border values. The map relies on the proof that (without leading zeros)
// for any given number of binary digits r, such that the number represented is
// between 2^r and 2^(r+1)-1, there are only two possible decimal digit counts
// k and k+1 that the binary r digits could be representing.
//
// Using this proof, for a given digit count, the map will return the lower number
// of decimal digits (k) the binary digit count could represent, along with the
// value of the border between the two decimal digit counts (10^k).
const digitsTableSize = 128

var digitsLookupTable [digitsTableSize + 1]tableVal

type tableVal struct {
	digits int
	border Uint128
}

func init() {
	curVal := big.NewInt(1)
	for i := 1; i <= digitsTableSize; i++ {
		if i > 1 {
			curVal.Lsh(curVal, 1)
		}

		elem := &digitsLookupTable[i]
		elem.digits = len(curVal.String())
		if elem.digits < len(pow10) {
			elem.border = pow10[elem.digits]
		}
	}
}

// numDigits128 returns the number of decimal digits of x. Zero has one digit.
func numDigits128(x Uint128) int {
	bl := x.BitLen()
	if bl == 0 {
		return 1
	}
	val := digitsLookupTable[bl]
	if val.digits >= len(pow10) {
		// 10^39 does not fit in 128 bits, so nothing reaches the border.
		return val.digits
	}
	if x.Cmp(val.border) < 0 {
		return val.digits
	}
	return val.digits + 1
}
