// Package bcd holds unpacked binary coded decimal numbers and the densely
// packed decimal declet codec used by the DPD encodings.
package bcd

import "strings"

// Number represents an unsigned decimal integer, one digit per element, in
// reverse order as written. That is, [0] is the 1s digit, [1] 10s, [2] 100s,
// etc. 0 is represented by nil or an empty slice.
type Number []Digit

// Digit is a single decimal digit.
type Digit uint8

const (
	base       = 10
	groupBase  = 100000000
	groupWidth = 8
)

// NewNumber makes a new Number with value x.
func NewNumber(x uint64) Number {
	if x == 0 {
		return nil
	}
	var arr [20]Digit
	i := 0
	for ; x != 0; i++ {
		arr[i] = Digit(x % base)
		x /= base
	}
	a := make(Number, i)
	copy(a, arr[:i])
	return a
}

// NewNumberString makes a new Number with value s. s must contain only
// characters 0-9. The second return value is false otherwise.
func NewNumberString(s string) (Number, bool) {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return nil, true
	}
	x := make(Number, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, false
		}
		x[len(x)-i-1] = Digit(c - '0')
	}
	return x, true
}

// FromGroups makes a Number from base-10^8 groups, least significant first.
func FromGroups(groups []uint32) Number {
	x := make(Number, 0, len(groups)*groupWidth)
	for _, g := range groups {
		for j := 0; j < groupWidth; j++ {
			x = append(x, Digit(g%base))
			g /= base
		}
	}
	return x.trim()
}

// FromTriples makes a Number from three-digit values, least significant
// first, topped by the single digit msd.
func FromTriples(triples []uint16, msd Digit) Number {
	x := make(Number, 0, len(triples)*3+1)
	for _, t := range triples {
		x = append(x, Digit(t%10), Digit(t/10%10), Digit(t/100))
	}
	x = append(x, msd)
	return x.trim()
}

func (a Number) trim() Number {
	n := len(a)
	for n > 0 && a[n-1] == 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	return a[:n]
}

// Digit returns digit i, or 0 past the most significant digit.
func (a Number) Digit(i int) Digit {
	if i >= len(a) {
		return 0
	}
	return a[i]
}

// Triple returns the value of digits 3i+2, 3i+1 and 3i read as one number.
func (a Number) Triple(i int) uint16 {
	return uint16(a.Digit(3*i)) + 10*uint16(a.Digit(3*i+1)) + 100*uint16(a.Digit(3*i+2))
}

// Groups returns a as base-10^8 groups, least significant first. Zero is a
// single zero group.
func (a Number) Groups() []uint32 {
	n := (len(a) + groupWidth - 1) / groupWidth
	if n == 0 {
		return []uint32{0}
	}
	g := make([]uint32, n)
	for i := len(a) - 1; i >= 0; i-- {
		g[i/groupWidth] = g[i/groupWidth]*base + uint32(a[i])
	}
	return g
}

// Uint64 returns a as a uint64. If a cannot be represented in a uint64, it is undefined.
func (a Number) Uint64() uint64 {
	var x uint64
	var m uint64 = 1
	for _, d := range a {
		x += uint64(d) * m
		m *= 10
	}
	return x
}

// Zero returns whether a is 0.
func (a Number) Zero() bool {
	for _, d := range a {
		if d != 0 {
			return false
		}
	}
	return true
}

// Cmp compares a and b, which must not have leading 0s.
func (a Number) Cmp(b Number) int {
	if len(a) > len(b) {
		return 1
	}
	if len(b) > len(a) {
		return -1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] > b[i] {
			return 1
		}
		if a[i] < b[i] {
			return -1
		}
	}
	return 0
}

func (a Number) String() string {
	if len(a) == 0 {
		return "0"
	}
	b := make([]byte, len(a))
	for i, v := range a {
		b[len(b)-i-1] = byte(v + '0')
	}
	return string(b)
}
