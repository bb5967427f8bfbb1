package bcd

import (
	"fmt"
	"math"
	"testing"
)

func (a Number) V(t *testing.T) {
	for _, d := range a {
		if d >= base {
			t.Fatalf("bad digit: %d", d)
		}
	}
	if len(a) > 0 && a[len(a)-1] == 0 {
		t.Fatal("leading zero")
	}
}

func TestNewNumber(t *testing.T) {
	tests := []uint64{
		0,
		1,
		9,
		10,
		100,
		1000,
		234567,
		math.MaxUint64,
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc), func(t *testing.T) {
			a := NewNumber(tc)
			a.V(t)
			if a.Cmp(NewNumber(tc)) != 0 {
				t.Fatal("expected equal")
			}
			if i := a.Uint64(); i != tc {
				t.Fatalf("got %d (%v), expected %v", i, a, tc)
			}
			if got, s := a.String(), fmt.Sprint(tc); s != got {
				t.Fatalf("got %s, expected %s", got, s)
			}
			if a.Zero() != (tc == 0) {
				t.Fatalf("Zero() = %t", a.Zero())
			}
		})
	}
}

func TestNewNumberString(t *testing.T) {
	tests := []struct {
		s   string
		out string
		err bool
	}{
		{s: "0", out: "0"},
		{s: "000", out: "0"},
		{s: "", out: "0"},
		{s: "1", out: "1"},
		{s: "0012", out: "12"},
		{s: "123456789012345678901234567890", out: "123456789012345678901234567890"},
		{s: "-1", err: true},
		{s: "e", err: true},
		{s: "1.0", err: true},
	}
	for _, tc := range tests {
		t.Run(tc.s, func(t *testing.T) {
			a, ok := NewNumberString(tc.s)
			if !ok {
				if !tc.err {
					t.Fatal("unexpected error")
				}
				return
			}
			if tc.err {
				t.Fatal("expected error")
			}
			a.V(t)
			if s := a.String(); s != tc.out {
				t.Fatalf("got %s, expected %s", s, tc.out)
			}
		})
	}
}

func TestGroups(t *testing.T) {
	tests := []struct {
		groups []uint32
		s      string
	}{
		{groups: []uint32{0}, s: "0"},
		{groups: []uint32{7}, s: "7"},
		{groups: []uint32{99999999}, s: "99999999"},
		{groups: []uint32{0, 1}, s: "100000000"},
		{groups: []uint32{12345678, 90, 3}, s: "30000009012345678"},
	}
	for _, tc := range tests {
		t.Run(tc.s, func(t *testing.T) {
			a := FromGroups(tc.groups)
			a.V(t)
			if s := a.String(); s != tc.s {
				t.Fatalf("got %s, expected %s", s, tc.s)
			}
			g := a.Groups()
			if fmt.Sprint(g) != fmt.Sprint(tc.groups) {
				t.Fatalf("got groups %v, expected %v", g, tc.groups)
			}
		})
	}
	// High zero groups are dropped.
	if s := FromGroups([]uint32{5, 0, 0}).String(); s != "5" {
		t.Fatalf("got %s", s)
	}
}

func TestTriples(t *testing.T) {
	a := FromTriples([]uint16{567, 234, 1}, 9)
	a.V(t)
	if s := a.String(); s != "9001234567" {
		t.Fatalf("got %s", s)
	}
	for i, want := range []uint16{567, 234, 1, 9, 0} {
		if got := a.Triple(i); got != want {
			t.Errorf("Triple(%d) = %d, expected %d", i, got, want)
		}
	}
	if a := FromTriples([]uint16{0, 0}, 0); !a.Zero() || a != nil {
		t.Fatalf("expected nil zero, got %#v", a)
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b uint64
		c    int
	}{
		{a: 0, b: 0, c: 0},
		{a: 1, b: 0, c: 1},
		{a: 123, b: 1234, c: -1},
		{a: 1234, b: 1243, c: -1},
		{a: 999, b: 998, c: 1},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d, %d", tc.a, tc.b), func(t *testing.T) {
			if c := NewNumber(tc.a).Cmp(NewNumber(tc.b)); c != tc.c {
				t.Fatalf("got %d, expected %d", c, tc.c)
			}
			if c := NewNumber(tc.b).Cmp(NewNumber(tc.a)); c != -tc.c {
				t.Fatalf("reversed: got %d, expected %d", c, -tc.c)
			}
		})
	}
}

func TestEncodeDeclet(t *testing.T) {
	tests := map[uint16]uint16{
		0:   0x000,
		5:   0x005,
		9:   0x009,
		123: 0x0A3,
		777: 0x3F7,
		890: 0x01E,
		909: 0x0AF,
		999: 0x0FF,
	}
	for v, want := range tests {
		if got := EncodeDeclet(v); got != want {
			t.Errorf("EncodeDeclet(%d) = %#03x, expected %#03x", v, got, want)
		}
	}
}

func TestDeclets(t *testing.T) {
	seen := make(map[uint16]bool)
	for v := uint16(0); v < 1000; v++ {
		d := EncodeDeclet(v)
		if d > 0x3FF {
			t.Fatalf("EncodeDeclet(%d) = %#x does not fit in 10 bits", v, d)
		}
		if seen[d] {
			t.Fatalf("EncodeDeclet(%d) = %#x is not unique", v, d)
		}
		seen[d] = true
		if got := DecodeDeclet(d); got != v {
			t.Fatalf("DecodeDeclet(EncodeDeclet(%d)) = %d", v, got)
		}
		if !Canonical(d) {
			t.Fatalf("%#x is not canonical", d)
		}
	}

	nonCanonical := 0
	for d := uint16(0); d < 1024; d++ {
		if v := DecodeDeclet(d); v >= 1000 {
			t.Fatalf("DecodeDeclet(%#x) = %d", d, v)
		}
		if !Canonical(d) {
			nonCanonical++
		}
	}
	if nonCanonical != 24 {
		t.Fatalf("got %d non-canonical declets, expected 24", nonCanonical)
	}

	for d, want := range map[uint16]uint16{0x3FF: 999, 0x37E: 898, 0x16E: 888, 0x2FF: 999, 0x17F: 899} {
		if got := DecodeDeclet(d); got != want {
			t.Errorf("DecodeDeclet(%#x) = %d, expected %d", d, got, want)
		}
		if Canonical(d) {
			t.Errorf("%#x should not be canonical", d)
		}
	}
	// Bits above the low ten are ignored.
	if got := DecodeDeclet(0xC00 | 0x0A3); got != 123 {
		t.Errorf("got %d", got)
	}
}

func TestNumberDeclets(t *testing.T) {
	a, _ := NewNumberString("1234567")
	got := a.Declets(3)
	want := []uint16{EncodeDeclet(567), EncodeDeclet(234), EncodeDeclet(1)}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, expected %v", got, want)
	}
	var back []uint16
	for _, d := range got {
		back = append(back, DecodeDeclet(d))
	}
	if s := FromTriples(back, 0).String(); s != "1234567" {
		t.Fatalf("round trip: %s", s)
	}
	if z := Number(nil).Declets(2); len(z) != 2 || z[0] != 0 || z[1] != 0 {
		t.Fatalf("zero declets: %v", z)
	}
}
