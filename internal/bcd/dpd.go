package bcd

// A declet packs three decimal digits into 10 bits. Digits 0-7 are "small"
// and keep their three low bits; 8 and 9 are "large" and keep only their low
// bit, with the freed bits naming which digits are large.
var (
	toDeclet   [1000]uint16
	fromDeclet [1024]uint16
)

func init() {
	for v := 0; v < 1000; v++ {
		toDeclet[v] = encodeDeclet(uint16(v/100), uint16(v/10%10), uint16(v%10))
	}
	for d := 0; d < 1024; d++ {
		fromDeclet[d] = decodeDeclet(uint16(d))
	}
}

// encodeDeclet packs the digits hundreds, tens and units, following the
// IEEE 754-2008 table. Writing the digits as bits abcd efgh ijkm, the
// large-digit indicators are a, e and i.
func encodeDeclet(d2, d1, d0 uint16) uint16 {
	bcd := func(d uint16) (hi, lo uint16) { return d >> 1 & 3, d & 1 }
	_, h2 := bcd(d2)  // d
	b1, h1 := bcd(d1) // fg, h
	b0, h0 := bcd(d0) // jk, m
	switch l2, l1, l0 := d2 >= 8, d1 >= 8, d0 >= 8; {
	case !l2 && !l1 && !l0:
		return d2<<7 | d1<<4 | d0
	case !l2 && !l1 && l0:
		return d2<<7 | d1<<4 | 0x8 | h0
	case !l2 && l1 && !l0:
		return d2<<7 | b0<<5 | h1<<4 | 0xA | h0
	case l2 && !l1 && !l0:
		return b0<<8 | h2<<7 | d1<<4 | 0xC | h0
	case l2 && l1 && !l0:
		return b0<<8 | h2<<7 | h1<<4 | 0xE | h0
	case l2 && !l1 && l0:
		return b1<<8 | h2<<7 | 0x20 | h1<<4 | 0xE | h0
	case !l2 && l1 && l0:
		return d2<<7 | 0x40 | h1<<4 | 0xE | h0
	default:
		return h2<<7 | 0x60 | h1<<4 | 0xE | h0
	}
}

// decodeDeclet unpacks a declet into its three digit value. All 1024 bit
// patterns decode; the 24 non-canonical ones alias canonical values.
func decodeDeclet(d uint16) uint16 {
	pqr := d >> 7 & 7
	stu := d >> 4 & 7
	wxy := d & 7
	r, u, y := d>>7&1, d>>4&1, d&1
	pq, st := d>>8&3, d>>5&3
	var d2, d1, d0 uint16
	if d&0x8 == 0 {
		d2, d1, d0 = pqr, stu, wxy
	} else {
		switch d >> 1 & 3 {
		case 0:
			d2, d1, d0 = pqr, stu, 8+y
		case 1:
			d2, d1, d0 = pqr, 8+u, st<<1|y
		case 2:
			d2, d1, d0 = 8+r, stu, pq<<1|y
		default:
			switch st {
			case 0:
				d2, d1, d0 = 8+r, 8+u, pq<<1|y
			case 1:
				d2, d1, d0 = 8+r, pq<<1|u, 8+y
			case 2:
				d2, d1, d0 = pqr, 8+u, 8+y
			default:
				d2, d1, d0 = 8+r, 8+u, 8+y
			}
		}
	}
	return d2*100 + d1*10 + d0
}

// EncodeDeclet returns the canonical declet of v < 1000.
func EncodeDeclet(v uint16) uint16 {
	return toDeclet[v]
}

// DecodeDeclet returns the value of the 10-bit declet d.
func DecodeDeclet(d uint16) uint16 {
	return fromDeclet[d&0x3FF]
}

// Canonical reports whether d is the declet EncodeDeclet produces for its
// value.
func Canonical(d uint16) bool {
	return toDeclet[fromDeclet[d&0x3FF]] == d&0x3FF
}

// Declets packs the low 3*n digits of a into n declets, least significant
// first.
func (a Number) Declets(n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = EncodeDeclet(a.Triple(i))
	}
	return out
}
