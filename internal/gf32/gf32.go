// Package gf32 implements arithmetic in GF(32), defined as in
// [BIP-0173] with the field polynomial a^5 + a^3 + 1. CashAddr
// uses the same field for its checksum coefficients.
//
// [BIP-0173]: https://bips.dev/173/
package gf32

// logTbl is a logarithm table of each element, as a power of alpha = 2.
//
// Includes 0 as 0 but this is false; 0 has no discrete log and
// callers must special case it.
var logTbl = [32]uint8{
	0, 0, 1, 14, 2, 28, 15, 22,
	3, 5, 29, 26, 16, 7, 23, 11,
	4, 25, 6, 10, 30, 13, 27, 21,
	17, 18, 8, 19, 24, 9, 12, 20,
}

// expTbl maps powers of alpha to the numeric value of the element.
var expTbl = [31]Element{
	1, 2, 4, 8, 16, 9, 18, 13,
	26, 29, 19, 15, 30, 21, 3, 6,
	12, 24, 25, 27, 31, 23, 7, 14,
	28, 17, 11, 22, 5, 10, 20,
}

// Element is an element of GF(32). Valid elements are in [0, 32).
type Element uint8

func (e Element) Add(e2 Element) Element {
	return e ^ e2
}

func (e Element) Mul(e2 Element) Element {
	if e == 0 || e2 == 0 {
		return 0
	}
	log1 := uint16(logTbl[e])
	log2 := uint16(logTbl[e2])
	return expTbl[(log1+log2)%31]
}

func (e Element) Div(e2 Element) Element {
	if e == 0 {
		return 0
	}
	if e2 == 0 {
		panic("divide by zero")
	}
	log1 := uint16(logTbl[e])
	log2 := uint16(logTbl[e2])
	return expTbl[(31+log1-log2)%31]
}

// Pow2 returns the element {2^n} for n in [0, 5), that is the
// element with only bit n set.
func Pow2(n int) Element {
	return Element(1) << n
}

// Poly is a polynomial over GF(32), as a big-endian (highest powers
// first) vector of coefficients.
type Poly []Element

// Scale multiplies every coefficient by e.
func (p Poly) Scale(e Element) Poly {
	res := make(Poly, len(p))
	for i, c := range p {
		res[i] = c.Mul(e)
	}
	return res
}

// Pack packs the coefficients of p into an integer, 5 bits
// per coefficient, highest power in the most significant bits.
// The polynomial must have at most 12 coefficients.
func (p Poly) Pack() uint64 {
	var v uint64
	for _, c := range p {
		v = v<<5 | uint64(c&31)
	}
	return v
}

// Unpack is the inverse of Pack for a polynomial of n coefficients.
func Unpack(v uint64, n int) Poly {
	p := make(Poly, n)
	for i := n - 1; i >= 0; i-- {
		p[i] = Element(v & 31)
		v >>= 5
	}
	return p
}
