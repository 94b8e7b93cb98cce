package gf32

import (
	"slices"
	"testing"
)

func TestMulTable(t *testing.T) {
	// {5} * {26} = (a^2 + 1) * (a^4 + a^3 + a) = a^3 + 1 (mod a^5 + a^3 + 1).
	if got := Element(5).Mul(26); got != 9 {
		t.Errorf("{5}*{26} = {%d}, expected {9}", got)
	}
	for e := range Element(32) {
		if got := e.Mul(1); got != e {
			t.Errorf("{%d}*{1} = {%d}", e, got)
		}
		if got := e.Mul(0); got != 0 {
			t.Errorf("{%d}*{0} = {%d}", e, got)
		}
	}
}

func TestMulMatchesShiftAndReduce(t *testing.T) {
	for a := range Element(32) {
		for b := range Element(32) {
			if got, want := a.Mul(b), slowMul(a, b); got != want {
				t.Fatalf("{%d}*{%d} = {%d}, expected {%d}", a, b, got, want)
			}
		}
	}
}

func TestDivInvertsMul(t *testing.T) {
	for a := range Element(32) {
		for b := Element(1); b < 32; b++ {
			if got := a.Mul(b).Div(b); got != a {
				t.Errorf("({%d}*{%d})/{%d} = {%d}", a, b, b, got)
			}
		}
	}
}

func TestPackUnpack(t *testing.T) {
	p := Poly{19, 3, 25, 11, 25, 3, 19, 1}
	const want = 0x98f2bc8e61
	if got := p.Pack(); got != want {
		t.Errorf("packed %v to %#x, expected %#x", p, got, uint64(want))
	}
	if got := Unpack(want, len(p)); !slices.Equal(got, p) {
		t.Errorf("unpacked %#x to %v, expected %v", uint64(want), got, p)
	}
}

// slowMul multiplies by shifting and reducing modulo a^5 + a^3 + 1.
func slowMul(a, b Element) Element {
	var r uint16
	for i := range 5 {
		if (b>>i)&1 != 0 {
			r ^= uint16(a) << i
		}
	}
	for i := 9; i >= 5; i-- {
		if (r>>i)&1 != 0 {
			r ^= 0b101001 << (i - 5)
		}
	}
	return Element(r)
}
