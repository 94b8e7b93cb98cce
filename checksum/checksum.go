// Package checksum implements the BCH checksum of the [CashAddr] address
// format.
//
// The checksum is computed over a sequence of 5-bit symbols: the expanded
// address prefix, the packed payload and eight zero placeholders. The
// resulting 40-bit value is split into eight symbols that replace the
// placeholders.
//
// [CashAddr]: https://github.com/bitcoincashorg/bitcoincash.org/blob/master/spec/cashaddr.md
package checksum

import (
	"errors"
	"fmt"
)

// Len is the number of symbols in an encoded checksum.
const Len = 8

const (
	// symbolBits is the width of a symbol.
	symbolBits = 5
	symbolMask = 1<<symbolBits - 1
	// checksumBits is the width of a checksum.
	checksumBits = Len * symbolBits
	// windowMask selects the 35 accumulator bits that survive a shift.
	windowMask = 1<<(checksumBits-symbolBits) - 1
)

// Errors returned by Compute, Sum and Digest for symbols above 31, and by
// Encode for checksums wider than 40 bits.
var (
	ErrSymbolRange   = errors.New("symbol out of range")
	ErrChecksumRange = errors.New("checksum out of range")
)

// generator holds {2^j}*k(x) for each bit j of the symbol shifted out of
// the accumulator, where k(x) = x^8 mod g(x) and g(x) is the CashAddr
// generator polynomial
//
//	x^8 + {19}x^7 + {3}x^6 + {25}x^5 + {11}x^4 + {25}x^3 + {3}x^2 + {19}x + {1}.
var generator = [symbolBits]uint64{
	0x98f2bc8e61,
	0x79b76d99e2,
	0xf33e5fb3c4,
	0xae2eabe2a8,
	0x1e4f43e470,
}

// Compute returns the checksum of syms. Every symbol must be in [0, 32).
func Compute(syms []byte) (uint64, error) {
	d := New()
	if _, err := d.Write(syms); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}

// Encode splits a checksum into its 5-bit groups, most significant first.
func Encode(sum uint64) ([Len]byte, error) {
	if sum>>checksumBits != 0 {
		return [Len]byte{}, fmt.Errorf("checksum: %#x: %w", sum, ErrChecksumRange)
	}
	return encode(sum), nil
}

// Sum computes and encodes the checksum of syms.
func Sum(syms []byte) ([Len]byte, error) {
	sum, err := Compute(syms)
	if err != nil {
		return [Len]byte{}, err
	}
	return encode(sum), nil
}

func encode(sum uint64) [Len]byte {
	var res [Len]byte
	for i := range len(res) {
		res[i] = byte(sum>>(symbolBits*(Len-1-i))) & symbolMask
	}
	return res
}

// polymod advances the accumulator chk by one symbol.
func polymod(chk uint64, v byte) uint64 {
	top := chk >> (checksumBits - symbolBits)
	chk = (chk&windowMask)<<symbolBits ^ uint64(v)
	for i := range symbolBits {
		if (top>>i)&1 != 0 {
			chk ^= generator[i]
		}
	}
	return chk
}
