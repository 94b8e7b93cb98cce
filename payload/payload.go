// Package payload builds the symbol sequences the CashAddr checksum is
// computed over: the expanded prefix, the packed version and hash, and
// the checksum placeholders.
//
// Mapping symbols to and from the base32 alphabet is left to the caller.
package payload

import (
	"errors"
	"fmt"
	"slices"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"seedhammer.com/cashaddr/checksum"
)

// Type is the kind of hash carried by an address.
type Type uint8

const (
	PubKeyHash Type = 0
	ScriptHash Type = 1
)

func (t Type) String() string {
	switch t {
	case PubKeyHash:
		return "p2pkh"
	case ScriptHash:
		return "p2sh"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Errors returned by ExpandPrefix and Template for malformed prefixes,
// and by Pack for unsupported types and hash lengths.
var (
	ErrInvalidPrefix   = errors.New("invalid prefix")
	ErrInvalidType     = errors.New("invalid type")
	ErrInvalidHashSize = errors.New("invalid hash size")
)

// hashSizes lists the supported hash lengths in bytes, indexed
// by their size code in the version byte.
var hashSizes = [...]int{20, 24, 28, 32, 40, 48, 56, 64}

// ExpandPrefix returns the lower 5 bits of every prefix character,
// followed by a zero separator.
func ExpandPrefix(prefix string) ([]byte, error) {
	if prefix == "" {
		return nil, fmt.Errorf("payload: empty prefix: %w", ErrInvalidPrefix)
	}
	hasLower, hasUpper := false, false
	syms := make([]byte, 0, len(prefix)+1)
	for i := range len(prefix) {
		c := prefix[i]
		switch {
		case c < '!' || '~' < c, c == ':':
			return nil, fmt.Errorf("payload: character %q in %q: %w", c, prefix, ErrInvalidPrefix)
		case 'a' <= c && c <= 'z':
			hasLower = true
		case 'A' <= c && c <= 'Z':
			hasUpper = true
		}
		syms = append(syms, c&0x1f)
	}
	if hasLower && hasUpper {
		return nil, fmt.Errorf("payload: mixed case prefix %q: %w", prefix, ErrInvalidPrefix)
	}
	return append(syms, 0), nil
}

// Pack encodes the version byte for t and the length of hash,
// followed by hash, as 5-bit symbols. The final symbol is padded
// with zero bits.
func Pack(t Type, hash []byte) ([]byte, error) {
	if t > 0xf {
		return nil, fmt.Errorf("payload: %s: %w", t, ErrInvalidType)
	}
	size := slices.Index(hashSizes[:], len(hash))
	if size == -1 {
		return nil, fmt.Errorf("payload: %d byte hash: %w", len(hash), ErrInvalidHashSize)
	}
	data := make([]byte, 0, 1+len(hash))
	data = append(data, byte(t)<<3|byte(size))
	data = append(data, hash...)
	syms, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	return syms, nil
}

// Template returns the sequence to compute the checksum over: the
// expanded prefix, the data symbols and the zero placeholders.
func Template(prefix string, data []byte) ([]byte, error) {
	tmpl, err := ExpandPrefix(prefix)
	if err != nil {
		return nil, err
	}
	tmpl = slices.Grow(tmpl, len(data)+checksum.Len)
	tmpl = append(tmpl, data...)
	var placeholders [checksum.Len]byte
	return append(tmpl, placeholders[:]...), nil
}

// Splice returns a copy of tmpl with the trailing placeholders
// replaced by sum. It panics if tmpl is shorter than the placeholders.
func Splice(tmpl []byte, sum [checksum.Len]byte) []byte {
	n := len(tmpl) - checksum.Len
	res := slices.Clone(tmpl)
	copy(res[n:], sum[:])
	return res
}

// Checksum returns the data symbols of an address with the given
// prefix, type and hash, followed by their checksum.
func Checksum(prefix string, t Type, hash []byte) ([]byte, error) {
	data, err := Pack(t, hash)
	if err != nil {
		return nil, err
	}
	tmpl, err := Template(prefix, data)
	if err != nil {
		return nil, err
	}
	sum, err := checksum.Sum(tmpl)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	full := Splice(tmpl, sum)
	// Drop the expanded prefix and its separator.
	return full[len(prefix)+1:], nil
}
