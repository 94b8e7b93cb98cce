// package bip32 contains helper functions for deriving keys from bitcoin
// bip32 extended keys.
package bip32

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Path is a derivation path. Hardened elements are offset by
// [hdkeychain.HardenedKeyStart].
type Path []uint32

var errInvalidPath = errors.New("invalid derivation path")

// ParsePath parses a path such as "m/44h/145h/0h/0/5". The leading
// "m" or "M" is optional, and "'" is accepted in place of "h".
func ParsePath(p string) (Path, error) {
	switch p {
	case "", "m", "M":
		return nil, nil
	}
	if len(p) > 1 && (p[0] == 'm' || p[0] == 'M') && p[1] == '/' {
		p = p[2:]
	}
	var path Path
	for _, e := range strings.Split(p, "/") {
		c, err := ParsePathElement(e)
		if err != nil {
			return nil, err
		}
		path = append(path, c)
	}
	return path, nil
}

// ParsePathElement parses a single, possibly hardened, path element.
func ParsePathElement(e string) (uint32, error) {
	off := uint32(0)
	if n := strings.TrimRight(e, "h'"); len(n) == len(e)-1 {
		e = n
		off = hdkeychain.HardenedKeyStart
	}
	idx, err := strconv.ParseUint(e, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("bip32: %q: %w", e, errInvalidPath)
	}
	return uint32(idx) + off, nil
}

func (p Path) String() string {
	var d strings.Builder
	d.WriteRune('m')
	for _, p := range p {
		d.WriteByte('/')
		idx := p
		if p >= hdkeychain.HardenedKeyStart {
			idx -= hdkeychain.HardenedKeyStart
		}
		d.WriteString(strconv.Itoa(int(idx)))
		if p >= hdkeychain.HardenedKeyStart {
			d.WriteRune('h')
		}
	}
	return d.String()
}

// DerivePubKey derives the public key at path from an extended key.
// Hardened elements require a private extended key.
func DerivePubKey(key *hdkeychain.ExtendedKey, path Path) (*secp256k1.PublicKey, error) {
	for _, c := range path {
		child, err := key.Derive(c)
		if err != nil {
			return nil, fmt.Errorf("bip32: %s: %w", path, err)
		}
		key = child
	}
	return key.ECPubKey()
}
