package payload

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"
)

// Prefixes of the Bitcoin Cash networks.
const (
	MainNet = "bitcoincash"
	TestNet = "bchtest"
	RegTest = "bchreg"
)

// ErrUnknownNetwork is returned by Prefix for networks without a
// CashAddr prefix. ErrUnsupported is returned by FromLegacy and
// FromScript for address kinds other than P2PKH and P2SH.
var (
	ErrUnknownNetwork = errors.New("unknown network")
	ErrUnsupported    = errors.New("unsupported address")
)

// Prefix returns the address prefix of net.
func Prefix(net *chaincfg.Params) (string, error) {
	switch net.Name {
	case chaincfg.MainNetParams.Name:
		return MainNet, nil
	case chaincfg.TestNet3Params.Name:
		return TestNet, nil
	case chaincfg.RegressionNetParams.Name:
		return RegTest, nil
	default:
		return "", fmt.Errorf("payload: %s: %w", net.Name, ErrUnknownNetwork)
	}
}

// FromLegacy extracts the type and hash of a base58 encoded
// address.
func FromLegacy(addr string, net *chaincfg.Params) (Type, []byte, error) {
	a, err := btcutil.DecodeAddress(addr, net)
	if err != nil {
		return 0, nil, fmt.Errorf("payload: %w", err)
	}
	if !a.IsForNet(net) {
		return 0, nil, fmt.Errorf("payload: %s is not a %s address: %w", addr, net.Name, ErrUnsupported)
	}
	return fromAddress(a)
}

// FromPubKey returns the HASH160 of a SEC1 encoded public key, as
// used by pay-to-public-key-hash addresses. The hash covers the key
// in the encoding it was given in.
func FromPubKey(pub []byte) ([]byte, error) {
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	if len(pub) == secp256k1.PubKeyBytesLenUncompressed {
		return hash160(key.SerializeUncompressed()), nil
	}
	return hash160(key.SerializeCompressed()), nil
}

// FromScript extracts the type and hash of the address paid to
// by a locking script. Bare public key scripts are mapped to their
// public key hash.
func FromScript(script []byte, net *chaincfg.Params) (Type, []byte, error) {
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(script, net)
	if err != nil {
		return 0, nil, fmt.Errorf("payload: %w", err)
	}
	if len(addrs) != 1 {
		return 0, nil, fmt.Errorf("payload: %s script: %w", class, ErrUnsupported)
	}
	switch class {
	case txscript.PubKeyHashTy, txscript.ScriptHashTy, txscript.PubKeyTy:
		return fromAddress(addrs[0])
	default:
		return 0, nil, fmt.Errorf("payload: %s script: %w", class, ErrUnsupported)
	}
}

func fromAddress(a btcutil.Address) (Type, []byte, error) {
	switch a := a.(type) {
	case *btcutil.AddressPubKeyHash:
		return PubKeyHash, a.ScriptAddress(), nil
	case *btcutil.AddressScriptHash:
		return ScriptHash, a.ScriptAddress(), nil
	case *btcutil.AddressPubKey:
		return PubKeyHash, a.AddressPubKeyHash().ScriptAddress(), nil
	default:
		return 0, nil, fmt.Errorf("payload: %T: %w", a, ErrUnsupported)
	}
}

func hash160(b []byte) []byte {
	h := sha256.Sum256(b)
	r := ripemd160.New()
	r.Write(h[:])
	return r.Sum(nil)
}
