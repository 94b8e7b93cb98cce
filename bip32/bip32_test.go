package bip32

import (
	"encoding/hex"
	"errors"
	"slices"
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

const h = hdkeychain.HardenedKeyStart

// Test vector 1 of BIP-32.
const masterXprv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want Path
	}{
		{"m", nil},
		{"", nil},
		{"m/44h/145h/0h/0/5", Path{44 + h, 145 + h, 0 + h, 0, 5}},
		{"m/44'/145'/0'", Path{44 + h, 145 + h, 0 + h}},
		{"0/1", Path{0, 1}},
		{"m/2147483647h", Path{2147483647 + h}},
		{"M", nil},
		{"M/44h/0", Path{44 + h, 0}},
	}
	for _, test := range tests {
		got, err := ParsePath(test.path)
		if err != nil {
			t.Fatalf("%q: %v", test.path, err)
		}
		if !slices.Equal(got, test.want) {
			t.Errorf("%q parsed to %v, expected %v", test.path, got, test.want)
		}
	}
	if got, want := (Path{44 + h, 145 + h, 0 + h, 0, 5}).String(), "m/44h/145h/0h/0/5"; got != want {
		t.Errorf("path formatted as %q, expected %q", got, want)
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, p := range []string{"m/", "m//1", "m/x", "m/1hh", "m/-1", "m/2147483648", "M/", "mM/1", "x/1"} {
		if _, err := ParsePath(p); !errors.Is(err, errInvalidPath) {
			t.Errorf("%q parsed with error %v, expected %v", p, err, errInvalidPath)
		}
	}
}

func TestDerivePubKey(t *testing.T) {
	master, err := hdkeychain.NewKeyFromString(masterXprv)
	if err != nil {
		t.Fatal(err)
	}
	pub, err := DerivePubKey(master, Path{0 + h})
	if err != nil {
		t.Fatal(err)
	}
	const want = "035a784662a4a20a65bf6aab9ae98a6c068a81c52e4b032c0fb5400c706cfccc56"
	if got := hex.EncodeToString(pub.SerializeCompressed()); got != want {
		t.Errorf("m/0h public key %s, expected %s", got, want)
	}
	// Unhardened derivation from the public key matches.
	xpub, err := master.Neuter()
	if err != nil {
		t.Fatal(err)
	}
	path := Path{0, 1, 2}
	priv, err := DerivePubKey(master, path)
	if err != nil {
		t.Fatal(err)
	}
	public, err := DerivePubKey(xpub, path)
	if err != nil {
		t.Fatal(err)
	}
	if !priv.IsEqual(public) {
		t.Errorf("%s derived differently from private and public keys", path)
	}
	if _, err := DerivePubKey(xpub, Path{0 + h}); err == nil {
		t.Error("hardened derivation from a public key succeeded")
	}
}
