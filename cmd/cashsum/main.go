// Command cashsum computes CashAddr checksums over raw 5-bit symbols,
// and the symbol sequences of addresses derived from legacy
// addresses, public keys, locking scripts or raw hashes.
//
// Symbols are read and written as decimal numbers; mapping them to
// the address alphabet is left to other tools.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
	"seedhammer.com/cashaddr/bip32"
	"seedhammer.com/cashaddr/checksum"
	"seedhammer.com/cashaddr/payload"
)

var networks = map[string]*chaincfg.Params{
	"main":    &chaincfg.MainNetParams,
	"test":    &chaincfg.TestNet3Params,
	"regtest": &chaincfg.RegressionNetParams,
}

// config overrides the address prefix of a network, keyed by
// network name ("mainnet", "testnet3", "regtest").
type config struct {
	Prefixes map[string]string `yaml:"prefixes"`
}

func main() {
	if err := run(os.Stdout, os.Stderr, os.Stdin, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "cashsum: %v\n", err)
		os.Exit(2)
	}
}

func run(stdout, stderr io.Writer, stdin io.Reader, args []string) error {
	if len(args) == 0 {
		return errors.New("missing command (polymod, encode, template)")
	}
	cmd := args[0]
	args = args[1:]
	logger := log.NewWithOptions(stderr, log.Options{Prefix: "cashsum"})
	fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.BoolP("verbose", "v", false, "log debug information")
	switch cmd {
	case "polymod":
		if err := parseFlags(fs, logger, verbose, args); err != nil {
			return err
		}
		return polymod(stdout, stdin, logger)
	case "encode":
		if err := parseFlags(fs, logger, verbose, args); err != nil {
			return err
		}
		return encode(stdout, fs.Args())
	case "template":
		t := new(templateFlags)
		t.register(fs)
		if err := parseFlags(fs, logger, verbose, args); err != nil {
			return err
		}
		return template(stdout, logger, t)
	default:
		return fmt.Errorf("unknown command: %q", cmd)
	}
}

func parseFlags(fs *pflag.FlagSet, logger *log.Logger, verbose *bool, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", fs.Name(), err)
	}
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return nil
}

// polymod computes the checksum of the symbols read from stdin.
func polymod(stdout io.Writer, stdin io.Reader, logger *log.Logger) error {
	input, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("polymod: %w", err)
	}
	syms, err := parseSymbols(string(input))
	if err != nil {
		return fmt.Errorf("polymod: %w", err)
	}
	logger.Debug("computing checksum", "symbols", len(syms))
	sum, err := checksum.Compute(syms)
	if err != nil {
		return fmt.Errorf("polymod: %w", err)
	}
	fmt.Fprintf(stdout, "0x%010x\n", sum)
	enc, err := checksum.Encode(sum)
	if err != nil {
		return fmt.Errorf("polymod: %w", err)
	}
	fmt.Fprintln(stdout, formatSymbols(enc[:]))
	return nil
}

func encode(stdout io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.New("encode: specify a single checksum")
	}
	sum, err := strconv.ParseUint(args[0], 0, 64)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	enc, err := checksum.Encode(sum)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	fmt.Fprintln(stdout, formatSymbols(enc[:]))
	return nil
}

type templateFlags struct {
	net    string
	prefix string
	config string
	legacy string
	pubkey string
	script string
	hash   string
	typ    string
	xkey   string
	path   string
}

func (t *templateFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&t.net, "net", "main", "network (main, test, regtest)")
	fs.StringVar(&t.prefix, "prefix", "", "address prefix (overrides the network prefix)")
	fs.StringVar(&t.config, "config", "", "YAML file of network prefixes")
	fs.StringVar(&t.legacy, "legacy", "", "base58 encoded address")
	fs.StringVar(&t.pubkey, "pubkey", "", "hex encoded public key")
	fs.StringVar(&t.script, "script", "", "hex encoded locking script")
	fs.StringVar(&t.hash, "hash", "", "hex encoded hash")
	fs.StringVar(&t.typ, "type", "p2pkh", "hash type for --hash (p2pkh, p2sh)")
	fs.StringVar(&t.xkey, "xkey", "", "extended key (xpub, xprv)")
	fs.StringVar(&t.path, "path", "m", "derivation path for --xkey (e.g. 'm/44h/145h/0h/0/0')")
}

// template prints the data symbols and checksum of an address.
func template(stdout io.Writer, logger *log.Logger, t *templateFlags) error {
	net, ok := networks[t.net]
	if !ok {
		return fmt.Errorf("template: unknown network %q", t.net)
	}
	prefix, err := resolvePrefix(t, net)
	if err != nil {
		return fmt.Errorf("template: %w", err)
	}
	typ, hash, err := source(t, net)
	if err != nil {
		return fmt.Errorf("template: %w", err)
	}
	logger.Debug("address payload", "prefix", prefix, "type", typ, "hash", hex.EncodeToString(hash))
	syms, err := payload.Checksum(prefix, typ, hash)
	if err != nil {
		return fmt.Errorf("template: %w", err)
	}
	sum := syms[len(syms)-checksum.Len:]
	logger.Debug("checksum", "symbols", formatSymbols(sum))
	fmt.Fprintln(stdout, formatSymbols(syms))
	return nil
}

func resolvePrefix(t *templateFlags, net *chaincfg.Params) (string, error) {
	if t.prefix != "" {
		return t.prefix, nil
	}
	if t.config != "" {
		conf, err := loadConfig(t.config)
		if err != nil {
			return "", err
		}
		if p, ok := conf.Prefixes[net.Name]; ok {
			return p, nil
		}
	}
	return payload.Prefix(net)
}

func loadConfig(path string) (*config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	conf := new(config)
	if err := yaml.Unmarshal(b, conf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

// source extracts the address type and hash from exactly one
// of the input flags.
func source(t *templateFlags, net *chaincfg.Params) (payload.Type, []byte, error) {
	n := 0
	for _, s := range []string{t.legacy, t.pubkey, t.script, t.hash, t.xkey} {
		if s != "" {
			n++
		}
	}
	if n != 1 {
		return 0, nil, errors.New("specify exactly one of --legacy, --pubkey, --script, --hash, --xkey")
	}
	switch {
	case t.legacy != "":
		return payload.FromLegacy(t.legacy, net)
	case t.pubkey != "":
		pub, err := hex.DecodeString(t.pubkey)
		if err != nil {
			return 0, nil, fmt.Errorf("pubkey: %w", err)
		}
		hash, err := payload.FromPubKey(pub)
		return payload.PubKeyHash, hash, err
	case t.xkey != "":
		key, err := hdkeychain.NewKeyFromString(t.xkey)
		if err != nil {
			return 0, nil, fmt.Errorf("xkey: %w", err)
		}
		path, err := bip32.ParsePath(t.path)
		if err != nil {
			return 0, nil, err
		}
		pub, err := bip32.DerivePubKey(key, path)
		if err != nil {
			return 0, nil, err
		}
		hash, err := payload.FromPubKey(pub.SerializeCompressed())
		return payload.PubKeyHash, hash, err
	case t.script != "":
		script, err := hex.DecodeString(t.script)
		if err != nil {
			return 0, nil, fmt.Errorf("script: %w", err)
		}
		return payload.FromScript(script, net)
	default:
		hash, err := hex.DecodeString(t.hash)
		if err != nil {
			return 0, nil, fmt.Errorf("hash: %w", err)
		}
		switch strings.ToLower(t.typ) {
		case "p2pkh":
			return payload.PubKeyHash, hash, nil
		case "p2sh":
			return payload.ScriptHash, hash, nil
		default:
			return 0, nil, fmt.Errorf("unknown hash type %q", t.typ)
		}
	}
}

// parseSymbols parses decimal symbols separated by white space
// or commas.
func parseSymbols(s string) ([]byte, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	syms := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid symbol %q", f)
		}
		syms = append(syms, byte(v))
	}
	return syms, nil
}

func formatSymbols(syms []byte) string {
	s := new(strings.Builder)
	for i, v := range syms {
		if i > 0 {
			s.WriteByte(' ')
		}
		s.WriteString(strconv.Itoa(int(v)))
	}
	return s.String()
}
