package checksum

import "fmt"

// A Digest consumes one symbol at a time and maintains the
// running checksum. The zero value is an empty Digest. It is not
// safe for concurrent use.
type Digest struct {
	// sum is the accumulator xor 1, so that the zero value
	// starts from the seed 1.
	sum uint64
	n   int
}

// New returns an empty Digest.
func New() *Digest {
	return new(Digest)
}

// Reset discards all symbols written so far.
func (d *Digest) Reset() {
	*d = Digest{}
}

// WriteSymbol adds a single symbol.
func (d *Digest) WriteSymbol(v byte) error {
	if v > symbolMask {
		return fmt.Errorf("checksum: symbol %d: %d: %w", d.n, v, ErrSymbolRange)
	}
	d.sum = polymod(d.sum^1, v) ^ 1
	d.n++
	return nil
}

// Write adds every symbol in p. It stops at the first symbol out
// of range and reports how many symbols were consumed.
func (d *Digest) Write(p []byte) (int, error) {
	for i, v := range p {
		if err := d.WriteSymbol(v); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Len returns the number of symbols written.
func (d *Digest) Len() int {
	return d.n
}

// Sum64 returns the checksum of the symbols written so far.
func (d *Digest) Sum64() uint64 {
	return d.sum
}

// Symbols returns the encoded form of Sum64.
func (d *Digest) Symbols() [Len]byte {
	return encode(d.Sum64())
}
