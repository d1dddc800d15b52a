// Package hash derives shape identifiers and payload fingerprints with xxHash64.
package hash

import "github.com/cespare/xxhash/v2"

// ID returns the xxHash64 of a shape name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Fingerprint returns the xxHash64 of an encoded payload.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest accumulates a fingerprint over many payloads.
//
// Every payload is length-prefixed, so the sequences {"ab", "c"} and {"a", "bc"} differ.
type Digest struct {
	d   *xxhash.Digest
	buf [4]byte
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Add appends one payload.
func (d *Digest) Add(data []byte) {
	n := uint32(len(data)) //nolint:gosec
	d.buf = [4]byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
	_, _ = d.d.Write(d.buf[:])
	_, _ = d.d.Write(data)
}

// Sum64 returns the fingerprint of all payloads added so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
