// Package hash computes content digests of collections.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

const (
	nullTag  byte = 0x00
	valueTag byte = 0x01
)

// Digest accumulates the xxHash64 of a sequence of nullable values given in
// their literal form.
//
// Every value is framed with a tag byte and a length so that distinct
// sequences never produce the same byte stream.
type Digest struct {
	d   *xxhash.Digest
	tmp [binary.MaxVarintLen64 + 1]byte
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// WriteNull adds a null slot.
func (d *Digest) WriteNull() {
	d.tmp[0] = nullTag
	_, _ = d.d.Write(d.tmp[:1])
}

// WriteValue adds a non-null slot rendered as text.
func (d *Digest) WriteValue(text string) {
	d.tmp[0] = valueTag
	n := binary.PutUvarint(d.tmp[1:], uint64(len(text)))
	_, _ = d.d.Write(d.tmp[:1+n])
	_, _ = d.d.WriteString(text)
}

// Sum64 returns the digest of everything written so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}

// Reset clears the digest for reuse.
func (d *Digest) Reset() {
	d.d.Reset()
}
