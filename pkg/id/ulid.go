// Package id generates lexicographically sortable identifiers for storage
// keys and request correlation.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID returns a 26-character ULID: 48 bits of millisecond time followed
// by 80 random bits, Crockford base32 encoded.
func NewULID() string {
	return ulidAt(time.Now())
}

func ulidAt(t time.Time) string {
	var entropy [10]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		binary.BigEndian.PutUint64(entropy[:8], uint64(t.UnixNano()))
	}

	var out [26]byte
	ms := uint64(t.UnixMilli())
	for i := range 10 {
		out[i] = alphabet[(ms>>(45-5*i))&0x1F]
	}

	// Read the entropy 5 bits at a time through a 16-bit window.
	for i := range 16 {
		off := i * 5
		w := uint16(entropy[off/8]) << 8
		if off/8+1 < len(entropy) {
			w |= uint16(entropy[off/8+1])
		}
		out[10+i] = alphabet[(w>>(11-off%8))&0x1F]
	}

	return string(out[:])
}
