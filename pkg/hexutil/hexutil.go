// Package hexutil converts between the integer and byte forms of
// MIFARE Classic keys and other short big-endian quantities.
package hexutil

import (
	"encoding/hex"
	"fmt"
)

// KeySize is the length in bytes of a Crypto1 sector key.
const KeySize = 6

// NumToBytes writes the low len(dst) bytes of n into dst, most
// significant byte first.
func NumToBytes(n uint64, dst []byte) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte(n)
		n >>= 8
	}
}

// BytesToNum interprets src as a big-endian unsigned integer. src must
// be at most 8 bytes long.
func BytesToNum(src []byte) uint64 {
	var n uint64
	for _, b := range src {
		n = n<<8 | uint64(b)
	}
	return n
}

// ParseKey parses a 12 hex digit sector key.
func ParseKey(s string) (uint64, error) {
	if len(s) != KeySize*2 {
		return 0, fmt.Errorf("key %q: want %d hex digits, got %d", s, KeySize*2, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("key %q: %w", s, err)
	}
	return BytesToNum(raw), nil
}

// KeyBytes returns the 6 byte big-endian form of key.
func KeyBytes(key uint64) []byte {
	dst := make([]byte, KeySize)
	NumToBytes(key, dst)
	return dst
}
