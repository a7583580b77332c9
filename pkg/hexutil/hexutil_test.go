package hexutil

import (
	"bytes"
	"testing"
)

func TestKeyRoundTrip(t *testing.T) {
	for _, key := range []uint64{0, 0xFFFFFFFFFFFF, 0xA0A1A2A3A4A5, 0x4D3A99C351DD} {
		if got := BytesToNum(KeyBytes(key)); got != key {
			t.Fatalf("round trip of %012X gave %012X", key, got)
		}
	}
}

func TestNumToBytesTruncates(t *testing.T) {
	dst := make([]byte, 2)
	NumToBytes(0x0123456789AB, dst)
	if !bytes.Equal(dst, []byte{0x89, 0xAB}) {
		t.Fatalf("got % X, want 89 AB", dst)
	}
}

func TestParseKey(t *testing.T) {
	key, err := ParseKey("a0a1a2a3a4a5")
	if err != nil {
		t.Fatal(err)
	}
	if key != 0xA0A1A2A3A4A5 {
		t.Fatalf("got %012X", key)
	}
	for _, bad := range []string{"", "a0a1a2a3a4", "a0a1a2a3a4a5a6", "zza1a2a3a4a5"} {
		if _, err := ParseKey(bad); err == nil {
			t.Fatalf("ParseKey(%q) accepted invalid input", bad)
		}
	}
}
