package iso14443

import (
	"math/rand"
	"testing"
)

// bitwiseCRCA is the straight bit-at-a-time definition, kept as an
// oracle for the table driven version.
func bitwiseCRCA(data []byte) uint16 {
	crc := crcAPreset
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = crc>>1 ^ 0x8408
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

func TestCRCACheckValue(t *testing.T) {
	if got := CRCA([]byte("123456789")); got != 0xBF05 {
		t.Fatalf("CRCA check value = %04X, want BF05", got)
	}
}

func TestCRCAMatchesBitwise(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		data := make([]byte, rng.Intn(32)+1)
		rng.Read(data)
		if got, want := CRCA(data), bitwiseCRCA(data); got != want {
			t.Fatalf("CRCA(%x) = %04X, want %04X", data, got, want)
		}
	}
}

func TestAppendAndCheck(t *testing.T) {
	frame := AppendCRCA([]byte{CmdRead, 0x04})
	if len(frame) != 4 {
		t.Fatalf("frame length = %d, want 4", len(frame))
	}
	if !CheckCRCA(frame) {
		t.Fatal("CheckCRCA rejected a frame it produced")
	}
	frame[1] ^= 0x01
	if CheckCRCA(frame) {
		t.Fatal("CheckCRCA accepted a corrupted frame")
	}
	if CheckCRCA([]byte{0x30}) {
		t.Fatal("CheckCRCA accepted a short frame")
	}
}
