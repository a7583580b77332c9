package crypto1

// MIFARE Classic frames carry an odd parity bit after every byte.
// The byte tables are built once at startup; the 32-bit variants fold
// the word down to a byte first.
var (
	oddParityTable  = makeParityTable(1)
	evenParityTable = makeParityTable(0)
)

func makeParityTable(seed uint8) [256]uint8 {
	var t [256]uint8
	for i := range t {
		p := seed
		for b := i; b != 0; b >>= 1 {
			p ^= uint8(b) & 1
		}
		t[i] = p
	}
	return t
}

// OddParity8 returns the bit that brings b up to an odd number of set bits.
func OddParity8(b uint8) uint8 {
	return oddParityTable[b]
}

// EvenParity8 returns the bit that brings b up to an even number of set bits.
func EvenParity8(b uint8) uint8 {
	return evenParityTable[b]
}

// EvenParity32 folds x to a byte and returns its even parity. The LFSR
// feedback only needs the XOR of the tapped bits, so the fold is free to
// reorder them.
func EvenParity32(x uint32) uint8 {
	x ^= x >> 16
	x ^= x >> 8
	return evenParityTable[uint8(x)]
}

// OddParity32 is the odd-parity counterpart of EvenParity32.
func OddParity32(x uint32) uint8 {
	x ^= x >> 16
	x ^= x >> 8
	return oddParityTable[uint8(x)]
}
