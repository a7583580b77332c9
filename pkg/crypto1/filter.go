package crypto1

// The Crypto1 output filter reads twenty bits of the odd half-register
// through a two-layer boolean network: four-bit functions fa and fb
// reduce the five tap groups to a five-bit index, and fc produces the
// keystream bit.

func fa(x3, x2, x1, x0 uint32) uint32 {
	return ((x0 | x1) ^ (x0 & x3)) ^ (x2 & ((x0 ^ x1) | x3))
}

func fb(x3, x2, x1, x0 uint32) uint32 {
	return ((x0 & x1) | x2) ^ ((x0 ^ x1) & (x2 | x3))
}

func fc(x4, x3, x2, x1, x0 uint32) uint32 {
	return (x0 | ((x1 | x4) & (x3 ^ x4))) ^ ((x0 ^ (x1 & x3)) & ((x2 ^ x3) | (x1 & x4)))
}

// Filter evaluates the output filter over the packed odd half-register.
// Bit 0 of x is the newest bit. The nibble constants are the truth
// tables of fa and fb with the tap order of the packed layout, and
// 0xEC57E80A is the truth table of fc.
func Filter(x uint32) uint8 {
	f := uint32(0xf22c0) >> (x & 0xf) & 16
	f |= uint32(0x6c9c0) >> (x >> 4 & 0xf) & 8
	f |= uint32(0x3c8b0) >> (x >> 8 & 0xf) & 4
	f |= uint32(0x1e458) >> (x >> 12 & 0xf) & 2
	f |= uint32(0x0d938) >> (x >> 16 & 0xf) & 1
	return uint8(uint32(0xEC57E80A) >> f & 1)
}

// The split-byte engine evaluates the same network through lookup
// tables indexed directly by the three bytes of the odd half. In that
// layout the oldest bit of a half sits in bit 0 of the first byte, so
// each table entry applies fa or fb to the mirrored tap groups and
// pre-shifts the result into its slot of the fc index.
var filterLayer1 = makeFilterLayer1()

func makeFilterLayer1() [3][256]uint8 {
	var t [3][256]uint8
	for i := 0; i < 256; i++ {
		lo3, lo2, lo1, lo0 := uint32(i)>>3&1, uint32(i)>>2&1, uint32(i)>>1&1, uint32(i)&1
		hi3, hi2, hi1, hi0 := uint32(i)>>7&1, uint32(i)>>6&1, uint32(i)>>5&1, uint32(i)>>4&1
		t[0][i] = uint8(fa(hi3, hi2, hi1, hi0))
		t[1][i] = uint8(fb(lo3, lo2, lo1, lo0)<<1 | fb(hi3, hi2, hi1, hi0)<<2)
		t[2][i] = uint8(fa(lo3, lo2, lo1, lo0)<<3 | fb(hi3, hi2, hi1, hi0)<<4)
	}
	return t
}

// Output layer of fc, pre-shifted to keystream bit positions 0, 3 and 7.
var filterOutB0, filterOutB3, filterOutB7 = makeFilterLayer2()

func makeFilterLayer2() (b0, b3, b7 [32]uint8) {
	for i := uint32(0); i < 32; i++ {
		out := uint8(fc(i>>4&1, i>>3&1, i>>2&1, i>>1&1, i&1))
		b0[i] = out
		b3[i] = out << 3
		b7[i] = out << 7
	}
	return
}

func filterB0(o0, o1, o2 uint8) uint8 {
	return filterOutB0[filterLayer1[0][o0]|filterLayer1[1][o1]|filterLayer1[2][o2]]
}

func filterB3(o0, o1, o2 uint8) uint8 {
	return filterOutB3[filterLayer1[0][o0]|filterLayer1[1][o1]|filterLayer1[2][o2]]
}

func filterB7(o0, o1, o2 uint8) uint8 {
	return filterOutB7[filterLayer1[0][o0]|filterLayer1[1][o1]|filterLayer1[2][o2]]
}
