package crypto1

import "math/bits"

// The tag nonce generator is a 16-bit LFSR with taps at bits 16, 18,
// 19 and 21 of its 32-bit shift register, clocked at the bit rate.
// Nonces appear on the wire big endian, so the register is byte
// swapped around the shift.

// SuccessorN returns the nonce generator state n clocks after x.
// x and the result are in wire byte order. Every step count runs the
// same loop, including the 1 and 16 clock cases the authentication
// handshake uses.
func SuccessorN(x uint32, n uint32) uint32 {
	x = bits.ReverseBytes32(x)
	for ; n > 0; n-- {
		x = x>>1 | (x>>16^x>>18^x>>19^x>>21)<<31
	}
	return bits.ReverseBytes32(x)
}

// Successor returns the nonce generator state one clock after x.
func Successor(x uint32) uint32 {
	return SuccessorN(x, 1)
}

// ClockPRNG advances a four byte little endian generator state in
// place. clocks must be a multiple of 32; the fold below eats the
// register in 11+11+10 bit chunks, which is only exact on word
// boundaries.
func ClockPRNG(state []byte, clocks uint) {
	x := uint32(state[0]) | uint32(state[1])<<8 | uint32(state[2])<<16 | uint32(state[3])<<24
	for ; clocks >= 32; clocks -= 32 {
		for _, step := range [3]uint{11, 11, 10} {
			fb := uint32(uint16(x >> 16))
			fb ^= fb >> 3
			fb ^= fb >> 2
			x = x>>step | fb<<(32-step)
		}
	}
	state[0] = byte(x)
	state[1] = byte(x >> 8)
	state[2] = byte(x >> 16)
	state[3] = byte(x >> 24)
}
