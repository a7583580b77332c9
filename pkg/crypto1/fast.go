package crypto1

import "math/bits"

// Split-byte feedback masks, the 24-bit reversals of polyOdd and
// polyEven.
var (
	lfsrMaskOdd  = [3]uint8{0x94, 0x73, 0x3A}
	lfsrMaskEven = [3]uint8{0xE1, 0x10, 0x20}
)

// Cipher is the split-byte Crypto1 engine used for live traffic. Each
// half-register is held as three bytes with the oldest bit in bit 0 of
// the first byte, so the filter is three table lookups per keystream
// bit and the halves never swap inside a byte. One Cipher is one
// authentication session; the zero value is ready for Setup.
type Cipher struct {
	even [3]uint8
	odd  [3]uint8
}

// splitByte deals the bits of one key byte onto the two halves,
// alternating even, odd, least significant bit first.
func splitByte(even, odd *uint8, b uint8) {
	for i := 0; i < 4; i++ {
		*even = *even>>1 | (b&1)<<7
		b >>= 1
		*odd = *odd>>1 | (b&1)<<7
		b >>= 1
	}
}

func shift24(h *[3]uint8, in uint8) {
	h[0] = h[0]>>1 | h[1]<<7
	h[1] = h[1]>>1 | h[2]<<7
	h[2] = h[2]>>1 | (in&1)<<7
}

// byteFeedback XORs the tapped bits of both halves and folds them to a
// single feedback bit. e is masked with the even polynomial, o with
// the odd one.
func byteFeedback(e, o *[3]uint8) uint8 {
	fb := e[0]&lfsrMaskEven[0] ^ e[1]&lfsrMaskEven[1] ^ e[2]&lfsrMaskEven[2]
	fb ^= o[0]&lfsrMaskOdd[0] ^ o[1]&lfsrMaskOdd[1] ^ o[2]&lfsrMaskOdd[2]
	fb ^= fb >> 4
	fb ^= fb >> 2
	fb ^= fb >> 1
	return fb & 1
}

// feedOdd clocks the register on an even numbered step of a byte: the
// filter half is odd, and the feedback bit shifts into it.
func (c *Cipher) feedOdd(in uint8) {
	fb := byteFeedback(&c.even, &c.odd) ^ in&1
	shift24(&c.odd, fb)
}

// feedEven clocks the register on an odd numbered step of a byte.
func (c *Cipher) feedEven(in uint8) {
	fb := byteFeedback(&c.odd, &c.even) ^ in&1
	shift24(&c.even, fb)
}

func (c *Cipher) loadKey(key []byte) {
	c.even, c.odd = [3]uint8{}, [3]uint8{}
	for i := 0; i < 3; i++ {
		splitByte(&c.even[i], &c.odd[i], key[2*i])
		splitByte(&c.even[i], &c.odd[i], key[2*i+1])
	}
}

// Setup keys the cipher with the 6 byte sector key and runs the 4 byte
// tag nonce through it, encrypting the nonce in place. Each nonce byte
// is XORed with the matching UID byte on its way into the register,
// the way a tag opens an authentication.
func (c *Cipher) Setup(key, uid, nonce []byte) {
	c.loadKey(key)
	for n := 0; n < 4; n++ {
		in := nonce[n] ^ uid[n]
		var ks uint8
		for bit := 0; bit < 8; bit++ {
			if bit&1 == 0 {
				ks = ks>>1 | filterB7(c.odd[0], c.odd[1], c.odd[2])
				c.feedOdd(in)
			} else {
				ks = ks>>1 | filterB7(c.even[0], c.even[1], c.even[2])
				c.feedEven(in)
			}
			in >>= 1
		}
		nonce[n] ^= ks
	}
}

// SetupNested keys the cipher for an authentication inside an already
// encrypted session. The tag nonce is encrypted in place and the
// encrypted parity bit for each nonce byte is stored in parity. With
// decrypt set the nonce bits arriving in the register are treated as
// ciphertext and decrypted with the keystream first.
func (c *Cipher) SetupNested(key, uid, nonce, parity []byte, decrypt bool) {
	c.loadKey(key)
	for n := 0; n < 4; n++ {
		in := nonce[n] ^ uid[n]
		var ks uint8
		for bit := 0; bit < 8; bit++ {
			var out uint8
			if bit&1 == 0 {
				out = filterB0(c.odd[0], c.odd[1], c.odd[2])
			} else {
				out = filterB0(c.even[0], c.even[1], c.even[2])
			}
			ks = ks>>1 | out<<7
			feed := in & 1
			if decrypt {
				feed ^= out
			}
			if bit&1 == 0 {
				c.feedOdd(feed)
			} else {
				c.feedEven(feed)
			}
			in >>= 1
		}
		// Parity is always computed over the plaintext byte. In the
		// decrypt role nonce holds ciphertext, so strip the keystream
		// first.
		plain := nonce[n]
		if decrypt {
			plain ^= ks
		}
		parity[n] = OddParity8(plain) ^ filterB0(c.odd[0], c.odd[1], c.odd[2])
		nonce[n] ^= ks
	}
}

// Auth absorbs the encrypted reader nonce of the second authentication
// pass, decrypting it in place. The decrypted bits feed the register
// so both sides stay in step.
func (c *Cipher) Auth(readerNonce []byte) {
	for n := 0; n < 4; n++ {
		in := readerNonce[n]
		var ks uint8
		for bit := 0; bit < 8; bit++ {
			var out uint8
			if bit&1 == 0 {
				out = filterB0(c.odd[0], c.odd[1], c.odd[2])
				c.feedOdd(in&1 ^ out)
			} else {
				out = filterB0(c.even[0], c.even[1], c.even[2])
				c.feedEven(in&1 ^ out)
			}
			ks |= out << uint(bit)
			in >>= 1
		}
		readerNonce[n] ^= ks
	}
}

// Byte draws eight keystream bits, least significant first.
func (c *Cipher) Byte() uint8 {
	var ks uint8
	for bit := 0; bit < 8; bit++ {
		if bit&1 == 0 {
			ks = ks>>1 | filterB7(c.odd[0], c.odd[1], c.odd[2])
			c.feedOdd(0)
		} else {
			ks = ks>>1 | filterB7(c.even[0], c.even[1], c.even[2])
			c.feedEven(0)
		}
	}
	return ks
}

// Nibble draws four keystream bits in bits 3..0. Two Nibble calls are
// one Byte call.
func (c *Cipher) Nibble() uint8 {
	var ks uint8
	for bit := 0; bit < 4; bit++ {
		if bit&1 == 0 {
			ks = ks>>1 | filterB3(c.odd[0], c.odd[1], c.odd[2])
			c.feedOdd(0)
		} else {
			ks = ks>>1 | filterB3(c.even[0], c.even[1], c.even[2])
			c.feedEven(0)
		}
	}
	return ks
}

// ByteArray XORs keystream over buf in place.
func (c *Cipher) ByteArray(buf []byte) {
	for i := range buf {
		buf[i] ^= c.Byte()
	}
}

// ByteArrayWithParity encrypts buf in place and stores one encrypted
// parity bit per byte. Parity is computed over the plaintext and
// encrypted with the keystream bit that follows the byte.
func (c *Cipher) ByteArrayWithParity(buf, parity []byte) {
	for i := range buf {
		ks := c.Byte()
		parity[i] = OddParity8(buf[i]) ^ filterB0(c.odd[0], c.odd[1], c.odd[2])
		buf[i] ^= ks
	}
}

// ByteArrayWithParityIn is ByteArrayWithParity for frames whose
// plaintext also feeds the register, such as reader commands absorbed
// while emulating a tag.
func (c *Cipher) ByteArrayWithParityIn(buf, parity []byte) {
	for i := range buf {
		in := buf[i]
		var ks uint8
		for bit := 0; bit < 8; bit++ {
			if bit&1 == 0 {
				ks = ks>>1 | filterB7(c.odd[0], c.odd[1], c.odd[2])
				c.feedOdd(in)
			} else {
				ks = ks>>1 | filterB7(c.even[0], c.even[1], c.even[2])
				c.feedEven(in)
			}
			in >>= 1
		}
		parity[i] = OddParity8(buf[i]) ^ filterB0(c.odd[0], c.odd[1], c.odd[2])
		buf[i] ^= ks
	}
}

// lfsrStep clocks the register once in the swapping form used by the
// bit-granular operations. The filter half is always c.odd.
func (c *Cipher) lfsrStep(in uint8) {
	fb := byteFeedback(&c.even, &c.odd) ^ in&1
	t := c.odd
	shift24(&t, fb)
	c.odd = c.even
	c.even = t
}

// EncryptWithParity XORs keystream over the first bitCount bits of a
// raw frame in buf, where every ninth bit is a parity bit. Parity
// positions are encrypted but do not clock the register.
func (c *Cipher) EncryptWithParity(buf []byte, bitCount int) {
	for i := 0; i < bitCount; i++ {
		buf[i/8] ^= filterB0(c.odd[0], c.odd[1], c.odd[2]) << uint(i%8)
		if (i+1)%9 != 0 {
			c.lfsrStep(0)
		}
	}
}

// ReaderAuthWithParity encrypts the 72 bit raw reader answer in place,
// reader nonce first. The plaintext nonce bits feed the register; the
// response half clocks it with no input.
func (c *Cipher) ReaderAuthWithParity(buf []byte) {
	for i := 0; i < 72; i++ {
		in := buf[i/8] >> uint(i%8) & 1
		buf[i/8] ^= filterB0(c.odd[0], c.odd[1], c.odd[2]) << uint(i%8)
		if (i+1)%9 != 0 {
			if i < 36 {
				c.lfsrStep(in)
			} else {
				c.lfsrStep(0)
			}
		}
	}
}

// FilterOutput returns the current filter output without clocking.
func (c *Cipher) FilterOutput() uint8 {
	return filterB0(c.odd[0], c.odd[1], c.odd[2])
}

// StateBytes returns the raw half-registers, oldest bit first.
func (c *Cipher) StateBytes() (even, odd [3]uint8) {
	return c.even, c.odd
}

// State converts the registers to the packed form of the generic
// engine. The two layouts are 24-bit reversals of one another.
func (c *Cipher) State() *State {
	return &State{Odd: packHalf(c.odd), Even: packHalf(c.even)}
}

// SetState loads a packed state, discarding any history bits above
// bit 23.
func (c *Cipher) SetState(s *State) {
	c.odd = splitHalf(s.Odd)
	c.even = splitHalf(s.Even)
}

func packHalf(h [3]uint8) uint32 {
	w := uint32(h[0]) | uint32(h[1])<<8 | uint32(h[2])<<16
	return bits.Reverse32(w) >> 8
}

func splitHalf(w uint32) [3]uint8 {
	w = bits.Reverse32(w) >> 8
	return [3]uint8{uint8(w), uint8(w >> 8), uint8(w >> 16)}
}
