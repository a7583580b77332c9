package crypto1

// LFSR feedback taps, split across the two packed half-registers.
const (
	polyOdd  uint32 = 0x29CE5C
	polyEven uint32 = 0x870804
)

// State is the packed form of the 48-bit Crypto1 register: the odd and
// even numbered cells each live in one uint32, newest bit in bit 0.
// This is the representation used by key recovery tooling; the Odd and
// Even halves are exported so such tooling can build states directly.
//
// The halves may carry shifted-out history above bit 23. The cipher
// operations ignore it, and Rollback uses it to restore old state
// exactly, so it is deliberately not masked.
type State struct {
	Odd  uint32
	Even uint32
}

// New returns a state keyed with the low 48 bits of key, loaded most
// significant bit first the way a tag loads a sector key.
func New(key uint64) *State {
	s := &State{}
	for i := 47; i > 0; i -= 2 {
		s.Odd = s.Odd<<1 | uint32(key>>uint((i-1)^7)&1)
		s.Even = s.Even<<1 | uint32(key>>uint(i^7)&1)
	}
	return s
}

// Reset clears the register so the state can be keyed again.
func (s *State) Reset() {
	s.Odd, s.Even = 0, 0
}

// LFSR reconstructs the 48-bit register contents, undoing the
// interleaved layout of New. For a freshly keyed state this returns
// the key.
func (s *State) LFSR() uint64 {
	var lfsr uint64
	for i := 23; i >= 0; i-- {
		lfsr = lfsr<<1 | uint64(s.Odd>>uint(i^3)&1)
		lfsr = lfsr<<1 | uint64(s.Even>>uint(i^3)&1)
	}
	return lfsr
}

// PeekBit returns the keystream bit the next Bit call will produce,
// without advancing the register.
func (s *State) PeekBit() uint8 {
	return Filter(s.Odd)
}

// Bit clocks the register once. in is the input bit; with encrypted
// set, the keystream bit is folded into the feedback as well, which
// decrypts an encrypted input stream as it is absorbed.
func (s *State) Bit(in uint8, encrypted bool) uint8 {
	ret := Filter(s.Odd)

	feedin := uint32(in & 1)
	if encrypted {
		feedin ^= uint32(ret)
	}
	feedin ^= polyOdd & s.Odd
	feedin ^= polyEven & s.Even

	s.Odd, s.Even = s.Even, s.Odd<<1|uint32(EvenParity32(feedin))
	return ret
}

// Byte clocks the register eight times, consuming and producing bits
// least significant first.
func (s *State) Byte(in uint8, encrypted bool) uint8 {
	var ret uint8
	for i := 0; i < 8; i++ {
		ret |= s.Bit(in>>uint(i)&1, encrypted) << uint(i)
	}
	return ret
}

// Word clocks the register 32 times in transmission order: bytes most
// significant first, bits within each byte least significant first.
// The keystream word is assembled the same way.
func (s *State) Word(in uint32, encrypted bool) uint32 {
	var ret uint32
	for i := 0; i < 32; i++ {
		ret |= uint32(s.Bit(uint8(in>>uint(i^24)&1), encrypted)) << uint((24^i)&0x1F)
	}
	return ret
}

// RollbackBit is the inverse of Bit: called with the same input bit and
// encryption flag, it steps the register backwards and returns the
// keystream bit that step produced. The bit shifted off the odd half is
// taken from the history above bit 23 when present; bit 23 of the even
// half is reconstructed from the feedback parity.
func (s *State) RollbackBit(in uint8, encrypted bool) uint8 {
	b := s.Even
	s.Even = s.Odd
	s.Odd = b >> 1

	ret := Filter(s.Odd)

	out := b & 1
	out ^= polyOdd & s.Odd
	out ^= polyEven & s.Even &^ (1 << 23)
	out ^= uint32(in & 1)
	if encrypted {
		out ^= uint32(ret)
	}
	s.Even = s.Even&^(1<<23) | uint32(EvenParity32(out))<<23

	return ret
}

// RollbackByte undoes one Byte call, returning the keystream byte it
// produced.
func (s *State) RollbackByte(in uint8, encrypted bool) uint8 {
	var ret uint8
	for i := 7; i >= 0; i-- {
		ret |= s.RollbackBit(in>>uint(i)&1, encrypted) << uint(i)
	}
	return ret
}

// RollbackWord undoes one Word call, returning the keystream word it
// produced in the same transmission order as Word.
func (s *State) RollbackWord(in uint32, encrypted bool) uint32 {
	var ret uint32
	for i := 31; i >= 0; i-- {
		ret |= uint32(s.RollbackBit(uint8(in>>uint(i^24)&1), encrypted)) << uint((24^i)&0x1F)
	}
	return ret
}
