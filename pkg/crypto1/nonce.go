package crypto1

// NonceIter enumerates the tag nonces whose generator seed is
// consistent with a stream of observed keystream bits. filter holds
// the observed bits, size how many of them count; candidate seeds run
// through the whole 16-bit generator period. Seed zero is excluded,
// the generator can never leave it.
type NonceIter struct {
	filter uint32
	size   int
	seed   uint32
}

// ValidNonces returns an iterator over nonces matching the observed
// filter bits. Bit size-1 of filter is checked first.
func ValidNonces(filter uint32, size int) *NonceIter {
	return &NonceIter{filter: filter, size: size}
}

// Reset rewinds the iterator to the start of the seed space.
func (it *NonceIter) Reset() {
	it.seed = 0
}

// Next returns the next matching nonce. ok is false once the seed
// space is exhausted.
func (it *NonceIter) Next() (nonce uint32, ok bool) {
	for it.seed < 0xFFFF {
		it.seed++
		if it.match(it.seed) {
			return SuccessorN(it.seed, 16), true
		}
	}
	return 0, false
}

// match replays the generator from the seed and compares the parity of
// the visible register bits against each observed filter bit. The
// first byte of a nonce is 48 clocks from the seed, later bits 8.
func (it *NonceIter) match(seed uint32) bool {
	m := seed
	for i := it.size - 1; i >= 0; i-- {
		if uint8(it.filter>>uint(i)&1) != EvenParity32(m&0xFF01) {
			return false
		}
		switch {
		case i == 7:
			m = SuccessorN(m, 48)
		case i > 0:
			m = SuccessorN(m, 8)
		}
	}
	return true
}
