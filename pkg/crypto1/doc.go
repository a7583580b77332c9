/*
Package crypto1 implements the Crypto1 stream cipher and nonce
generator used by MIFARE Classic tags.

The cipher is a 48-bit LFSR with a nonlinear output filter, and the
package carries it in two interchangeable forms:

  - State is the packed form: two uint32 half-registers holding the odd
    and even numbered cells. It supports stepping backwards (Rollback*)
    and direct access to the halves, which is what key recovery tools
    want.
  - Cipher is the split-byte form used for live traffic: each half is
    three bytes indexed straight into precomputed filter tables, with
    the protocol operations (Setup, Auth, keystream draws, frame
    encryption with embedded parity) built on top.

Both forms produce identical keystream; State and SetState convert
between them at byte boundaries.

SuccessorN and ClockPRNG model the 16-bit tag nonce generator, and
NonceIter enumerates the nonces consistent with observed keystream
bits.

# Bit ordering

Bytes enter and leave the cipher least significant bit first, matching
ISO 14443 transmission order. 32-bit words are handled most significant
byte first, so a word reads the same as its four bytes on the wire.
*/
package crypto1
