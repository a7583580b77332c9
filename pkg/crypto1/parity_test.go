package crypto1

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteParity(t *testing.T) {
	for i := 0; i < 256; i++ {
		ones := bits.OnesCount8(uint8(i))
		require.Equal(t, uint8(ones%2), EvenParity8(uint8(i)))
		require.Equal(t, uint8(1-ones%2), OddParity8(uint8(i)))
	}
}

func TestWordParityFold(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := rng.Uint32()
		require.Equal(t, uint8(bits.OnesCount32(x)%2), EvenParity32(x))
		require.Equal(t, EvenParity32(x)^1, OddParity32(x))
	}
}
