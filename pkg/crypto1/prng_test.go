package crypto1

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuccessorComposes(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 200; i++ {
		x := rng.Uint32()
		a := uint32(rng.Intn(64))
		b := uint32(rng.Intn(64))
		require.Equal(t, SuccessorN(x, a+b), SuccessorN(SuccessorN(x, a), b))
	}
}

func TestSuccessorSingleStep(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		x := rng.Uint32()
		require.Equal(t, SuccessorN(x, 1), Successor(x))
	}
}

func TestSuccessorStuckAtZero(t *testing.T) {
	require.Equal(t, uint32(0), SuccessorN(0, 1))
	require.Equal(t, uint32(0), SuccessorN(0, 1000))
}

func TestClockPRNGMatchesSuccessor(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for _, clocks := range []uint{32, 64, 96, 160} {
		for i := 0; i < 50; i++ {
			var state [4]byte
			rng.Read(state[:])

			want := SuccessorN(binary.BigEndian.Uint32(state[:]), uint32(clocks))
			ClockPRNG(state[:], clocks)
			require.Equal(t, want, binary.BigEndian.Uint32(state[:]), "clocks=%d", clocks)
		}
	}
}

func TestClockPRNGZeroClocks(t *testing.T) {
	state := []byte{0x01, 0x02, 0x03, 0x04}
	ClockPRNG(state, 0)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, state)
}
