package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGF256Arithmetic(t *testing.T) {
	t.Parallel()

	// alpha^8 = alpha^4 + alpha^3 + alpha^2 + 1 under the 0x11d modulus.
	assert.Equal(t, byte(0x1d), gfExp[8])

	for i := 1; i < 256; i++ {
		a := byte(i)
		assert.Equal(t, byte(i), gfExp[gfLog[a]])
		assert.Equal(t, byte(1), gfMul(a, gfInv(a)))
	}

	assert.Equal(t, byte(0), gfMul(0, 0x53))
	assert.Equal(t, gfMul(0x53, 0xca), gfMul(0xca, 0x53))
}

func TestRSGenerator(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{1, 3, 2}, rsGenerator(2))
	assert.Equal(t, []byte{1, 7, 14, 8}, rsGenerator(3))
}

func TestRSEncodeProducesValidCodeword(t *testing.T) {
	t.Parallel()

	data := []byte{0x40, 0xd2, 0x75, 0x47, 0x76, 0x17, 0x32, 0x06,
		0x27, 0x26, 0x96, 0xc6, 0xc6, 0x96, 0x70, 0xec}
	ec := rsEncode(data, 10)
	require.Len(t, ec, 10)

	block := append(append([]byte(nil), data...), ec...)
	_, clean := rsSyndromes(block, 10)
	assert.True(t, clean)
}

func TestRSCorrectRecoversErrors(t *testing.T) {
	t.Parallel()

	data := []byte("credential payload under test!")
	const ecLen = 16

	ec := rsEncode(data, ecLen)
	original := append(append([]byte(nil), data...), ec...)

	tests := []struct {
		name      string
		positions []int
	}{
		{name: "single error", positions: []int{4}},
		{name: "error in parity", positions: []int{len(original) - 2}},
		{name: "half capacity", positions: []int{0, 7, 19, 33}},
		{name: "full capacity", positions: []int{1, 5, 9, 13, 20, 27, 31, 40}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			block := append([]byte(nil), original...)
			for _, p := range tt.positions {
				block[p] ^= 0xa5
			}

			n, err := rsCorrect(block, ecLen)
			require.NoError(t, err)
			assert.Equal(t, len(tt.positions), n)
			assert.Equal(t, original, block)
		})
	}
}

func TestRSCorrectBeyondCapacity(t *testing.T) {
	t.Parallel()

	data := []byte("short")
	const ecLen = 6 // corrects up to 3 errors

	block := append(append([]byte(nil), data...), rsEncode(data, ecLen)...)
	for _, p := range []int{0, 2, 4, 6} {
		block[p] ^= 0xff
	}

	_, err := rsCorrect(block, ecLen)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrecoverable)
}
