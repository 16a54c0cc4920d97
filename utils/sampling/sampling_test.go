package sampling

import (
	"testing"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/stretchr/testify/require"
)

func TestKeyedPRNG(t *testing.T) {
	key := []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb}

	prng0, err := NewKeyedPRNG(key)
	require.NoError(t, err)
	prng1, err := NewKeyedPRNG(key)
	require.NoError(t, err)
	require.Equal(t, key, prng0.Key())

	sum0 := make([]byte, 512)
	sum1 := make([]byte, 512)
	for i := 0; i < 16; i++ {
		_, err = prng0.Read(sum0)
		require.NoError(t, err)
		_, err = prng1.Read(sum1)
		require.NoError(t, err)
		require.Equal(t, sum0, sum1)
	}

	// Reset rewinds to the stream of a fresh instance
	fresh, err := NewKeyedPRNG(key)
	require.NoError(t, err)
	prng0.Reset()
	_, err = prng0.Read(sum0)
	require.NoError(t, err)
	_, err = fresh.Read(sum1)
	require.NoError(t, err)
	require.Equal(t, sum0, sum1)

	_, err = NewKeyedPRNG(make([]byte, MaxSeedSize+1))
	require.Error(t, err)
}

func TestSamplers(t *testing.T) {
	prng, err := NewKeyedPRNG([]byte("sampling"))
	require.NoError(t, err)

	t.Run("UniformElements", func(t *testing.T) {
		s, err := UniformElements(prng, 64)
		require.NoError(t, err)
		for i := range s {
			require.Less(t, s[i].Uint64(), field.Modulus)
		}
	})

	t.Run("Bits", func(t *testing.T) {
		s, err := Bits(prng, 100)
		require.NoError(t, err)
		require.Len(t, s, 100)
		for _, b := range s {
			require.LessOrEqual(t, b, uint64(1))
		}
	})

	t.Run("Bounded", func(t *testing.T) {
		for i := 0; i < 256; i++ {
			v, err := Bounded(prng, 3)
			require.NoError(t, err)
			require.GreaterOrEqual(t, v, int64(-3))
			require.LessOrEqual(t, v, int64(3))
		}
		v, err := Bounded(prng, 0)
		require.NoError(t, err)
		require.Zero(t, v)
	})

	t.Run("UniformMod", func(t *testing.T) {
		for i := 0; i < 256; i++ {
			v, err := UniformMod(prng, 17)
			require.NoError(t, err)
			require.Less(t, v, uint64(17))
		}
		_, err := UniformMod(prng, 0)
		require.Error(t, err)
	})
}
