package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModulusBits(t *testing.T) {
	require.Equal(t, uint64(1), ModulusBits[0])
	for i := 1; i < 32; i++ {
		require.Equal(t, uint64(0), ModulusBits[i], i)
	}
	for i := 32; i < NumBits; i++ {
		require.Equal(t, uint64(1), ModulusBits[i], i)
	}

	var v uint64
	for i, b := range ModulusBits {
		v |= b << i
	}
	require.Equal(t, Modulus, v)
}

func TestSigned(t *testing.T) {
	require.Equal(t, int64(0), Signed(NewElement(0)))
	require.Equal(t, int64(42), Signed(NewElement(42)))
	require.Equal(t, int64(-1), Signed(FromInt64(-1)))
	require.Equal(t, int64(-1234567), Signed(FromInt64(-1234567)))

	// 2^63 - 1 is below the sign bit.
	require.Equal(t, int64(math.MaxInt64), Signed(NewElement(math.MaxInt64)))
	require.False(t, IsNegative(NewElement(math.MaxInt64)))

	// 2^63 has the sign bit set and represents 2^63 - p.
	require.True(t, IsNegative(NewElement(1<<63)))
	require.Equal(t, -int64(Modulus-(1<<63)), Signed(NewElement(1<<63)))
}

func TestBitDecompose(t *testing.T) {
	for _, v := range []uint64{0, 1, 2, 0xdeadbeef, Modulus - 1, 1 << 63} {
		bits := BitDecomposeUint64(v)
		require.Len(t, bits, NumBits)
		for i := range bits {
			require.Equal(t, (v>>i)&1, bits[i].Uint64())
		}
		require.Equal(t, NewElement(v), Recompose(bits))
	}
}

func TestExpInverse(t *testing.T) {
	x := NewElement(7)
	require.Equal(t, NewElement(1), Exp(x, Modulus-1))
	require.Equal(t, NewElement(343), Exp(x, 3))

	inv, err := Inverse(x)
	require.NoError(t, err)
	var one Element
	one.Mul(&inv, &x)
	require.Equal(t, uint64(1), one.Uint64())

	_, err = Inverse(Element{})
	require.Error(t, err)
}
