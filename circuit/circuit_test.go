package circuit

import (
	"testing"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/arith"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/gadget"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/ring"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils/sampling"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

func TestNTTCircuit(t *testing.T) {

	params, err := ring.NewParameters(3)
	require.NoError(t, err)

	prng, err := sampling.NewKeyedPRNG([]byte("ntt circuit"))
	require.NoError(t, err)

	in, err := sampling.UniformElements(prng, params.N())
	require.NoError(t, err)

	out := ring.Forward[field.Element](arith.NewNative(), params, in)

	assignment := NewNTTCircuit(params)
	assignment.In = ValuesOf(in)
	assignment.Out = ValuesOf(out)

	require.NoError(t, test.IsSolved(NewNTTCircuit(params), assignment, ecc.BN254.ScalarField()))

	// a wrong output is rejected
	out[2] = field.NewElement(out[2].Uint64() ^ 1)
	assignment.Out = ValuesOf(out)
	require.Error(t, test.IsSolved(NewNTTCircuit(params), assignment, ecc.BN254.ScalarField()))
}

func TestDecompositionCircuit(t *testing.T) {

	const logBase = 8

	for _, x := range []field.Element{
		field.NewElement(0xdeadbeef),
		field.FromInt64(-424242),
	} {
		assignment := NewDecompositionCircuit(logBase)
		assignment.X = ValueOf(x)
		assignment.Bits = ValuesOf(field.BitDecompose(x))
		assignment.Digits = ValuesOf(gadget.DecomposeNativeElements(x, logBase))

		require.NoError(t, test.IsSolved(NewDecompositionCircuit(logBase), assignment, ecc.BN254.ScalarField()))

		// bits of another value are rejected
		var y field.Element
		y.Add(&x, ptr(field.NewElement(1)))
		assignment.Bits = ValuesOf(field.BitDecompose(y))
		require.Error(t, test.IsSolved(NewDecompositionCircuit(logBase), assignment, ecc.BN254.ScalarField()))
	}
}

func ptr(e field.Element) *field.Element {
	return &e
}
