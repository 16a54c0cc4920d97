package ring

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/arith"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils/sampling"
	"github.com/stretchr/testify/require"
)

var testLogN = []int{1, 3, 5, 8}

func testString(opname string, p Parameters) string {
	return fmt.Sprintf("%s/LogN=%d", opname, p.LogN())
}

func randomPoly(t *testing.T, prng sampling.PRNG, N int) []field.Element {
	p, err := sampling.UniformElements(prng, N)
	require.NoError(t, err)
	return p
}

// mulNegacyclic is the schoolbook product in Z_p[X]/(X^N + 1).
func mulNegacyclic(a, b []field.Element) []field.Element {
	N := len(a)
	out := make([]field.Element, N)
	var tmp field.Element
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			tmp.Mul(&a[i], &b[j])
			if k := i + j; k < N {
				out[k].Add(&out[k], &tmp)
			} else {
				out[k-N].Sub(&out[k-N], &tmp)
			}
		}
	}
	return out
}

func TestParameters(t *testing.T) {

	_, err := NewParameters(0)
	require.Error(t, err)
	_, err = NewParameters(MaxLogN + 1)
	require.Error(t, err)

	for _, logN := range testLogN {
		params, err := NewParameters(logN)
		require.NoError(t, err)

		t.Run(testString("Roots", params), func(t *testing.T) {
			require.NoError(t, CheckPrimitiveRoot(params.PrimitiveRoot(), field.Modulus, Factors))

			psi := field.NewElement(params.Psi())
			require.Equal(t, field.NewElement(1), field.Exp(psi, uint64(params.NthRoot())))
			require.NotEqual(t, field.NewElement(1), field.Exp(psi, uint64(params.N())))

			fwd := params.RootsForward()
			bwd := params.RootsBackward()
			require.Equal(t, uint64(1), fwd[0])
			require.Equal(t, uint64(1), bwd[0])
			for i := range fwd {
				var prod field.Element
				a, b := field.NewElement(fwd[i]), field.NewElement(bwd[i])
				prod.Mul(&a, &b)
				require.True(t, prod.IsOne())
			}

			var n field.Element
			nInv := field.NewElement(params.NInv())
			n.SetUint64(uint64(params.N()))
			n.Mul(&n, &nInv)
			require.True(t, n.IsOne())
		})

		t.Run(testString("JSON", params), func(t *testing.T) {
			data, err := json.Marshal(params)
			require.NoError(t, err)
			var p Parameters
			require.NoError(t, json.Unmarshal(data, &p))
			require.True(t, params.Equal(&p))
		})
	}
}

func TestPrimitiveRoot(t *testing.T) {
	g, err := PrimitiveRoot(field.Modulus, Factors)
	require.NoError(t, err)
	require.NoError(t, CheckPrimitiveRoot(g, field.Modulus, Factors))
	require.NoError(t, CheckPrimitiveRoot(7, field.Modulus, Factors))
	require.Error(t, CheckPrimitiveRoot(1, field.Modulus, Factors))
	require.Error(t, CheckFactors(field.Modulus-1, Factors[:3]))
}

func TestNTT(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte("ntt"))
	require.NoError(t, err)

	eng := arith.NewNative()

	for _, logN := range testLogN {

		params, err := NewParameters(logN)
		require.NoError(t, err)
		N := params.N()

		t.Run(testString("RoundTrip", params), func(t *testing.T) {
			a := randomPoly(t, prng, N)
			require.Equal(t, a, Backward[field.Element](eng, params, Forward[field.Element](eng, params, a)))
			require.Equal(t, a, Forward[field.Element](eng, params, Backward[field.Element](eng, params, a)))
		})

		t.Run(testString("Linearity", params), func(t *testing.T) {
			a := randomPoly(t, prng, N)
			b := randomPoly(t, prng, N)
			lhs := Forward[field.Element](eng, params, VecAdd[field.Element](eng, a, b))
			rhs := VecAdd[field.Element](eng, Forward[field.Element](eng, params, a), Forward[field.Element](eng, params, b))
			require.Equal(t, lhs, rhs)
		})

		t.Run(testString("Convolution", params), func(t *testing.T) {
			a := randomPoly(t, prng, N)
			b := randomPoly(t, prng, N)
			prod := VecMul[field.Element](eng, Forward[field.Element](eng, params, a), Forward[field.Element](eng, params, b))
			require.Equal(t, mulNegacyclic(a, b), Backward[field.Element](eng, params, prod))
		})

		t.Run(testString("Negacyclic", params), func(t *testing.T) {
			// X * X^(N-1) = X^N = -1
			x := make([]field.Element, N)
			y := make([]field.Element, N)
			x[1].SetOne()
			y[N-1].SetOne()
			prod := VecMul[field.Element](eng, Forward[field.Element](eng, params, x), Forward[field.Element](eng, params, y))
			got := Backward[field.Element](eng, params, prod)
			want := make([]field.Element, N)
			want[0] = field.FromInt64(-1)
			require.Equal(t, want, got)
		})

		t.Run(testString("Packed", params), func(t *testing.T) {
			const width = 4
			cc := arith.NewConstraintConsumer(field.NewSlice([]uint64{5}), width)
			packed := arith.NewPacked(width, cc)

			lanes := make([][]field.Element, width)
			for l := range lanes {
				lanes[l] = randomPoly(t, prng, N)
			}

			in := make([]arith.PackedElement, N)
			for i := range in {
				values := make([]field.Element, width)
				for l := range values {
					values[l] = lanes[l][i]
				}
				in[i] = packed.Pack(values)
			}

			fwd := Forward[arith.PackedElement](packed, params, in)
			bwd := Backward[arith.PackedElement](packed, params, in)
			for l := range lanes {
				want := Forward[field.Element](eng, params, lanes[l])
				wantBwd := Backward[field.Element](eng, params, lanes[l])
				for i := 0; i < N; i++ {
					require.Equal(t, want[i], fwd[i][l])
					require.Equal(t, wantBwd[i], bwd[i][l])
				}
			}
			require.Zero(t, cc.Count())
		})
	}

	params, err := NewParameters(3)
	require.NoError(t, err)
	require.Panics(t, func() { Forward[field.Element](eng, params, make([]field.Element, 4)) })
	require.Panics(t, func() { Backward[field.Element](eng, params, make([]field.Element, 16)) })
}

func TestVecOps(t *testing.T) {
	eng := arith.NewNative()

	a := field.NewSlice([]uint64{1, 2, 3})
	b := field.NewSlice([]uint64{4, 5, 6})
	c := field.NewSlice([]uint64{7, 8, 9})

	require.Equal(t, field.NewSlice([]uint64{5, 7, 9}), VecAdd[field.Element](eng, a, b))
	require.Equal(t, field.NewSlice([]uint64{3, 3, 3}), VecSub[field.Element](eng, b, a))
	require.Equal(t, field.NewSlice([]uint64{4, 10, 18}), VecMul[field.Element](eng, a, b))
	require.Equal(t, field.NewSlice([]uint64{11, 18, 27}), VecMulAdd[field.Element](eng, a, b, c))
	require.Equal(t, field.NewSlice([]uint64{2, 4, 6}), VecScale[field.Element](eng, field.NewElement(2), a))
	require.Equal(t, []field.Element{field.FromInt64(-1), field.FromInt64(-2), field.FromInt64(-3)}, VecNeg[field.Element](eng, a))

	require.Equal(t, field.NewSlice([]uint64{12, 15, 18}), VecAddMany[field.Element](eng, 3, [][]field.Element{a, b, c}))
	require.Equal(t, make([]field.Element, 3), VecAddMany[field.Element](eng, 3, nil))

	// (1,2,3)*(4,5,6) + (4,5,6)*(7,8,9) = (32, 50, 72)
	require.Equal(t, field.NewSlice([]uint64{32, 50, 72}), VecInnerProduct[field.Element](eng, 3, [][]field.Element{a, b}, [][]field.Element{b, c}))
	require.Equal(t, make([]field.Element, 3), VecInnerProduct[field.Element](eng, 3, nil, nil))

	require.Panics(t, func() { VecAdd[field.Element](eng, a, b[:2]) })
	require.Panics(t, func() { VecInnerProduct[field.Element](eng, 3, [][]field.Element{a}, [][]field.Element{b, c}) })
}
