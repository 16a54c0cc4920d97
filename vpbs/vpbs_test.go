package vpbs

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/keys"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils/sampling"
	"github.com/stretchr/testify/require"
)

var testParamsLiteral = []ParametersLiteral{
	{GLWE: glwe.ParametersLiteral{LogN: 2, K: 2, Ell: 8, LogBase: 8}, LWEDimension: 3},
	{GLWE: glwe.ParametersLiteral{LogN: 3, K: 3, Ell: 16, LogBase: 4}, LWEDimension: 6},
	{GLWE: glwe.TestParametersLiteral, LWEDimension: 4},
}

func testString(opname string, p Parameters) string {
	return fmt.Sprintf("%s/LogN=%d/K=%d/Ell=%d/LogBase=%d/n=%d", opname, p.LogN(), p.K(), p.Ell(), p.LogBase(), p.LWEDimension())
}

type testContext struct {
	params Parameters
	prng   sampling.PRNG
	skLWE  *keys.LWESecretKey
	bsk    *keys.BootstrappingKey
	dec    *keys.Decryptor
	eval   *Evaluator
}

func newTestContext(t *testing.T, pl ParametersLiteral, noiseBound uint64) *testContext {

	params, err := NewParametersFromLiteral(pl)
	require.NoError(t, err)

	prng, err := sampling.NewKeyedPRNG([]byte("vpbs"))
	require.NoError(t, err)

	kgen := keys.NewKeyGenerator(params.GLWEParameters(), prng)

	sk, err := kgen.GenSecretKeyNew()
	require.NoError(t, err)

	skLWE, err := kgen.GenLWESecretKeyNew(params.LWEDimension())
	require.NoError(t, err)

	enc := keys.NewEncryptor(params.GLWEParameters(), sk, prng, noiseBound)

	bsk, err := keys.GenBootstrappingKeyNew(params.GLWEParameters(), enc, skLWE)
	require.NoError(t, err)

	return &testContext{
		params: params,
		prng:   prng,
		skLWE:  skLWE,
		bsk:    bsk,
		dec:    keys.NewDecryptor(params.GLWEParameters(), sk),
		eval:   NewEvaluator(params),
	}
}

func identity(i int) field.Element {
	return field.NewElement(uint64(i))
}

func TestParameters(t *testing.T) {
	for _, pl := range testParamsLiteral {
		params, err := NewParametersFromLiteral(pl)
		require.NoError(t, err)
		require.Equal(t, pl.LWEDimension+2, params.NumSteps())
		require.Equal(t, pl, params.ParametersLiteral())

		data, err := json.Marshal(params)
		require.NoError(t, err)
		var p Parameters
		require.NoError(t, json.Unmarshal(data, &p))
		require.True(t, params.Equal(&p))
	}

	_, err := NewParametersFromLiteral(ParametersLiteral{GLWE: testParamsLiteral[0].GLWE})
	require.Error(t, err)
	_, err = NewParametersFromLiteral(ParametersLiteral{LWEDimension: 3})
	require.Error(t, err)
}

func TestSteps(t *testing.T) {
	params, err := NewParametersFromLiteral(testParamsLiteral[0])
	require.NoError(t, err)

	ct := keys.LWECiphertext{Mask: []uint64{5, 6, 7}, Body: 3}

	kinds := []StepKind{First, Interior, Interior, Interior, Last}
	for i, kind := range kinds {
		step, err := StepAt(params, i)
		require.NoError(t, err)
		require.Equal(t, kind, step.Kind)
		require.Equal(t, i, step.Row)

		fromCounter, err := StepFromCounter(params, i+1)
		require.NoError(t, err)
		require.Equal(t, step, fromCounter)

		switch kind {
		case First:
			require.Equal(t, field.NewElement(3), step.Mask(ct))
			require.Panics(t, func() { step.MaskIndex() })
		case Interior:
			require.Equal(t, field.NewElement(ct.Mask[i-1]), step.Mask(ct))
		case Last:
			require.Equal(t, field.Element{}, step.Mask(ct))
		}
	}

	_, err = StepAt(params, -1)
	require.Error(t, err)
	_, err = StepAt(params, params.NumSteps())
	require.Error(t, err)
	_, err = StepFromCounter(params, 0)
	require.Error(t, err)
	require.Equal(t, "Interior", Interior.String())
}

func TestLayout(t *testing.T) {
	params, err := NewParametersFromLiteral(testParamsLiteral[0])
	require.NoError(t, err)

	l := NewLayout(params)
	N, K := params.N(), params.K()
	require.Equal(t, N*K+K*K*N*params.Ell()+1+field.NumBits+field.NumBits*N*K+3, l.Width)
	require.Equal(t, l.Width-1, l.IsLast)

	prng, err := sampling.NewKeyedPRNG([]byte("layout"))
	require.NoError(t, err)
	values, err := sampling.UniformElements(prng, l.Width)
	require.NoError(t, err)

	row := ReadRow(params, values)
	require.Equal(t, values, WriteRow(params, row))
	require.Equal(t, values[l.Mask], row.Mask)
	require.Equal(t, values[l.XProdInBits+field.NumBits*(N+1)+5], row.XProdInBits[1][1][5])
	require.Panics(t, func() { ReadRow(params, values[1:]) })
}

func TestBlindRotate(t *testing.T) {

	for _, pl := range testParamsLiteral {

		tc := newTestContext(t, pl, 0)
		params := tc.params
		nthRoot := uint64(params.NthRoot())

		tv := NewTestVector(params, identity)
		native := glwe.NewNativeEvaluator(params.GLWEParameters())

		t.Run(testString("Noiseless", params), func(t *testing.T) {
			for m := uint64(0); m < nthRoot; m++ {

				ct, err := keys.EncryptLWENew(params.GLWEParameters(), tc.skLWE, m, 0, tc.prng)
				require.NoError(t, err)

				out, err := tc.eval.BlindRotate(tv, ct, tc.bsk)
				require.NoError(t, err)

				phase := keys.LWEPhase(params.GLWEParameters(), tc.skLWE, ct)
				require.Equal(t, m, phase)

				want := native.RotatePoly(tv.Body(), int((nthRoot-phase)%nthRoot))
				require.Equal(t, want, tc.dec.DecryptNew(out))

				constant := tc.dec.DecryptNew(out).Coeffs[0]
				if phase < nthRoot/2 {
					require.Equal(t, phase, constant.Uint64())
				} else {
					require.Equal(t, -int64(phase-nthRoot/2), field.Signed(constant))
				}
			}
		})
	}

	t.Run("Noisy", func(t *testing.T) {
		tc := newTestContext(t, testParamsLiteral[0], 4)
		params := tc.params
		const delta = 1 << 40
		nthRoot := uint64(params.NthRoot())

		tv := NewTestVector(params, func(i int) field.Element { return field.NewElement(uint64(i+1) * delta) })

		for m := uint64(0); m < nthRoot; m++ {
			ct, err := keys.EncryptLWENew(params.GLWEParameters(), tc.skLWE, m, 0, tc.prng)
			require.NoError(t, err)
			out, err := tc.eval.BlindRotate(tv, ct, tc.bsk)
			require.NoError(t, err)

			decoded := tc.dec.DecodeNew(out, delta)
			if m < nthRoot/2 {
				require.Equal(t, int64(m+1), decoded[0])
			} else {
				require.Equal(t, -int64(m-nthRoot/2+1), decoded[0])
			}
		}
	})

	t.Run("InvalidInputs", func(t *testing.T) {
		tc := newTestContext(t, testParamsLiteral[0], 0)
		tv := NewTestVector(tc.params, identity)
		_, err := tc.eval.BlindRotate(tv, keys.LWECiphertext{Mask: []uint64{1}}, tc.bsk)
		require.Error(t, err)
		_, err = tc.eval.GenerateTrace(glwe.Ciphertext[field.Element]{}, keys.LWECiphertext{Mask: make([]uint64, 3)}, tc.bsk)
		require.Error(t, err)
		_, err = tc.eval.BlindRotate(tv, keys.LWECiphertext{Mask: make([]uint64, 3)}, keys.NewBootstrappingKey(tc.params.GLWEParameters(), 1))
		require.Error(t, err)
	})
}

func TestTrace(t *testing.T) {

	for _, pl := range testParamsLiteral {

		tc := newTestContext(t, pl, 2)
		params := tc.params
		layout := NewLayout(params)

		tv := NewTestVector(params, identity)
		ct, err := keys.EncryptLWENew(params.GLWEParameters(), tc.skLWE, 5, 0, tc.prng)
		require.NoError(t, err)

		trace, err := tc.eval.GenerateTrace(tv, ct, tc.bsk)
		require.NoError(t, err)

		out, err := tc.eval.BlindRotate(tv, ct, tc.bsk)
		require.NoError(t, err)
		require.Equal(t, out, trace.Output)

		pub := PublicInputs{TestVector: tv, LWE: ct, Output: trace.Output}

		t.Run(testString("Shape", params), func(t *testing.T) {
			require.Equal(t, params.NumSteps(), trace.NonPadRows)
			require.Equal(t, 8, len(trace.Rows))
			for i, row := range trace.Rows {
				require.Len(t, row, layout.Width)
				nonPad := row[layout.NonPad].Uint64()
				if i < params.NumSteps() {
					require.Equal(t, uint64(1), nonPad)
				} else {
					require.Zero(t, nonPad)
					require.Equal(t, make([]field.Element, layout.Width), row)
				}
			}
			require.True(t, trace.Rows[0][layout.IsFirst].IsOne())
			require.True(t, trace.Rows[params.NumSteps()-1][layout.IsLast].IsOne())
		})

		t.Run(testString("EvalStep", params), func(t *testing.T) {
			eval := glwe.NewNativeEvaluator(params.GLWEParameters())
			for i := 0; i < params.NumSteps(); i++ {
				got := EvalStep(eval.Evaluator, ReadRow(params, trace.Rows[i]))
				if i+1 < params.NumSteps() {
					require.Equal(t, ReadRow(params, trace.Rows[i+1]).Acc, got, i)
				} else {
					require.Equal(t, trace.Output, got)
				}
			}
			// padding rows satisfy every constraint
			EvalStep(eval.Evaluator, ReadRow(params, trace.Rows[len(trace.Rows)-1]))
			require.Zero(t, eval.Violations())
		})

		t.Run(testString("Verify", params), func(t *testing.T) {
			stark := NewStark(params)
			require.NoError(t, stark.Verify(trace, pub, tc.bsk))

			alphas, err := stark.Challenges(trace, pub)
			require.NoError(t, err)
			require.Len(t, alphas, NumChallenges)
			again, err := stark.Challenges(trace, pub)
			require.NoError(t, err)
			require.Equal(t, alphas, again)
		})

		t.Run(testString("Tampered", params), func(t *testing.T) {
			stark := NewStark(params)

			tamper := func(row, col int, f func(e *field.Element)) *Trace {
				rows := make([][]field.Element, len(trace.Rows))
				for i := range rows {
					rows[i] = append([]field.Element{}, trace.Rows[i]...)
				}
				f(&rows[row][col])
				return &Trace{Rows: rows, NonPadRows: trace.NonPadRows, Output: trace.Output}
			}
			inc := func(e *field.Element) { e.Add(e, ptr(field.NewElement(1))) }
			flip := func(e *field.Element) { e.Sub(ptr(field.NewElement(1)), e) }

			// accumulator not produced by the previous step
			require.Error(t, stark.Verify(tamper(2, layout.Acc+1, inc), pub, tc.bsk))
			// initial accumulator is not the test vector
			require.Error(t, stark.Verify(tamper(0, layout.Acc, inc), pub, tc.bsk))
			// mask does not match the LWE ciphertext
			require.Error(t, stark.Verify(tamper(1, layout.Mask, inc), pub, tc.bsk))
			// mask bits do not match the mask
			require.Error(t, stark.Verify(tamper(1, layout.MaskBits, flip), pub, tc.bsk))
			// external product input bits do not match the accumulator
			require.Error(t, stark.Verify(tamper(1, layout.XProdInBits+3, flip), pub, tc.bsk))
			// key does not match the key set
			require.Error(t, stark.Verify(tamper(1, layout.Ggsw, inc), pub, tc.bsk))
			// padding flagged as a step
			require.Error(t, stark.Verify(tamper(len(trace.Rows)-1, layout.NonPad, inc), pub, tc.bsk))

			// wrong public output
			wrong := pub
			wrong.Output = trace.Output.CopyNew()
			inc(&wrong.Output.Value[0].Coeffs[0])
			require.Error(t, stark.Verify(trace, wrong, tc.bsk))

			require.Error(t, stark.Verify(&Trace{Rows: trace.Rows[:3]}, pub, tc.bsk))
		})
	}
}

func ptr(e field.Element) *field.Element {
	return &e
}
