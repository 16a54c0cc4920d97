package vpbs

import (
	"encoding/binary"
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/arith"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/gadget"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/keys"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/utils/sampling"
	"github.com/zeebo/blake3"
)

const (
	// NumChallenges is the number of random linear combinations the constraints are folded with.
	NumChallenges = 2

	// PackingWidth is the maximum number of rows evaluated at once.
	PackingWidth = 4
)

// PublicInputs are the values of a blind rotation known to the verifier.
type PublicInputs struct {
	TestVector glwe.Ciphertext[field.Element]
	LWE        keys.LWECiphertext
	Output     glwe.Ciphertext[field.Element]
}

// Frame is a window of packed consecutive rows: lane l of Local is a row and
// lane l of Next the row that follows it.
type Frame struct {
	Local []arith.PackedElement
	Next  []arith.PackedElement
	// FirstRow is 1 on the lanes of the first trace row.
	FirstRow arith.PackedElement
	// Transition is 0 on the lanes of the last trace row, whose Next wraps around.
	Transition arith.PackedElement
}

// Stark evaluates the constraints of a blind rotation trace.
type Stark struct {
	params Parameters
	layout Layout
}

// NewStark instantiates a new Stark.
func NewStark(params Parameters) *Stark {
	return &Stark{params: params, layout: NewLayout(params)}
}

// EvalPacked evaluates every constraint of the frame through packed, whose
// consumer accumulates them. The public test vector and output are broadcast
// to every lane.
func (s Stark) EvalPacked(packed *arith.Packed, frame Frame, testVector, output glwe.Ciphertext[field.Element]) {

	eval := glwe.NewEvaluator[arith.PackedElement](s.params.GLWEParameters(), packed)

	local := ReadRow(s.params, frame.Local)
	next := ReadRow(s.params, frame.Next)

	one := packed.One()

	gadget.AssertBool[arith.PackedElement](packed, local.NonPad)
	gadget.AssertBool[arith.PackedElement](packed, local.IsFirst)
	gadget.AssertBool[arith.PackedElement](packed, local.IsLast)

	// flags
	packed.AssertZero(packed.Mul(frame.FirstRow, packed.Sub(local.IsFirst, one)))
	packed.AssertZero(packed.Mul(local.IsFirst, packed.Sub(local.NonPad, one)))
	packed.AssertZero(packed.Mul(local.IsLast, packed.Sub(local.NonPad, one)))
	packed.AssertZero(packed.Mul(frame.Transition, next.IsFirst))

	// non-pad rows form a prefix ending with the last step
	continues := packed.Mul(local.NonPad, packed.Sub(one, local.IsLast))
	packed.AssertZero(packed.Mul(frame.Transition, packed.Sub(continues, next.NonPad)))

	out := EvalStep(eval, local)

	tv := testVector.Flatten()
	res := output.Flatten()
	acc := local.Acc.Flatten()
	outFlat := out.Flatten()
	nextAcc := next.Acc.Flatten()

	for i := range acc {
		packed.AssertZero(packed.Mul(local.IsFirst, packed.Sub(acc[i], packed.Broadcast(tv[i]))))
		packed.AssertZero(packed.Mul(local.IsLast, packed.Sub(outFlat[i], packed.Broadcast(res[i]))))
		packed.AssertZero(packed.Mul(packed.Mul(frame.Transition, continues), packed.Sub(nextAcc[i], outFlat[i])))
	}
}

// Challenges derives the constraint challenges from the trace and the public inputs.
func (s Stark) Challenges(trace *Trace, pub PublicInputs) ([]field.Element, error) {

	h := blake3.New()

	var bb [8]byte
	write := func(values ...uint64) {
		for _, v := range values {
			binary.LittleEndian.PutUint64(bb[:], v)
			_, _ = h.Write(bb[:])
		}
	}

	write(uint64(len(trace.Rows)), uint64(s.layout.Width))
	for _, row := range trace.Rows {
		write(field.Uint64Slice(row)...)
	}
	write(field.Uint64Slice(pub.TestVector.Flatten())...)
	write(pub.LWE.Body)
	write(pub.LWE.Mask...)
	write(field.Uint64Slice(pub.Output.Flatten())...)

	prng, err := sampling.NewKeyedPRNG(h.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("sampling.NewKeyedPRNG: %w", err)
	}

	return sampling.UniformElements(prng, NumChallenges)
}

// Verify checks the trace against the public inputs and the keys of the blind rotation.
// It returns a non-nil error describing the first failed check.
func (s Stark) Verify(trace *Trace, pub PublicInputs, keySet BlindRotationKeySet) error {

	params := s.params
	numRows := len(trace.Rows)

	if numRows < 2 || !utils.IsPowerOfTwo(numRows) {
		return fmt.Errorf("invalid trace: %d rows is not a power of two >= 2", numRows)
	}

	if numRows < params.NumSteps() {
		return fmt.Errorf("invalid trace: %d rows < %d steps", numRows, params.NumSteps())
	}

	for i, row := range trace.Rows {
		if len(row) != s.layout.Width {
			return fmt.Errorf("invalid trace: row %d has %d columns but width=%d", i, len(row), s.layout.Width)
		}
	}

	if err := s.checkPublicColumns(trace, pub, keySet); err != nil {
		return err
	}

	alphas, err := s.Challenges(trace, pub)
	if err != nil {
		return err
	}

	width := min(PackingWidth, numRows)

	for start := 0; start < numRows; start += width {

		cc := arith.NewConstraintConsumer(alphas, width)
		packed := arith.NewPacked(width, cc)

		frame := Frame{
			Local:      make([]arith.PackedElement, s.layout.Width),
			Next:       make([]arith.PackedElement, s.layout.Width),
			FirstRow:   packed.Zero(),
			Transition: packed.One(),
		}

		for c := range frame.Local {
			frame.Local[c] = packed.Zero()
			frame.Next[c] = packed.Zero()
			for l := 0; l < width; l++ {
				frame.Local[c][l] = trace.Rows[start+l][c]
				frame.Next[c][l] = trace.Rows[(start+l+1)%numRows][c]
			}
		}

		for l := 0; l < width; l++ {
			switch start + l {
			case 0:
				frame.FirstRow[l].SetOne()
			case numRows - 1:
				frame.Transition[l].SetZero()
			}
		}

		s.EvalPacked(packed, frame, pub.TestVector, pub.Output)

		if !cc.Satisfied() {
			return fmt.Errorf("constraints not satisfied on rows [%d, %d)", start, start+width)
		}
	}

	return nil
}

// checkPublicColumns checks the columns whose values the verifier knows: the
// flags of every row, and the mask and key of every step.
func (s Stark) checkPublicColumns(trace *Trace, pub PublicInputs, keySet BlindRotationKeySet) error {

	params := s.params

	if pub.LWE.Dimension() != params.LWEDimension() {
		return fmt.Errorf("invalid LWE ciphertext: dimension %d != %d", pub.LWE.Dimension(), params.LWEDimension())
	}

	for i := 0; i < params.NumSteps(); i++ {

		step, err := StepAt(params, i)
		if err != nil {
			return err
		}

		row := ReadRow(params, trace.Rows[i])

		if !isFlag(row.NonPad, true) || !isFlag(row.IsFirst, step.IsFirst()) || !isFlag(row.IsLast, step.IsLast()) {
			return fmt.Errorf("row %d: flags do not match a %s step", i, step.Kind)
		}

		if mask := step.Mask(pub.LWE); !row.Mask.Equal(&mask) {
			return fmt.Errorf("row %d: mask column does not match the LWE ciphertext", i)
		}

		ggsw, err := step.Key(params, keySet)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}

		if !row.Ggsw.Equal(&ggsw) {
			return fmt.Errorf("row %d: key column does not match the key set", i)
		}
	}

	l := s.layout
	for i := params.NumSteps(); i < len(trace.Rows); i++ {
		if !trace.Rows[i][l.NonPad].IsZero() {
			return fmt.Errorf("row %d: padding row is flagged as a step", i)
		}
	}

	return nil
}

func isFlag(e field.Element, set bool) bool {
	if set {
		return e.IsOne()
	}
	return e.IsZero()
}
