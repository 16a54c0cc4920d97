package vpbs

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/keys"
)

// StepKind is the kind of a blind rotation step.
type StepKind int

const (
	// First rotates the test vector by minus the LWE body.
	First StepKind = iota
	// Interior applies a CMUX between the accumulator and its rotation by a mask element.
	Interior
	// Last applies the external product with the key-switching key.
	Last
)

func (k StepKind) String() string {
	switch k {
	case First:
		return "First"
	case Interior:
		return "Interior"
	case Last:
		return "Last"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// Step identifies a step of the blind rotation.
type Step struct {
	Kind StepKind
	// Row is the zero-based index of the step in the trace.
	Row int
}

// StepAt returns the step of the given zero-based trace row.
func StepAt(params Parameters, row int) (Step, error) {
	switch {
	case row < 0 || row >= params.NumSteps():
		return Step{}, fmt.Errorf("invalid step row: %d not in [0, %d)", row, params.NumSteps())
	case row == 0:
		return Step{Kind: First, Row: row}, nil
	case row == params.NumSteps()-1:
		return Step{Kind: Last, Row: row}, nil
	default:
		return Step{Kind: Interior, Row: row}, nil
	}
}

// StepFromCounter returns the step of the given one-based step counter:
// 1 is the first step and n+2 the last.
func StepFromCounter(params Parameters, counter int) (Step, error) {
	return StepAt(params, counter-1)
}

// IsFirst returns true for the first step.
func (s Step) IsFirst() bool {
	return s.Kind == First
}

// IsLast returns true for the last step.
func (s Step) IsLast() bool {
	return s.Kind == Last
}

// MaskIndex returns the index of the LWE mask element consumed by an interior step.
func (s Step) MaskIndex() int {
	if s.Kind != Interior {
		panic(fmt.Errorf("cannot MaskIndex: %s step has no mask index", s.Kind))
	}
	return s.Row - 1
}

// Mask returns the rotation input of the step: the body for the first step,
// the mask element for an interior step and zero for the last step.
func (s Step) Mask(ct keys.LWECiphertext) field.Element {
	switch s.Kind {
	case First:
		return field.NewElement(ct.Body)
	case Interior:
		return field.NewElement(ct.Mask[s.MaskIndex()])
	default:
		return field.Element{}
	}
}

// Key returns the GGSW ciphertext of the step: a zero placeholder for the first
// step, the blind rotation key of the mask element for an interior step and the
// key-switching key for the last step.
func (s Step) Key(params Parameters, keySet BlindRotationKeySet) (glwe.Ggsw[field.Element], error) {
	switch s.Kind {
	case First:
		return glwe.NewGgsw(params.GLWEParameters()), nil
	case Interior:
		return keySet.GetBlindRotationKey(s.MaskIndex())
	default:
		return keySet.GetKeySwitchingKey()
	}
}

// BlindRotationKeySet is an interface implementing methods to load the keys of a
// blind rotation. Implementations must be safe for concurrent use.
type BlindRotationKeySet interface {
	// GetBlindRotationKey should return GGSW(s[i]).
	GetBlindRotationKey(i int) (glwe.Ggsw[field.Element], error)

	// GetKeySwitchingKey should return the GGSW ciphertext applied on the last step.
	GetKeySwitchingKey() (glwe.Ggsw[field.Element], error)
}
