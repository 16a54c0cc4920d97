package arith

import (
	"fmt"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
)

// PackedElement is a fixed-width vector of field elements on which
// operations act lane-wise.
type PackedElement []field.Element

// Packed is the Engine over PackedElement. Each AssertZero is fed to a
// ConstraintConsumer, mirroring how a STARK evaluates its transition
// constraints over several rows at once.
type Packed struct {
	width    int
	consumer *ConstraintConsumer
}

// NewPacked returns a new Packed engine of the given width.
// The width of consumer must match.
func NewPacked(width int, consumer *ConstraintConsumer) *Packed {
	if width < 1 {
		panic(fmt.Errorf("cannot NewPacked: width=%d < 1", width))
	}
	if consumer == nil {
		panic(fmt.Errorf("cannot NewPacked: consumer is nil"))
	}
	if consumer.width != width {
		panic(fmt.Errorf("cannot NewPacked: consumer width=%d != width=%d", consumer.width, width))
	}
	return &Packed{width: width, consumer: consumer}
}

// Width returns the number of lanes.
func (p *Packed) Width() int {
	return p.width
}

// Consumer returns the constraint consumer fed by AssertZero.
func (p *Packed) Consumer() *ConstraintConsumer {
	return p.consumer
}

// Broadcast returns the PackedElement whose lanes are all equal to x.
func (p *Packed) Broadcast(x field.Element) PackedElement {
	out := make(PackedElement, p.width)
	for i := range out {
		out[i] = x
	}
	return out
}

// Pack returns the PackedElement whose lanes are values.
func (p *Packed) Pack(values []field.Element) PackedElement {
	if len(values) != p.width {
		panic(fmt.Errorf("cannot Pack: len(values)=%d != width=%d", len(values), p.width))
	}
	return append(PackedElement{}, values...)
}

func (p *Packed) lanewise(a, b PackedElement, f func(r, x, y *field.Element)) PackedElement {
	out := make(PackedElement, p.width)
	for i := range out {
		f(&out[i], &a[i], &b[i])
	}
	return out
}

func (p *Packed) Zero() PackedElement {
	return make(PackedElement, p.width)
}

func (p *Packed) One() PackedElement {
	var one field.Element
	one.SetOne()
	return p.Broadcast(one)
}

func (p *Packed) FromUint64(v uint64) PackedElement {
	return p.Broadcast(field.NewElement(v))
}

func (p *Packed) Add(a, b PackedElement) PackedElement {
	return p.lanewise(a, b, func(r, x, y *field.Element) { r.Add(x, y) })
}

func (p *Packed) Sub(a, b PackedElement) PackedElement {
	return p.lanewise(a, b, func(r, x, y *field.Element) { r.Sub(x, y) })
}

func (p *Packed) Mul(a, b PackedElement) PackedElement {
	return p.lanewise(a, b, func(r, x, y *field.Element) { r.Mul(x, y) })
}

func (p *Packed) Neg(a PackedElement) PackedElement {
	out := make(PackedElement, p.width)
	for i := range out {
		out[i].Neg(&a[i])
	}
	return out
}

func (p *Packed) MulAdd(a, b, c PackedElement) PackedElement {
	out := make(PackedElement, p.width)
	for i := range out {
		out[i].Mul(&a[i], &b[i])
		out[i].Add(&out[i], &c[i])
	}
	return out
}

func (p *Packed) AssertZero(a PackedElement) {
	p.consumer.Constraint(a)
}
