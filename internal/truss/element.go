package truss

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Section carries the material and geometric constants shared by every
// member: elastic modulus E (Pa) and cross-sectional area A (m²).
type Section struct {
	E float64 `json:"e"`
	A float64 `json:"a"`
}

func (s Section) validate() error {
	if !(s.E > 0) || !(s.A > 0) || math.IsInf(s.E, 0) || math.IsInf(s.A, 0) {
		return fmt.Errorf("E=%g A=%g: %w", s.E, s.A, ErrInvalidSection)
	}
	return nil
}

// Properties returns the length of the member a-b and its angle measured from
// the positive x axis, in (-π, π].
func Properties(a, b Node) (length, angle float64, err error) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length = math.Hypot(dx, dy)
	if !(length > 0) {
		return 0, 0, ErrDegenerateElement
	}
	return length, math.Atan2(dy, dx), nil
}

// LocalStiffness returns the 4x4 stiffness matrix of a planar truss member in
// global coordinates.
func LocalStiffness(s Section, length, angle float64) *mat.Dense {
	c := math.Cos(angle)
	sn := math.Sin(angle)
	k := s.E * s.A / length
	cc := k * c * c
	cs := k * c * sn
	ss := k * sn * sn
	return mat.NewDense(4, 4, []float64{
		+cc, +cs, -cc, -cs,
		+cs, +ss, -cs, -ss,
		-cc, -cs, +cc, +cs,
		-cs, -ss, +cs, +ss,
	})
}

// transformation maps the four end displacements of a member to its axial
// elongation.
func transformation(angle float64) [4]float64 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return [4]float64{-c, -s, c, s}
}
