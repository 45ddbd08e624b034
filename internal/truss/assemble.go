package truss

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Assemble builds the global stiffness matrix of t. Member contributions are
// added into the matrix so that nodes shared by several members accumulate
// the stiffness of all of them.
func Assemble(t Topology, s Section) (*mat.Dense, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	n := t.DOF()
	if n == 0 {
		return nil, fmt.Errorf("empty topology: %w", ErrInvalidNode)
	}
	K := mat.NewDense(n, n, nil)
	for idx, e := range t.Elements {
		if e.I < 0 || e.I >= len(t.Nodes) || e.J < 0 || e.J >= len(t.Nodes) {
			return nil, fmt.Errorf("element %d (%d-%d): %w", idx, e.I, e.J, ErrInvalidNode)
		}
		length, angle, err := Properties(t.Nodes[e.I], t.Nodes[e.J])
		if err != nil {
			return nil, fmt.Errorf("element %d (%d-%d): %w", idx, e.I, e.J, err)
		}
		k := LocalStiffness(s, length, angle)
		m := dofs(e)
		for a := 0; a < 4; a++ {
			for b := 0; b < 4; b++ {
				K.Set(m[a], m[b], K.At(m[a], m[b])+k.At(a, b))
			}
		}
	}
	return K, nil
}
