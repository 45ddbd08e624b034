package truss

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ElementStress returns the axial stress of e for the displacement vector U.
// Tension is positive.
func ElementStress(E float64, nodes []Node, e Element, U mat.Vector) (float64, error) {
	if e.I < 0 || e.I >= len(nodes) || e.J < 0 || e.J >= len(nodes) {
		return 0, fmt.Errorf("element %d-%d: %w", e.I, e.J, ErrInvalidNode)
	}
	length, angle, err := Properties(nodes[e.I], nodes[e.J])
	if err != nil {
		return 0, fmt.Errorf("element %d-%d: %w", e.I, e.J, err)
	}
	m := dofs(e)
	need := max(m[1], m[3]) + 1
	if need > U.Len() {
		return 0, fmt.Errorf("displacement vector has %d entries, element %d-%d needs %d: %w",
			U.Len(), e.I, e.J, need, ErrInvalidNode)
	}
	T := transformation(angle)
	var elong float64
	for a := 0; a < 4; a++ {
		elong += T[a] * U.AtVec(m[a])
	}
	return E * elong / length, nil
}

// Stresses returns the axial stress of every element of t, in element order.
func Stresses(t Topology, E float64, U mat.Vector) ([]float64, error) {
	if U.Len() != t.DOF() {
		return nil, fmt.Errorf("displacement vector has %d entries, topology has %d dofs: %w",
			U.Len(), t.DOF(), ErrInvalidNode)
	}
	out := make([]float64, len(t.Elements))
	for k, e := range t.Elements {
		sigma, err := ElementStress(E, t.Nodes, e, U)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", k, err)
		}
		out[k] = sigma
	}
	return out, nil
}
