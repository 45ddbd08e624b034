package truss

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Partition splits the degrees of freedom of a model into constrained
// (zero displacement) and free ones. Both slices are sorted and together
// cover 0..n-1 exactly once.
type Partition struct {
	Fixed []int `json:"fixed"`
	Free  []int `json:"free"`
}

func NewPartition(ndof int, fixed []int) (Partition, error) {
	if ndof <= 0 {
		return Partition{}, fmt.Errorf("%d degrees of freedom: %w", ndof, ErrInvalidBoundary)
	}
	isFixed := make([]bool, ndof)
	for _, d := range fixed {
		if d < 0 || d >= ndof {
			return Partition{}, fmt.Errorf("fixed dof %d out of range [0,%d): %w", d, ndof, ErrInvalidBoundary)
		}
		if isFixed[d] {
			return Partition{}, fmt.Errorf("fixed dof %d listed twice: %w", d, ErrInvalidBoundary)
		}
		isFixed[d] = true
	}

	p := Partition{
		Fixed: make([]int, 0, len(fixed)),
		Free:  make([]int, 0, ndof-len(fixed)),
	}
	for d := 0; d < ndof; d++ {
		if isFixed[d] {
			p.Fixed = append(p.Fixed, d)
		} else {
			p.Free = append(p.Free, d)
		}
	}
	return p, nil
}

// Size is the total number of degrees of freedom covered by the partition.
func (p Partition) Size() int {
	return len(p.Fixed) + len(p.Free)
}

// PointLoad is a nodal force applied along one degree of freedom (N).
type PointLoad struct {
	DOF       int     `json:"dof"`
	Magnitude float64 `json:"magnitude"`
}

// LoadVector builds the external force vector. Loads on the same degree of
// freedom are summed.
func LoadVector(ndof int, loads ...PointLoad) (*mat.VecDense, error) {
	if ndof <= 0 {
		return nil, fmt.Errorf("%d degrees of freedom: %w", ndof, ErrInvalidLoad)
	}
	f := mat.NewVecDense(ndof, nil)
	for _, l := range loads {
		if l.DOF < 0 || l.DOF >= ndof {
			return nil, fmt.Errorf("load dof %d out of range [0,%d): %w", l.DOF, ndof, ErrInvalidLoad)
		}
		if !isFinite(l.Magnitude) {
			return nil, fmt.Errorf("load on dof %d is %g: %w", l.DOF, l.Magnitude, ErrInvalidLoad)
		}
		f.SetVec(l.DOF, f.AtVec(l.DOF)+l.Magnitude)
	}
	return f, nil
}

// Reaction is the support force developed at a constrained DOF.
type Reaction struct {
	DOF   int     `json:"dof"`
	Force float64 `json:"force"`
}

// Reactions returns K·U - F at every fixed degree of freedom.
func Reactions(K *mat.Dense, U, F *mat.VecDense, p Partition) []Reaction {
	var ku mat.VecDense
	ku.MulVec(K, U)
	out := make([]Reaction, 0, len(p.Fixed))
	for _, d := range p.Fixed {
		out = append(out, Reaction{DOF: d, Force: ku.AtVec(d) - F.AtVec(d)})
	}
	return out
}
