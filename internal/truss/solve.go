package truss

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultMaxCondition is the largest condition number of the reduced
// stiffness matrix a Solver accepts when MaxCondition is left at zero.
const DefaultMaxCondition = 1e12

// Solver solves the reduced linear system of a truss. The zero value is
// ready to use.
type Solver struct {
	MaxCondition float64
}

func (s Solver) maxCondition() float64 {
	if s.MaxCondition > 0 {
		return s.MaxCondition
	}
	return DefaultMaxCondition
}

// Solve restricts K·U = F to the free degrees of freedom of p, solves for the
// free displacements and returns the full displacement vector with zeros at
// the fixed entries.
func (s Solver) Solve(K *mat.Dense, F *mat.VecDense, p Partition) (*mat.VecDense, error) {
	r, c := K.Dims()
	if r != c || r != F.Len() || r != p.Size() {
		return nil, fmt.Errorf("stiffness %dx%d, load %d, partition %d: %w", r, c, F.Len(), p.Size(), ErrInvalidBoundary)
	}

	U := mat.NewVecDense(r, nil)
	nf := len(p.Free)
	if nf == 0 {
		return U, nil
	}

	Kff := mat.NewDense(nf, nf, nil)
	Ff := mat.NewVecDense(nf, nil)
	for a, i := range p.Free {
		for b, j := range p.Free {
			Kff.Set(a, b, K.At(i, j))
		}
		Ff.SetVec(a, F.AtVec(i))
	}

	// a free DOF that no member touches leaves an empty row
	for a, i := range p.Free {
		if Kff.At(a, a) <= 0 {
			return nil, fmt.Errorf("free dof %d has no stiffness: %w", i, ErrSingularSystem)
		}
	}

	var lu mat.LU
	lu.Factorize(Kff)
	cond := lu.Cond()
	if math.IsInf(cond, 0) || math.IsNaN(cond) || cond > s.maxCondition() {
		return nil, fmt.Errorf("condition number %g: %w", cond, ErrSingularSystem)
	}

	Uf := mat.NewVecDense(nf, nil)
	if err := lu.SolveVecTo(Uf, false, Ff); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrSingularSystem)
	}
	for a, i := range p.Free {
		v := Uf.AtVec(a)
		if !isFinite(v) {
			return nil, fmt.Errorf("displacement at dof %d is %g: %w", i, v, ErrSingularSystem)
		}
		U.SetVec(i, v)
	}
	return U, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
