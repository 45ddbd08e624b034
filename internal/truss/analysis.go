package truss

import "fmt"

// Model is everything one linear static run needs.
type Model struct {
	Topology Topology
	Section  Section
	Fixed    []int
	Loads    []PointLoad
}

type Result struct {
	Displacements []float64  `json:"displacements"`
	Stresses      []float64  `json:"stresses"`
	AxialForces   []float64  `json:"axial_forces"`
	Reactions     []Reaction `json:"reactions"`
}

// Analyze runs the direct stiffness method on m: assembly, partition, solve
// and stress recovery.
func (s Solver) Analyze(m Model) (Result, error) {
	K, err := Assemble(m.Topology, m.Section)
	if err != nil {
		return Result{}, fmt.Errorf("assemble: %w", err)
	}
	ndof := m.Topology.DOF()
	p, err := NewPartition(ndof, m.Fixed)
	if err != nil {
		return Result{}, err
	}
	F, err := LoadVector(ndof, m.Loads...)
	if err != nil {
		return Result{}, err
	}
	U, err := s.Solve(K, F, p)
	if err != nil {
		return Result{}, fmt.Errorf("solve: %w", err)
	}
	stresses, err := Stresses(m.Topology, m.Section.E, U)
	if err != nil {
		return Result{}, fmt.Errorf("stress recovery: %w", err)
	}

	forces := make([]float64, len(stresses))
	for i, sigma := range stresses {
		forces[i] = sigma * m.Section.A
	}
	return Result{
		Displacements: append([]float64(nil), U.RawVector().Data...),
		Stresses:      stresses,
		AxialForces:   forces,
		Reactions:     Reactions(K, U, F, p),
	}, nil
}
