package truss

import "errors"

var (
	ErrInvalidPanelCount = errors.New("truss: panel count must be at least 2")
	ErrInvalidNode       = errors.New("truss: element references a missing node")
	ErrDegenerateElement = errors.New("truss: zero-length element")
	ErrInvalidSection    = errors.New("truss: elastic modulus and area must be positive")
	ErrInvalidBoundary   = errors.New("truss: invalid boundary conditions")
	ErrInvalidLoad       = errors.New("truss: invalid load")
	// ErrSingularSystem is returned when the free-free stiffness matrix cannot
	// be inverted: a mechanism, a free node without members or a system whose
	// condition number exceeds the solver limit.
	ErrSingularSystem = errors.New("truss: stiffness system is singular")
)
