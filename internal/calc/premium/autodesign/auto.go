package autodesign

import (
	"errors"
	"fmt"

	"Truss/internal/calc/bridge"
)

const (
	DefaultMinAreaM2 = 1e-5
	DefaultMaxAreaM2 = 1.0
	// relative width of the final bracket
	DefaultTolerance = 1e-4
	maxIterations    = 200
)

var ErrNoSection = errors.New("autodesign: no area in range passes")

type BridgeAutoInput struct {
	Bridge    bridge.Input `json:"bridge"` // area_m2 is ignored
	MinAreaM2 float64      `json:"min_area_m2"`
	MaxAreaM2 float64      `json:"max_area_m2"`
	Tolerance float64      `json:"tolerance"`
}

type BridgeAutoResult struct {
	RequiredAreaM2 float64       `json:"required_area_m2"`
	Iterations     int           `json:"iterations"`
	Result         bridge.Result `json:"result"`
	Notes          string        `json:"notes"`
}

// passes reports whether the bridge is safe in bending and every member
// stays within yield and buckling limits.
func passes(r bridge.Result) bool {
	return r.Safe && r.MembersOK
}

// Bridge finds the smallest member area in [MinAreaM2, MaxAreaM2] for which
// the bridge passes. Flexural utilisation, member stress and buckling all
// fall as the area grows, so the bracket is narrowed by bisection.
func Bridge(c *bridge.Calculator, in BridgeAutoInput) (BridgeAutoResult, error) {
	lo, hi, tol := in.MinAreaM2, in.MaxAreaM2, in.Tolerance
	if lo <= 0 {
		lo = DefaultMinAreaM2
	}
	if hi <= 0 {
		hi = DefaultMaxAreaM2
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if lo >= hi {
		return BridgeAutoResult{}, fmt.Errorf("area range [%g, %g]: %w", lo, hi, bridge.ErrInvalidInput)
	}

	run := func(area float64) (bridge.Result, error) {
		item := in.Bridge
		item.AreaM2 = area
		return c.Calculate(item)
	}

	best, err := run(hi)
	if err != nil {
		return BridgeAutoResult{}, err
	}
	if !passes(best) {
		return BridgeAutoResult{}, fmt.Errorf("max area %g m2: %w", hi, ErrNoSection)
	}
	if res, err := run(lo); err != nil {
		return BridgeAutoResult{}, err
	} else if passes(res) {
		return BridgeAutoResult{RequiredAreaM2: lo, Result: res, Notes: "Minimum area of the range already passes."}, nil
	}

	iter := 0
	for ; iter < maxIterations && hi-lo > tol*hi; iter++ {
		mid := (lo + hi) / 2
		res, err := run(mid)
		if err != nil {
			return BridgeAutoResult{}, err
		}
		if passes(res) {
			hi, best = mid, res
		} else {
			lo = mid
		}
	}
	return BridgeAutoResult{
		RequiredAreaM2: hi,
		Iterations:     iter,
		Result:         best,
		Notes:          "Auto-sized member area (flexure, member stress and buckling satisfied).",
	}, nil
}
