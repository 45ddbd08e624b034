package recommend

import (
	"fmt"
	"math"

	"Truss/internal/calc/bridge"
)

const (
	DefaultFvwMPa = 180
	DefaultGammaM = 1.25
	MinWeldMM     = 3
)

// WeldRecommendInput sizes the fillet welds joining truss members to their
// gusset plates. Every member end gets the same weld, sized for the member
// with the largest axial force.
type WeldRecommendInput struct {
	Bridge       bridge.Input `json:"bridge"`
	WeldLengthMM float64      `json:"weld_length_mm"`
	FvwMPa       float64      `json:"fvw_mpa"`
	GammaM       float64      `json:"gamma_m"`
}

type WeldRecommendResult struct {
	GoverningMember int     `json:"governing_member"`
	ForceKN         float64 `json:"force_kn"`
	RequiredSizeMM  float64 `json:"required_size_mm"`
	Notes           string  `json:"notes"`
}

// WeldSize returns the fillet leg size s from V = 0.7·s·L·fvw/γM, never
// below MinWeldMM.
func WeldSize(forceKN, lengthMM, fvwMPa, gammaM float64) float64 {
	s := (forceKN * 1000.0 * gammaM) / (0.7 * lengthMM * fvwMPa)
	return math.Max(s, MinWeldMM)
}

func Weld(c *bridge.Calculator, in WeldRecommendInput) (WeldRecommendResult, error) {
	if in.WeldLengthMM <= 0 {
		return WeldRecommendResult{}, fmt.Errorf("weld length %g mm: %w", in.WeldLengthMM, bridge.ErrInvalidInput)
	}
	if in.FvwMPa <= 0 {
		in.FvwMPa = DefaultFvwMPa
	}
	if in.GammaM <= 0 {
		in.GammaM = DefaultGammaM
	}
	res, err := c.Calculate(in.Bridge)
	if err != nil {
		return WeldRecommendResult{}, err
	}

	gov, force := 0, 0.0
	for _, m := range res.Members {
		if f := math.Abs(m.ForceKN); f > force {
			gov, force = m.Index, f
		}
	}
	return WeldRecommendResult{
		GoverningMember: gov,
		ForceKN:         force,
		RequiredSizeMM:  WeldSize(force, in.WeldLengthMM, in.FvwMPa, in.GammaM),
		Notes:           "Fillet weld per member end, sized for the largest member force.",
	}, nil
}
