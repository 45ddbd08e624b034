package flexure

import (
	"fmt"
	"math"

	"Truss/internal/calc/loads"
	"Truss/internal/calc/material"
)

type Input struct {
	SpanM       float64      `json:"span_m"`
	AreaM2      float64      `json:"area_m2"`
	LiveLoadKN  float64      `json:"live_load_kn"`   // point load at midspan
	DeadLoadKNM float64      `json:"dead_load_kn_m"` // zero: member self-weight
	FyMPa       float64      `json:"fy_mpa"`
	DensityKgM3 float64      `json:"density_kg_m3"`
	GravityMS2  float64      `json:"gravity_m_s2"`
	Method      loads.Method `json:"method"`
}

type Result struct {
	DeadLoadKNM       float64 `json:"dead_load_kn_m"`
	DeadMomentKNM     float64 `json:"dead_moment_knm"`
	LiveMomentKNM     float64 `json:"live_moment_knm"`
	DemandMomentKNM   float64 `json:"demand_moment_knm"`
	SectionModulusM3  float64 `json:"section_modulus_m3"`
	CapacityMomentKNM float64 `json:"capacity_moment_knm"`
	Utilization       float64 `json:"utilization"`
	Safe              bool    `json:"safe"`
	ComboName         string  `json:"combo_name"`
	Notes             string  `json:"notes"`
}

// Calculate runs the check with structural steel for any constant the input
// leaves at zero.
func Calculate(in Input) (Result, error) {
	return CalculateWith(in, material.Steel())
}

func CalculateWith(in Input, defaults material.Material) (Result, error) {
	if in.SpanM <= 0 || in.AreaM2 <= 0 {
		return Result{}, fmt.Errorf("invalid input: span %g m, area %g m2", in.SpanM, in.AreaM2)
	}
	if err := in.Method.Validate(); err != nil {
		return Result{}, err
	}
	if in.LiveLoadKN < 0 || in.DeadLoadKNM < 0 {
		return Result{}, fmt.Errorf("invalid input: live %g kN, dead %g kN/m", in.LiveLoadKN, in.DeadLoadKNM)
	}
	m := material.Material{
		FyMPa:       in.FyMPa,
		DensityKgM3: in.DensityKgM3,
		GravityMS2:  in.GravityMS2,
	}.Or(defaults)
	if m.FyMPa <= 0 || m.DensityKgM3 <= 0 || m.GravityMS2 <= 0 {
		return Result{}, fmt.Errorf("invalid material: fy %g MPa, density %g kg/m3, g %g m/s2",
			m.FyMPa, m.DensityKgM3, m.GravityMS2)
	}

	// everything below is N, m, Pa
	w := in.DeadLoadKNM * 1e3
	if w == 0 {
		w = SelfWeight(in.AreaM2, m.DensityKgM3, m.GravityMS2)
	}
	P := in.LiveLoadKN * 1e3

	Md := DeadMoment(w, in.SpanM)
	Ml := LiveMoment(P, in.SpanM)
	Mu := loads.Combine(in.Method, Md, Ml)
	S := SectionModulus(in.AreaM2)
	Mn := CapacityMoment(m.FyPa(), S)
	_, _, combo := loads.Factors(in.Method)

	return Result{
		DeadLoadKNM:       w / 1e3,
		DeadMomentKNM:     Md / 1e3,
		LiveMomentKNM:     Ml / 1e3,
		DemandMomentKNM:   Mu / 1e3,
		SectionModulusM3:  S,
		CapacityMomentKNM: Mn / 1e3,
		Utilization:       Mu / Mn,
		Safe:              IsSafe(Mu, Mn),
		ComboName:         combo,
		Notes:             "Simply supported span: dead line load plus live point load at midspan, solid rectangular section.",
	}, nil
}

// SelfWeight is the line load of a prismatic member (N/m).
func SelfWeight(area, density, gravity float64) float64 {
	return density * gravity * area
}

// DeadMoment is the midspan moment of a uniform line load w on a simply
// supported span: w·L²/8.
func DeadMoment(w, span float64) float64 {
	return w * span * span / 8
}

// LiveMoment is the midspan moment of a point load P at midspan: P·L/4.
func LiveMoment(P, span float64) float64 {
	return P * span / 4
}

// DemandMoment is the factored design moment 1.2·dead + 1.6·live.
func DemandMoment(dead, live float64) float64 {
	return loads.Combine(loads.MethodLRFD, dead, live)
}

// SectionModulus approximates the elastic section modulus of a member with
// cross-sectional area A by a solid rectangle of width √A/2 and height A/width.
func SectionModulus(area float64) float64 {
	b := math.Sqrt(area) / 2
	h := area / b
	return b * h * h / 6
}

// CapacityMoment is the yield moment fy·S.
func CapacityMoment(fy, S float64) float64 {
	return fy * S
}

func IsSafe(demand, capacity float64) bool {
	return demand <= capacity
}
