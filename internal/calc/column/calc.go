package column

import (
	"fmt"
	"math"
)

type Input struct {
	LengthM float64 `json:"length_m"`
	KFactor float64 `json:"k_factor"`
	WidthM  float64 `json:"width_m"`
	HeightM float64 `json:"height_m"`
	AreaM2  float64 `json:"area_m2"` // used when width and height are not given
	E_GPa   float64 `json:"e_gpa"`
	LoadKN  float64 `json:"load_kn"`
}

type Result struct {
	IminM4      float64 `json:"imin_m4"`
	PcrKN       float64 `json:"pcr_kn"`
	Utilization float64 `json:"utilization"`
	OK          bool    `json:"ok"`
	Notes       string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if in.LengthM <= 0 || in.LoadKN < 0 {
		return Result{}, fmt.Errorf("invalid input: length %g m, load %g kN", in.LengthM, in.LoadKN)
	}
	if in.KFactor <= 0 {
		in.KFactor = 1.0
	}
	if in.E_GPa <= 0 {
		in.E_GPa = 210
	}
	b, h := in.WidthM, in.HeightM
	if b <= 0 || h <= 0 {
		if in.AreaM2 <= 0 {
			return Result{}, fmt.Errorf("invalid input: section needs width and height or area")
		}
		b, h = RectangleFromArea(in.AreaM2)
	}

	I := MinInertia(b, h)
	pcr := CriticalLoad(in.E_GPa*1e9, I, in.KFactor, in.LengthM) / 1e3
	util := in.LoadKN / pcr

	return Result{
		IminM4:      I,
		PcrKN:       pcr,
		Utilization: util,
		OK:          util <= 1.0,
		Notes:       "Euler buckling about the weak axis.",
	}, nil
}

// CriticalLoad is the Euler load π²EI/(KL)² in the units of its arguments.
func CriticalLoad(E, I, K, length float64) float64 {
	kl := K * length
	return math.Pi * math.Pi * E * I / (kl * kl)
}

// RectangleFromArea is the solid rectangle the flexural check assumes for a
// member of area A: width √A/2, height A/width.
func RectangleFromArea(area float64) (b, h float64) {
	b = math.Sqrt(area) / 2
	return b, area / b
}

// MinInertia is the second moment of area of a b×h rectangle about its weak
// axis.
func MinInertia(b, h float64) float64 {
	if b > h {
		b, h = h, b
	}
	return h * b * b * b / 12
}

// Utilization of a member carrying the axial force N (tension positive).
// Members in tension do not buckle and report zero.
func Utilization(N, E, area, length float64) float64 {
	if N >= 0 {
		return 0
	}
	b, h := RectangleFromArea(area)
	return -N / CriticalLoad(E, MinInertia(b, h), 1, length)
}
