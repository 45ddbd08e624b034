package loads

import (
	"errors"
	"fmt"
)

var ErrUnknownMethod = errors.New("loads: unknown combination method")

type Method string

const (
	MethodLRFD Method = "LRFD"
	MethodASD  Method = "ASD"
	MethodEC0  Method = "EC0"
)

type Input struct {
	Method Method  `json:"method"`
	DeadKN float64 `json:"dead_kn"`
	LiveKN float64 `json:"live_kn"`
}

type Result struct {
	DesignLoadKN float64 `json:"design_load_kn"`
	DeadFactor   float64 `json:"dead_factor"`
	LiveFactor   float64 `json:"live_factor"`
	ComboName    string  `json:"combo_name"`
	Notes        string  `json:"notes"`
}

// Validate accepts the known methods and the empty method, which means LRFD.
func (m Method) Validate() error {
	switch m {
	case "", MethodLRFD, MethodASD, MethodEC0:
		return nil
	}
	return fmt.Errorf("%q: %w", string(m), ErrUnknownMethod)
}

func Calculate(in Input) (Result, error) {
	if err := in.Method.Validate(); err != nil {
		return Result{}, err
	}
	if in.DeadKN < 0 || in.LiveKN < 0 {
		return Result{}, fmt.Errorf("invalid load: dead %g, live %g", in.DeadKN, in.LiveKN)
	}
	gD, gL, name := Factors(in.Method)
	return Result{
		DesignLoadKN: gD*in.DeadKN + gL*in.LiveKN,
		DeadFactor:   gD,
		LiveFactor:   gL,
		ComboName:    name,
		Notes:        "Single combination of one dead and one live load effect.",
	}, nil
}

// Combine applies the factors of method to any pair of dead and live load
// effects (forces, moments) expressed in the same unit.
func Combine(method Method, dead, live float64) float64 {
	gD, gL, _ := Factors(method)
	return gD*dead + gL*live
}

// Factors returns the dead and live load factors of method. The empty method
// is LRFD; callers reject anything else with Method.Validate first.
func Factors(method Method) (gD, gL float64, name string) {
	switch method {
	case MethodASD:
		return 1.0, 1.0, "ASD D + L"
	case MethodEC0:
		return 1.35, 1.5, "EC0 STR 6.10"
	default:
		return 1.2, 1.6, "LRFD 1.2D + 1.6L"
	}
}
