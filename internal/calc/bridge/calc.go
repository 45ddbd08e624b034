package bridge

import (
	"errors"
	"fmt"
	"math"

	"Truss/internal/calc/column"
	"Truss/internal/calc/flexure"
	"Truss/internal/calc/loads"
	"Truss/internal/calc/material"
	"Truss/internal/truss"
)

var ErrInvalidInput = errors.New("bridge: invalid input")

const (
	DefaultHeightM     = 1.0
	DefaultTrussLoadKN = 1.0
	// MaxPanels bounds the dense 4n×4n solve of one request.
	MaxPanels = 200
)

type Input struct {
	PanelCount  int          `json:"panel_count"`
	LengthM     float64      `json:"length_m"` // zero: unit panel width
	HeightM     float64      `json:"height_m"`
	AreaM2      float64      `json:"area_m2"`
	E_GPa       float64      `json:"e_gpa"`
	FyMPa       float64      `json:"fy_mpa"`
	DensityKgM3 float64      `json:"density_kg_m3"`
	LiveLoadKN  float64      `json:"live_load_kn"`
	DeadLoadKNM float64      `json:"dead_load_kn_m"`
	TrussLoadKN *float64     `json:"truss_load_kn,omitempty"`
	LoadDOF     *int         `json:"load_dof,omitempty"`
	FixedDOFs   []int        `json:"fixed_dofs,omitempty"`
	Method      loads.Method `json:"method"`
}

type Member struct {
	Index               int     `json:"index"`
	Start               int     `json:"start"`
	End                 int     `json:"end"`
	LengthM             float64 `json:"length_m"`
	AngleRad            float64 `json:"angle_rad"`
	StressMPa           float64 `json:"stress_mpa"`
	ForceKN             float64 `json:"force_kn"`
	BucklingUtilization float64 `json:"buckling_utilization"`
}

type Reaction struct {
	Node      int     `json:"node"`
	Direction string  `json:"direction"`
	ForceKN   float64 `json:"force_kn"`
}

type Result struct {
	Nodes             []truss.Node   `json:"nodes"`
	Members           []Member       `json:"members"`
	DisplacementsM    []float64      `json:"displacements_m"`
	Reactions         []Reaction     `json:"reactions"`
	LoadDOF           int            `json:"load_dof"`
	MaxStressMPa      float64        `json:"max_stress_mpa"`
	MaxDisplacementMM float64        `json:"max_displacement_mm"`
	MaxBucklingUtil   float64        `json:"max_buckling_utilization"`
	MembersOK         bool           `json:"members_ok"`
	Flexure           flexure.Result `json:"flexure"`
	Safe              bool           `json:"safe"`
	Notes             string         `json:"notes"`
}

// Calculator runs complete bridge analyses. Defaults supply every material
// constant an input leaves at zero.
type Calculator struct {
	Defaults material.Material
	Solver   truss.Solver
}

func NewCalculator(defaults material.Material, solver truss.Solver) *Calculator {
	return &Calculator{Defaults: defaults.Or(material.Steel()), Solver: solver}
}

func (c *Calculator) Calculate(in Input) (Result, error) {
	if in.PanelCount > MaxPanels {
		return Result{}, fmt.Errorf("%d panels, limit %d: %w", in.PanelCount, MaxPanels, ErrInvalidInput)
	}
	if in.LengthM < 0 || in.HeightM < 0 || in.AreaM2 <= 0 {
		return Result{}, fmt.Errorf("length %g m, height %g m, area %g m2: %w",
			in.LengthM, in.HeightM, in.AreaM2, ErrInvalidInput)
	}
	m := material.Material{
		E_GPa:       in.E_GPa,
		FyMPa:       in.FyMPa,
		DensityKgM3: in.DensityKgM3,
	}.Or(c.Defaults)
	if err := m.Validate(); err != nil {
		return Result{}, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}

	n := in.PanelCount
	height := in.HeightM
	if height == 0 {
		height = DefaultHeightM
	}
	panelWidth := 1.0
	if in.LengthM > 0 && n > 1 {
		panelWidth = in.LengthM / float64(n-1)
	}
	top, err := truss.LadderScaled(n, panelWidth, height)
	if err != nil {
		return Result{}, err
	}

	fixed := in.FixedDOFs
	if len(fixed) == 0 {
		fixed = truss.LadderSupports(n)
	}
	loadDOF := truss.LadderTipDOF(n)
	if in.LoadDOF != nil {
		loadDOF = *in.LoadDOF
	}
	loadKN := DefaultTrussLoadKN
	if in.TrussLoadKN != nil {
		loadKN = *in.TrussLoadKN
	}

	section := truss.Section{E: m.EPa(), A: in.AreaM2}
	fe, err := c.Solver.Analyze(truss.Model{
		Topology: top,
		Section:  section,
		Fixed:    fixed,
		Loads:    []truss.PointLoad{{DOF: loadDOF, Magnitude: loadKN * 1e3}},
	})
	if err != nil {
		return Result{}, err
	}

	span := panelWidth * float64(n-1)
	flex, err := flexure.CalculateWith(flexure.Input{
		SpanM:       span,
		AreaM2:      in.AreaM2,
		LiveLoadKN:  in.LiveLoadKN,
		DeadLoadKNM: in.DeadLoadKNM,
		Method:      in.Method,
	}, m)
	if err != nil {
		return Result{}, fmt.Errorf("flexural check: %v: %w", err, ErrInvalidInput)
	}

	res := Result{
		Nodes:          top.Nodes,
		Members:        make([]Member, len(top.Elements)),
		DisplacementsM: fe.Displacements,
		Reactions:      make([]Reaction, 0, len(fe.Reactions)),
		LoadDOF:        loadDOF,
		Flexure:        flex,
		Safe:           flex.Safe,
		Notes:          "Linear static analysis of a pin-jointed ladder truss; flexural check of the span as a simply supported beam.",
	}
	for i, e := range top.Elements {
		buckling := column.Utilization(fe.AxialForces[i], section.E, section.A, e.Length)
		res.Members[i] = Member{
			Index:               i,
			Start:               e.I,
			End:                 e.J,
			LengthM:             e.Length,
			AngleRad:            e.Angle,
			StressMPa:           fe.Stresses[i] / 1e6,
			ForceKN:             fe.AxialForces[i] / 1e3,
			BucklingUtilization: buckling,
		}
		res.MaxStressMPa = math.Max(res.MaxStressMPa, math.Abs(fe.Stresses[i])/1e6)
		res.MaxBucklingUtil = math.Max(res.MaxBucklingUtil, buckling)
	}
	for i := 0; i+1 < len(fe.Displacements); i += 2 {
		d := math.Hypot(fe.Displacements[i], fe.Displacements[i+1]) * 1e3
		res.MaxDisplacementMM = math.Max(res.MaxDisplacementMM, d)
	}
	for _, r := range fe.Reactions {
		dir := "x"
		if r.DOF%2 == 1 {
			dir = "y"
		}
		res.Reactions = append(res.Reactions, Reaction{Node: r.DOF / 2, Direction: dir, ForceKN: r.Force / 1e3})
	}
	res.MembersOK = res.MaxStressMPa <= m.FyMPa && res.MaxBucklingUtil <= 1
	return res, nil
}
