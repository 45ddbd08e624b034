package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"Truss/internal/auth"
	"Truss/internal/calc/flexure"
	"Truss/internal/calc/material"
	"Truss/internal/history"
	"Truss/internal/repo"
	"Truss/internal/truss"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newCalc() *Calculator {
	return NewCalculator(material.Steel(), truss.Solver{})
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestCalculate_Defaults(t *testing.T) {
	res, err := newCalc().Calculate(Input{PanelCount: 3, AreaM2: 0.01, LiveLoadKN: 10})
	require.NoError(t, err)

	assert.Len(t, res.Nodes, 6)
	assert.Len(t, res.Members, truss.ElementCount(3))
	assert.Len(t, res.DisplacementsM, 12)
	assert.Equal(t, truss.LadderTipDOF(3), res.LoadDOF)
	assert.Len(t, res.Reactions, 4)
	assert.Equal(t, truss.Node{X: 2, Y: 0}, res.Nodes[4], "unit panel width")

	// supports at the bottom end nodes stay put
	for _, d := range truss.LadderSupports(3) {
		assert.Zero(t, res.DisplacementsM[d])
	}
	assert.Greater(t, res.MaxStressMPa, 0.0)
	assert.Greater(t, res.MaxDisplacementMM, 0.0)
	assert.True(t, res.MembersOK)

	want, err := flexure.Calculate(flexure.Input{SpanM: 2, AreaM2: 0.01, LiveLoadKN: 10})
	require.NoError(t, err)
	assert.InDelta(t, want.DemandMomentKNM, res.Flexure.DemandMomentKNM, 1e-9)
	assert.Equal(t, want.Safe, res.Safe)
}

func TestCalculate_ReactionsBalanceLoad(t *testing.T) {
	res, err := newCalc().Calculate(Input{PanelCount: 4, AreaM2: 0.01, TrussLoadKN: floatPtr(5)})
	require.NoError(t, err)

	var sumX, sumY float64
	for _, r := range res.Reactions {
		if r.Direction == "x" {
			sumX += r.ForceKN
		} else {
			sumY += r.ForceKN
		}
	}
	// the default load acts horizontally at the top of the last panel line
	assert.InDelta(t, -5, sumX, 1e-6)
	assert.InDelta(t, 0, sumY, 1e-6)
}

func TestCalculate_ZeroTrussLoad(t *testing.T) {
	res, err := newCalc().Calculate(Input{PanelCount: 3, AreaM2: 0.01, TrussLoadKN: floatPtr(0)})
	require.NoError(t, err)
	for _, u := range res.DisplacementsM {
		assert.Zero(t, u)
	}
	assert.Zero(t, res.MaxStressMPa)
}

func TestCalculate_LengthSetsPanelWidth(t *testing.T) {
	res, err := newCalc().Calculate(Input{PanelCount: 5, LengthM: 20, HeightM: 2.5, AreaM2: 0.02})
	require.NoError(t, err)
	assert.Equal(t, truss.Node{X: 20, Y: 2.5}, res.Nodes[9])
	assert.InDelta(t, 5, res.Members[0].LengthM, 1e-12)
	assert.InDelta(t, math.Hypot(5, 2.5), res.Members[2].LengthM, 1e-12)
}

func TestCalculate_UnsafeSpan(t *testing.T) {
	res, err := newCalc().Calculate(Input{PanelCount: 10, LengthM: 60, AreaM2: 0.001, LiveLoadKN: 500})
	require.NoError(t, err)
	assert.False(t, res.Safe)
	assert.False(t, res.Flexure.Safe)
}

func TestCalculate_MaterialOverride(t *testing.T) {
	steel, err := newCalc().Calculate(Input{PanelCount: 3, AreaM2: 0.01})
	require.NoError(t, err)
	soft, err := newCalc().Calculate(Input{PanelCount: 3, AreaM2: 0.01, E_GPa: 70})
	require.NoError(t, err)
	assert.InDelta(t, 3*steel.MaxDisplacementMM, soft.MaxDisplacementMM, 1e-9)
	assert.InDelta(t, steel.MaxStressMPa, soft.MaxStressMPa, 1e-9, "uniform E scales displacements only")
}

func TestCalculate_Errors(t *testing.T) {
	c := newCalc()

	_, err := c.Calculate(Input{PanelCount: 1, AreaM2: 0.01})
	assert.ErrorIs(t, err, truss.ErrInvalidPanelCount)

	_, err = c.Calculate(Input{PanelCount: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.Calculate(Input{PanelCount: MaxPanels + 1, LengthM: 2500, AreaM2: 0.01})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, StatusFor(err))

	_, err = c.Calculate(Input{PanelCount: 3, AreaM2: 0.01, Method: "lrfd"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.Calculate(Input{PanelCount: 3, AreaM2: 0.01, LoadDOF: intPtr(99)})
	assert.ErrorIs(t, err, truss.ErrInvalidLoad)

	_, err = c.Calculate(Input{PanelCount: 3, AreaM2: 0.01, FixedDOFs: []int{0}})
	assert.ErrorIs(t, err, truss.ErrSingularSystem)

	_, err = c.Calculate(Input{PanelCount: 3, AreaM2: 0.01, LiveLoadKN: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(truss.ErrSingularSystem))
	assert.Equal(t, http.StatusBadRequest, StatusFor(truss.ErrInvalidPanelCount))
	assert.Equal(t, http.StatusBadRequest, StatusFor(ErrInvalidInput))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(assert.AnError))
}

func TestHandler_Calc(t *testing.T) {
	store := repo.NewMemory()
	log := zaptest.NewLogger(t)
	h := &Handler{
		Calculator: newCalc(),
		History:    &history.Recorder{Repo: store, Log: log},
		Log:        log,
	}

	body, err := json.Marshal(Input{PanelCount: 3, AreaM2: 0.01, LiveLoadKN: 10})
	require.NoError(t, err)
	ctx := auth.WithUserID(context.Background(), 9)
	req := httptest.NewRequest(http.MethodPost, "/api/tools/bridge/calc", bytes.NewReader(body)).WithContext(ctx)
	w := httptest.NewRecorder()
	h.Calc(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Analysis-ID"))
	var res Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Len(t, res.Members, 11)

	saved, err := store.ListAnalyses(ctx, 9, 0)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "bridge", saved[0].Kind)
}

func TestHandler_Errors(t *testing.T) {
	h := &Handler{Calculator: newCalc(), Log: zaptest.NewLogger(t)}

	w := httptest.NewRecorder()
	h.Calc(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Calc(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"panel_count":3,"area_m2":0.01,"fixed_dofs":[0]}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = httptest.NewRecorder()
	h.Calc(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"panel_count":1,"area_m2":0.01}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Calc(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"panel_count":20000,"area_m2":0.01}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
