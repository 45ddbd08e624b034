package autodesign

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"Truss/internal/calc/bridge"
	"Truss/internal/calc/material"
	"Truss/internal/truss"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calculator() *bridge.Calculator {
	return bridge.NewCalculator(material.Steel(), truss.Solver{})
}

func TestBridge_FindsBoundary(t *testing.T) {
	c := calculator()
	in := BridgeAutoInput{Bridge: bridge.Input{PanelCount: 6, LengthM: 30, LiveLoadKN: 200}}

	res, err := Bridge(c, in)
	require.NoError(t, err)
	assert.True(t, passes(res.Result))
	assert.Greater(t, res.Iterations, 0)

	below := in.Bridge
	below.AreaM2 = res.RequiredAreaM2 * (1 - 2*DefaultTolerance)
	r, err := c.Calculate(below)
	require.NoError(t, err)
	assert.False(t, passes(r), "a slightly smaller area fails")
}

func TestBridge_MinAlreadyPasses(t *testing.T) {
	res, err := Bridge(calculator(), BridgeAutoInput{
		Bridge:    bridge.Input{PanelCount: 3},
		MinAreaM2: 0.05,
		MaxAreaM2: 0.1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.05, res.RequiredAreaM2)
	assert.Zero(t, res.Iterations)
}

func TestBridge_Errors(t *testing.T) {
	_, err := Bridge(calculator(), BridgeAutoInput{
		Bridge:    bridge.Input{PanelCount: 10, LengthM: 100, LiveLoadKN: 1e6},
		MaxAreaM2: 1e-3,
	})
	assert.ErrorIs(t, err, ErrNoSection)

	_, err = Bridge(calculator(), BridgeAutoInput{Bridge: bridge.Input{PanelCount: 3}, MinAreaM2: 1, MaxAreaM2: 0.5})
	assert.ErrorIs(t, err, bridge.ErrInvalidInput)

	_, err = Bridge(calculator(), BridgeAutoInput{Bridge: bridge.Input{PanelCount: 1}})
	assert.ErrorIs(t, err, truss.ErrInvalidPanelCount)
}

func TestHandler_Bridge(t *testing.T) {
	h := &Handler{Calculator: calculator()}

	w := httptest.NewRecorder()
	h.Bridge(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"bridge":{"panel_count":4,"length_m":12,"live_load_kn":20}}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "required_area_m2")

	w = httptest.NewRecorder()
	h.Bridge(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"bridge":{"panel_count":10,"length_m":100,"live_load_kn":1000000},"max_area_m2":0.001}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
