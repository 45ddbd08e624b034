package batch

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

func TestCalculateBridge(t *testing.T) {
	res, err := CalculateBridge(calculator(), BridgeBatchInput{Items: []bridge.Input{
		{PanelCount: 2, AreaM2: 0.01},
		{PanelCount: 4, AreaM2: 0.01, LiveLoadKN: 5},
		{PanelCount: 10, LengthM: 60, AreaM2: 0.001, LiveLoadKN: 500},
	}})
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.Len(t, res.Results[0].Members, truss.ElementCount(2))
	assert.Len(t, res.Results[1].Members, truss.ElementCount(4))
	assert.Equal(t, 2, res.SafeCount)
}

func TestCalculateBridge_StopsAtFailure(t *testing.T) {
	_, err := CalculateBridge(calculator(), BridgeBatchInput{Items: []bridge.Input{
		{PanelCount: 3, AreaM2: 0.01},
		{PanelCount: 1, AreaM2: 0.01},
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, truss.ErrInvalidPanelCount)
	assert.Contains(t, err.Error(), "item 1")
}

func TestCalculateBridge_Limits(t *testing.T) {
	_, err := CalculateBridge(calculator(), BridgeBatchInput{})
	assert.ErrorIs(t, err, ErrInvalidBatch)

	_, err = CalculateBridge(calculator(), BridgeBatchInput{Items: make([]bridge.Input, MaxItems+1)})
	assert.ErrorIs(t, err, ErrInvalidBatch)
}

func TestHandler_Bridge(t *testing.T) {
	h := &Handler{Calculator: calculator()}

	w := httptest.NewRecorder()
	h.Bridge(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"items":[{"panel_count":3,"area_m2":0.01}]}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.Bridge(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Bridge(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"items":[{"panel_count":3,"area_m2":0.01,"fixed_dofs":[0]}]}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
