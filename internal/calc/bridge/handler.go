package bridge

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"Truss/internal/history"
	"Truss/internal/metrics"
	"Truss/internal/truss"

	"go.uber.org/zap"
)

type Handler struct {
	Calculator *Calculator
	History    *history.Recorder
	Metrics    *metrics.Collector
	Log        *zap.Logger
}

// StatusFor maps an analysis error to the HTTP status reported to clients.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, truss.ErrSingularSystem):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, truss.ErrInvalidPanelCount),
		errors.Is(err, truss.ErrInvalidNode),
		errors.Is(err, truss.ErrDegenerateElement),
		errors.Is(err, truss.ErrInvalidSection),
		errors.Is(err, truss.ErrInvalidBoundary),
		errors.Is(err, truss.ErrInvalidLoad):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	start := time.Now()
	res, err := h.Calculator.Calculate(input)
	h.Metrics.ObserveAnalysis("bridge", time.Since(start), res.Safe, err)
	if err != nil {
		status := StatusFor(err)
		if status == http.StatusInternalServerError {
			h.Log.Error("bridge analysis", zap.Int("panels", input.PanelCount), zap.Error(err))
			http.Error(w, "Calculation error", status)
			return
		}
		h.Log.Debug("bridge analysis rejected", zap.Int("panels", input.PanelCount), zap.Error(err))
		http.Error(w, err.Error(), status)
		return
	}
	h.Log.Debug("bridge analysed",
		zap.Int("panels", input.PanelCount),
		zap.Float64("max_stress_mpa", res.MaxStressMPa),
		zap.Bool("safe", res.Safe))

	h.History.RecordHeader(w, r, "bridge", input, res, res.Safe)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
