package flexure

import (
	"encoding/json"
	"net/http"
	"time"

	"Truss/internal/calc/material"
	"Truss/internal/history"
	"Truss/internal/metrics"
)

type Handler struct {
	Defaults material.Material
	History  *history.Recorder
	Metrics  *metrics.Collector
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	start := time.Now()
	res, err := CalculateWith(input, h.Defaults.Or(material.Steel()))
	h.Metrics.ObserveAnalysis("flexure", time.Since(start), res.Safe, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.History.RecordHeader(w, r, "flexure", input, res, res.Safe)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
