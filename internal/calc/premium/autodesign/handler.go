package autodesign

import (
	"encoding/json"
	"errors"
	"net/http"

	"Truss/internal/calc/bridge"
	"Truss/internal/history"
)

type Handler struct {
	Calculator *bridge.Calculator
	History    *history.Recorder
}

func (h *Handler) Bridge(w http.ResponseWriter, r *http.Request) {
	var input BridgeAutoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Bridge(h.Calculator, input)
	if err != nil {
		status := bridge.StatusFor(err)
		if errors.Is(err, ErrNoSection) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}
	h.History.RecordHeader(w, r, "bridge-autodesign", input, res, true)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
