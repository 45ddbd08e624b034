package batch

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
	var input BridgeBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateBridge(h.Calculator, input)
	if err != nil {
		status := bridge.StatusFor(err)
		if errors.Is(err, ErrInvalidBatch) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	h.History.RecordHeader(w, r, "bridge-batch", input, res, res.SafeCount == len(res.Results))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
