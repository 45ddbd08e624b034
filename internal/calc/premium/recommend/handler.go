package recommend

import (
	"encoding/json"
	"net/http"

	"Truss/internal/calc/bridge"
)

type Handler struct {
	Calculator *bridge.Calculator
}

func (h *Handler) Weld(w http.ResponseWriter, r *http.Request) {
	var input WeldRecommendInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Weld(h.Calculator, input)
	if err != nil {
		http.Error(w, err.Error(), bridge.StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
