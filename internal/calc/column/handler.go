package column

import (
	"encoding/json"
	"net/http"

	"Truss/internal/calc/material"
)

type Handler struct {
	Defaults material.Material
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.E_GPa <= 0 {
		input.E_GPa = h.Defaults.Or(material.Steel()).E_GPa
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
