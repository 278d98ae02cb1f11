package api

import (
	"net/http"

	"github.com/kfglabs/directory/pkg/repository"
)

// LookupsHandler serves the distinct-value projections used to populate
// front-end dropdowns.
type LookupsHandler struct {
	lookupRepo repository.LookupRepo
}

func NewLookupsHandler(lr repository.LookupRepo) *LookupsHandler {
	return &LookupsHandler{lookupRepo: lr}
}

func (h *LookupsHandler) Departments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.lookupRepo.Departments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"departments": departments}, http.StatusOK)
}

func (h *LookupsHandler) OfficeLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.lookupRepo.OfficeLocations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"officeLocations": locations}, http.StatusOK)
}
