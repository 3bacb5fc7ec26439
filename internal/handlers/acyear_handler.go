package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"temple-backend/internal/models"
	"temple-backend/internal/services"

	"github.com/gorilla/mux"
)

type AcYearHandler struct {
	Service *services.AcYearService
}

func NewAcYearHandler(s *services.AcYearService) *AcYearHandler {
	return &AcYearHandler{Service: s}
}

func (h *AcYearHandler) ListYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, years)
}

// GetActive returns the active year, 412 when none is flagged.
func (h *AcYearHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	year, err := h.Service.Active(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, year)
}

func (h *AcYearHandler) CreateYear(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAcYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	year, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, year)
}

func (h *AcYearHandler) ActivateYear(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	year, err := h.Service.Activate(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, year)
}
