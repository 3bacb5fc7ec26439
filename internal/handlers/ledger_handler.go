package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"temple-backend/internal/models"
	"temple-backend/internal/services"

	"github.com/gorilla/mux"
)

type LedgerHandler struct {
	Service *services.LedgerService
}

func NewLedgerHandler(s *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{Service: s}
}

// ListLedgers returns all ledgers, or those under ?group_id=N.
func (h *LedgerHandler) ListLedgers(w http.ResponseWriter, r *http.Request) {
	groupID, _ := strconv.Atoi(r.URL.Query().Get("group_id"))

	ledgers, err := h.Service.ListLedgers(r.Context(), groupID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ledgers)
}

func (h *LedgerHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	ledger, err := h.Service.GetLedger(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

func (h *LedgerHandler) CreateLedger(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLedgerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ledger, err := h.Service.CreateLedger(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ledger)
}

func (h *LedgerHandler) UpdateLedger(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateLedgerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ledger, err := h.Service.UpdateLedger(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

func (h *LedgerHandler) DeleteLedger(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteLedger(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Ledger deleted"})
}
