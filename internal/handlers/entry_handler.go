package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"temple-backend/internal/middleware"
	"temple-backend/internal/models"
	"temple-backend/internal/services"

	"github.com/gorilla/mux"
)

type EntryHandler struct {
	Service *services.EntryService
}

func NewEntryHandler(s *services.EntryService) *EntryHandler {
	return &EntryHandler{Service: s}
}

func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.Service.CreateEntry(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		log.Printf("[Entry] Entry %d posted by user %d", entry.ID, userID)
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	entry, err := h.Service.GetEntry(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// ListEntries returns entry headers for ?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	entries, err := h.Service.ListEntries(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
