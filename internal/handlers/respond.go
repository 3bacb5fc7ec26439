package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"temple-backend/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps the domain error taxonomy onto HTTP status codes.
// Anything unrecognized is an internal error and gets logged, not leaked.
func respondError(w http.ResponseWriter, err error) {
	var (
		validation  *apperr.ValidationError
		conflict    *apperr.ConflictError
		referential *apperr.ReferentialIntegrityError
		notFound    *apperr.NotFoundError
		state       *apperr.StateError
	)
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: validation.Error()})
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: conflict.Error()})
	case errors.As(err, &referential):
		writeJSON(w, http.StatusConflict, errorResponse{Error: referential.Error()})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFound.Error()})
	case errors.As(err, &state):
		writeJSON(w, http.StatusPreconditionFailed, errorResponse{Error: state.Error()})
	default:
		log.Printf("[HTTP] Internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
