package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/logger"
)

// envelope is the uniform response shape for every endpoint.
type envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Data    any                `json:"data,omitempty"`
	Count   *int               `json:"count,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// respondList includes a count alongside the slice payload.
func respondList(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is a 500 with a generic message; the detail goes to
// the log, not the client.
func respondServiceError(w http.ResponseWriter, err error) {
	if ve, ok := domain.AsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, envelope{
			Success: false,
			Message: "validation failed",
			Errors:  ve.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrSelfDeactivation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrAccountDisabled):
		respondError(w, http.StatusForbidden, err.Error())
	default:
		logger.Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
