package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"triviasnake/internal/repository"
	"triviasnake/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondError maps service errors onto HTTP statuses in one place.
func respondError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	var me *service.ModerationError

	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.As(err, &me):
		writeError(w, http.StatusBadRequest, me.Error())
	case errors.Is(err, service.ErrUnsafePrompt):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAIDisabled),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAdventureNotFound),
		errors.Is(err, repository.ErrImageNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
