package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"readiness/internal/assessment"
	"readiness/internal/model"
	"readiness/internal/repository"
	"readiness/internal/service"
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

// writeServiceError maps domain errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, assessment.ErrInvalidResponse),
		errors.Is(err, assessment.ErrUnsupportedAssessmentType):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConcurrentUpdate),
		errors.Is(err, repository.ErrDuplicateSession),
		errors.Is(err, model.ErrSessionClosed),
		errors.Is(err, assessment.ErrNoActiveSession),
		errors.Is(err, assessment.ErrAssessmentIncomplete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
