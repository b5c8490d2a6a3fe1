package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"confms/internal/service"
)

// JSONResponse writes data as JSON with the given status code
func JSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// ErrorResponse writes a JSON error body with the given status code
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, map[string]string{"error": message})
}

// ServiceError maps domain errors onto HTTP status codes
func ServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrNoReviewData):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyExists):
		ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrForbidden):
		ErrorResponse(w, http.StatusForbidden, err.Error())
	default:
		ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

// queryInt parses an integer query parameter with a fallback
func queryInt(r *http.Request, name string, fallback int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// pathID parses a positive integer path value
func pathID(r *http.Request, name string) (uint, error) {
	value, err := strconv.ParseUint(r.PathValue(name), 10, 32)
	if err != nil || value == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(value), nil
}
