package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/pkg/logger"
)

// Response is the success envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const internalErrorMessage = "An unexpected error occurred"

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	respondJSON(w, status, Response{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Success: false, Status: status, Message: message})
}

// respondDomainError maps error kinds to status codes. Unexpected errors are
// logged and answered with a generic message.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *domain.NotFoundError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &notFound):
		respondError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &conflict):
		respondError(w, http.StatusConflict, conflict.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidArgument):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		respondError(w, http.StatusInternalServerError, internalErrorMessage)
	}
}
