// Package response renders the JSON envelope every endpoint replies with,
// and maps the pkg/apperr taxonomy onto HTTP status codes.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Pagination carries list metadata alongside the items.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Paginated sends a 200 response with items and pagination metadata.
func Paginated(w http.ResponseWriter, data interface{}, p Pagination) {
	body := map[string]interface{}{
		"items":      data,
		"pagination": p,
	}
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: body})
}

// PartialSuccess sends a 200 with the persisted entity plus the per-item
// failures of a partially applied stock adjustment, so clients can
// reconcile instead of guessing from logs.
func PartialSuccess(w http.ResponseWriter, data interface{}, failures interface{}) {
	write(w, http.StatusOK, envelope{
		Status:  http.StatusOK,
		Message: "Completed with partial stock adjustment failures",
		Data:    data,
		Errors:  failures,
	})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// FromError maps a service error onto the envelope: ValidationError → 422,
// ErrNotFound → 404, anything else → generic 500. PartialStockError is
// deliberately NOT surfaced here — lifecycle operations log it and still
// return the persisted entity.
func FromError(w http.ResponseWriter, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationError(w, verr.Fields)
	case errors.Is(err, apperr.ErrNotFound):
		Error(w, http.StatusNotFound, "Not found")
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}
