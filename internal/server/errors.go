package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stocklight/stocklight/internal/errortypes"
	"github.com/stocklight/stocklight/internal/inventory"
)

// ErrorResponse is the envelope for internal and upstream failures.
type ErrorResponse struct {
	Status  string                 `json:"status"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error response codes
const (
	StatusCodeValidationError = "VALIDATION_ERROR"
	StatusCodeNotFound        = "RESOURCE_NOT_FOUND"
	StatusCodeDatabaseError   = "DATABASE_ERROR"
	StatusCodeUpstreamError   = "UPSTREAM_ERROR"
	StatusCodeInternalError   = "INTERNAL_ERROR"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeNotFound writes the 404 body used by single-product lookups.
func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": message})
}

// writeBatchNotFound writes the 404 body used by batch operations.
func writeBatchNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Some product IDs not found"})
}

// writeValidationErrors writes a 400 response with per-field messages.
func writeValidationErrors(w http.ResponseWriter, fieldErrors map[string]string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": fieldErrors})
}

// writeErrorResponse writes a structured error envelope and logs the error.
func writeErrorResponse(w http.ResponseWriter, status int, code, message string, err error) {
	errResp := ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: message,
	}

	if err != nil {
		errResp.Details = map[string]interface{}{
			"error": err.Error(),
		}

		logErr := errortypes.APIError(err, "API Error ("+code+")").
			WithField("status_code", status).
			WithField("error_code", code)
		errortypes.LogError(nil, logErr)
	}

	writeJSON(w, status, errResp)
}

// handleError maps an error to the appropriate HTTP response. Product
// lookups that miss map to 404; validation errors to 400; upstream AI and
// network failures to 502; everything else to 500.
func handleError(w http.ResponseWriter, err error) {
	if errors.Is(err, inventory.ErrProductNotFound) {
		writeNotFound(w, "Product not found")
		return
	}
	if errors.Is(err, inventory.ErrMissingEmbedding) {
		writeNotFound(w, "Product has no embedding")
		return
	}

	switch {
	case errortypes.IsValidationError(err):
		writeErrorResponse(w, http.StatusBadRequest, StatusCodeValidationError,
			"Invalid request parameters", err)
	case errortypes.IsNotFoundError(err):
		writeNotFound(w, "Product not found")
	case errortypes.IsDatabaseError(err):
		writeErrorResponse(w, http.StatusInternalServerError, StatusCodeDatabaseError,
			"An unexpected error occurred", err)
	case isUpstreamError(err):
		writeErrorResponse(w, http.StatusBadGateway, StatusCodeUpstreamError,
			"Upstream service error", err)
	default:
		writeErrorResponse(w, http.StatusInternalServerError, StatusCodeInternalError,
			"An unexpected error occurred", err)
	}
}

// isUpstreamError reports whether err came from an upstream AI, network or
// external service call.
func isUpstreamError(err error) bool {
	if errortypes.IsNetworkError(err) {
		return true
	}
	t := errortypes.TypeOf(err)
	return t == errortypes.ErrorTypeAPI || t == errortypes.ErrorTypeExternal
}
