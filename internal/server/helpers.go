package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bobmcallan/shyft/internal/models"
)

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteErrorWithCode writes a JSON error response with an error code.
func WriteErrorWithCode(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// errorStatus maps a service error to an HTTP status and error code.
// Upstream kinds are checked first: a snapshot outage is also a no-match.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidIdentifier):
		return http.StatusBadRequest, "invalid_identifier"
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream_timeout"
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "upstream_unavailable"
	case errors.Is(err, models.ErrMalformedResponse):
		return http.StatusBadGateway, "malformed_response"
	case errors.Is(err, models.ErrNoAnnualData):
		return http.StatusNotFound, "no_annual_data"
	case errors.Is(err, models.ErrJoinEmpty):
		return http.StatusNotFound, "join_empty"
	case errors.Is(err, models.ErrNoMatch):
		return http.StatusNotFound, "no_match"
	}
	return http.StatusInternalServerError, "internal"
}

// WriteServiceError writes err with the status its kind maps to.
func WriteServiceError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	WriteErrorWithCode(w, status, err.Error(), code)
}
