package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/ecodrive/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMapping is checked in order; the first sentinel err wraps wins.
var errorMapping = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrRouteNotFound, http.StatusUnprocessableEntity, "route_not_found"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrLookupUnavailable, http.StatusBadGateway, "lookup_unavailable"},
	{domain.ErrStorageWrite, http.StatusServiceUnavailable, "storage_write_failed"},
	{domain.ErrDomain, http.StatusInternalServerError, "domain_error"},
}

// writeError maps a service error onto its status and code. Errors without a
// known sentinel are logged and answered with a generic 500 so internals do
// not leak.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.sentinel) {
			if m.status >= http.StatusInternalServerError {
				s.log.ErrorContext(r.Context(), "request failed",
					"code", m.code, "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
			}
			writeJSON(w, m.status, ErrorResponse{Error: ErrorDetail{Code: m.code, Message: unwrapMessage(err, m.sentinel)}})
			return
		}
	}

	s.log.ErrorContext(r.Context(), "unhandled error",
		"error", err, "request_id", chimiddleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
}

// requestError answers a request rejected before reaching the service layer
// (e.g. missing or malformed body, bad query parameter).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}})
}

// unwrapMessage extracts the human-readable part that follows the sentinel.
// e.g. "service.TripService.Submit: validation error: origin required" → "origin required"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody decodes a JSON request body into dst. It writes the error
// response itself and reports whether the handler should continue.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrorDetail{Code: "body_too_large", Message: "request body is too large"}})
	case errors.Is(err, io.EOF):
		requestError(w, "request body is required")
	default:
		requestError(w, "malformed JSON body: "+err.Error())
	}
	return false
}
