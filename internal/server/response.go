package server

import (
	"encoding/json"
	"net/http"

	"github.com/rcliao/string-analyzer/internal/errors"
	"github.com/rcliao/string-analyzer/internal/logger"
)

// writeJSON writes a JSON response with the given status code. Encoding
// failures after the header is sent can only be logged.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context(), s.logger).Warnw("Failed to encode response",
			logger.FieldPath, r.URL.Path,
			logger.FieldError, err,
		)
	}
}

// errorBody is the JSON shape of every error response. Kind is omitted for
// errors outside the service's classification.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, kind errors.Kind, message string) {
	body := errorBody{Error: message}
	if kind != errors.KindUnknown {
		body.Kind = kind.String()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind errors.Kind) int {
	switch kind {
	case errors.KindInvalidInput, errors.KindUntranslatable:
		return http.StatusBadRequest
	case errors.KindAlreadyExists:
		return http.StatusConflict
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindConflictingFilters:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

var messages = map[errors.Kind]string{
	errors.KindAlreadyExists:      "String already exists in the system",
	errors.KindNotFound:           "String does not exist in the system",
	errors.KindUntranslatable:     "Unable to parse natural language query",
	errors.KindConflictingFilters: "Query parsed but resulted in conflicting filters",
}

// writeServiceError maps err to a status and message. Unclassified errors
// are logged and reported without detail.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errors.KindOf(err)
	status := statusFor(kind)

	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context(), s.logger).Errorw("Request failed",
			logger.FieldPath, r.URL.Path,
			logger.FieldError, err,
		)
		writeError(w, status, errors.KindUnknown, "Internal server error")
		return
	}

	msg, ok := messages[kind]
	if !ok {
		msg = err.Error()
	}
	writeError(w, status, kind, msg)
}
