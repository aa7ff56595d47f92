package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rcliao/string-analyzer/internal/errors"
	"github.com/rcliao/string-analyzer/internal/logger"
)

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.KindInvalidInput, "Invalid request body")
		return
	}

	raw, ok := body["value"]
	if !ok || len(body) != 1 || isFalsy(raw) {
		writeError(w, http.StatusBadRequest, errors.KindInvalidInput, `Invalid request body or missing "value" field`)
		return
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		// A scalar whose text form is already stored is a duplicate before
		// it is a type error.
		if key, ok := scalarKey(raw); ok {
			_, err := s.svc.Get(r.Context(), key)
			switch {
			case err == nil:
				writeError(w, http.StatusConflict, errors.KindAlreadyExists, messages[errors.KindAlreadyExists])
				return
			case errors.KindOf(err) != errors.KindNotFound:
				s.writeServiceError(w, r, err)
				return
			}
		}
		writeError(w, http.StatusUnprocessableEntity, errors.KindInvalidInput, `Invalid data type for "value" (must be string)`)
		return
	}

	rec, err := s.svc.Create(r.Context(), value)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, rec)
}

// isFalsy reports whether raw is null, false, zero or the empty string.
func isFalsy(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "null", "false", `""`:
		return true
	}
	var f float64
	return json.Unmarshal(raw, &f) == nil && f == 0
}

// scalarKey returns the text a non-string scalar is stored under: numbers
// in shortest decimal form, true as "true". Arrays and objects have none.
func scalarKey(raw json.RawMessage) (string, bool) {
	text := strings.TrimSpace(string(raw))
	if text == "true" {
		return text, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Get(r.Context(), r.PathValue("value"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), r.PathValue("value")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilterSet(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.KindInvalidInput, "Invalid query parameter values or types")
		return
	}

	res, err := s.svc.Filter(r.Context(), fs)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleNaturalLanguage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, errors.KindInvalidInput, `Missing "query" parameter`)
		return
	}

	res, err := s.svc.FilterNaturalLanguage(r.Context(), query)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Count(r.Context())
	if err != nil {
		logger.FromContext(r.Context(), s.logger).Errorw("Health check failed", logger.FieldError, err)
		writeError(w, http.StatusServiceUnavailable, errors.KindUnknown, "store unavailable")
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"records": n,
	})
}
