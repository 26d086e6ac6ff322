package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"planner/internal/core"
	"planner/internal/log"
)

const maxBodyBytes = 1 << 20

// envelope is the body of every JSON response. Successful responses carry
// data and an optional message; failures carry error and optional fields.
type envelope struct {
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respond(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{Data: data, Message: message})
}

func fail(w http.ResponseWriter, status int, message string, fields map[string]string) {
	writeJSON(w, status, envelope{Error: message, Fields: fields})
}

// respondError maps err to a status and message. resource names the entity
// in 404 messages when err does not name it itself.
func respondError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var ve *core.ValidationError
	var nf *core.NotFoundError
	switch {
	case errors.As(err, &ve):
		fail(w, http.StatusBadRequest, "Validation failed", ve.Fields)
	case errors.As(err, &nf):
		fail(w, http.StatusNotFound, nf.Error(), nil)
	case errors.Is(err, core.ErrNotFound):
		fail(w, http.StatusNotFound, resource+" not found", nil)
	case errors.Is(err, core.ErrInvalidCredentials):
		fail(w, http.StatusUnauthorized, "Authentication failed", nil)
	case errors.Is(err, core.ErrUnauthenticated):
		fail(w, http.StatusUnauthorized, "Not authenticated", nil)
	case errors.Is(err, core.ErrForbidden):
		fail(w, http.StatusForbidden, "Forbidden", nil)
	case errors.Is(err, core.ErrConflict):
		fail(w, http.StatusBadRequest, resource+" already exists", nil)
	case errors.Is(err, core.ErrHasTransactions):
		fail(w, http.StatusBadRequest, resource+" has associated transactions", nil)
	default:
		log.LogError(r.Context(), "Request failed", err, r.Method+" "+r.URL.Path, nil)
		fail(w, http.StatusInternalServerError, "Internal server error", nil)
	}
}

// decodeJSON reads one JSON object from the body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Invalid request body", log.FieldError, err)
		fail(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if _, err := dec.Token(); err != io.EOF {
		fail(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	return true
}

// parseMonthQuery reads a zero-based month (0 = January, as sent by the web
// client) and a four-digit year, defaulting to the current month. The
// returned month is the calendar month, 1-12.
func parseMonthQuery(r *http.Request, now time.Time) (year, month int, err error) {
	year, month = now.Year(), int(now.Month())
	ve := &core.ValidationError{}
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("month")); v != "" {
		m, convErr := strconv.Atoi(v)
		if convErr != nil || m < 0 || m > 11 {
			ve.Add("month", "must be between 0 (January) and 11 (December)")
		}
		month = m + 1
	}
	if v := strings.TrimSpace(q.Get("year")); v != "" {
		y, convErr := strconv.Atoi(v)
		if convErr != nil || len(v) != 4 || y < 1000 {
			ve.Add("year", "must be a four-digit year")
		}
		year = y
	}
	return year, month, ve.OrNil()
}
