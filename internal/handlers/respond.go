package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/alhuda/dismissal/internal/directory"
	"github.com/alhuda/dismissal/internal/dismissal"
	"github.com/alhuda/dismissal/internal/services"
	"github.com/alhuda/dismissal/internal/store"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeErr maps the failure taxonomy onto HTTP codes in one place:
// conflicts and impossible transitions are 409, rejected input is 422,
// missing things are 404. Anything unmapped is a logged 500.
func writeErr(w http.ResponseWriter, err error) {
	code, status := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, store.ErrConflictOpenQueue):
		code, status = http.StatusConflict, "conflict_open_queue"
	case errors.Is(err, services.ErrDuplicateForToday):
		code, status = http.StatusConflict, "duplicate_for_today"
	case errors.Is(err, services.ErrNoOpenQueue):
		code, status = http.StatusConflict, "no_open_queue"
	case errors.Is(err, store.ErrNotOpen):
		code, status = http.StatusConflict, "not_open"
	case errors.Is(err, store.ErrAlreadyExists):
		code, status = http.StatusConflict, "already_exists"
	case errors.Is(err, dismissal.ErrInvalidTransition):
		code, status = http.StatusConflict, "invalid_transition"
	case errors.Is(err, services.ErrUnrecognizedFormat):
		code, status = http.StatusUnprocessableEntity, "unrecognized_format"
	case errors.Is(err, services.ErrMissingParentID):
		code, status = http.StatusUnprocessableEntity, "missing_parent_id"
	case errors.Is(err, services.ErrNoStudentsForParent):
		code, status = http.StatusNotFound, "no_students_for_parent"
	case errors.Is(err, store.ErrNotFound):
		code, status = http.StatusNotFound, "queue_not_found"
	case errors.Is(err, store.ErrRecordNotFound):
		code, status = http.StatusNotFound, "record_not_found"
	case errors.Is(err, directory.ErrParentNotFound):
		code, status = http.StatusNotFound, "parent_not_found"
	}
	if code == http.StatusInternalServerError {
		slog.Error("request failed", "component", "http", "err", err)
	}
	writeJSON(w, code, errBody{Error: status, Message: err.Error()})
}

// decodeBody parses and validates a JSON request body.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "bad_json", Message: err.Error()})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "bad_request", Message: err.Error()})
		return false
	}
	return true
}
