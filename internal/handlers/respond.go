package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tourfleet/internal/db"
	"github.com/ukydev/tourfleet/internal/middleware"
	"github.com/ukydev/tourfleet/internal/models"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// requestError is a client mistake that is not a model validation error.
type requestError string

func (e requestError) Error() string { return string(e) }

func badRequest(format string, args ...interface{}) error {
	return requestError(fmt.Sprintf(format, args...))
}

// conflictError refuses a change that would break a reference.
type conflictError string

func (e conflictError) Error() string { return string(e) }

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a single JSON object into v.
func decodeJSON(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return badRequest("failed to read request body")
	}
	if len(body) == 0 {
		return badRequest("request body is required")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return badRequest("invalid JSON")
	}
	return nil
}

// pathID parses the {id} wildcard.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

// requireID parses the {id} wildcard and answers 400 when it is not a
// positive integer.
func requireID(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	id, err := pathID(r)
	if err != nil {
		writeFailure(w, r, entity, err)
		return 0, false
	}
	return id, true
}

// writeFailure maps err onto a status code. Unexpected errors are logged
// and answered with a generic message.
func writeFailure(w http.ResponseWriter, r *http.Request, entity string, err error) {
	var (
		ve       *models.ValidationError
		reqErr   requestError
		conflict conflictError
	)
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &reqErr):
		writeError(w, http.StatusBadRequest, reqErr.Error())
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, db.ErrDuplicate):
		writeError(w, http.StatusConflict, duplicateMessage(entity))
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, conflict.Error())
	default:
		log.WithFields(log.Fields{
			"request_id": middleware.RequestID(r.Context()),
			"entity":     entity,
			"path":       r.URL.Path,
		}).WithError(err).Error("Fleet request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func duplicateMessage(entity string) string {
	switch entity {
	case "vehicle":
		return "a vehicle with this plate already exists"
	case "driver":
		return "a driver with this document number already exists"
	}
	return entity + " already exists"
}
