// Package handler exposes the gym resources over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gympoint/internal/middleware"
	"gympoint/internal/repository"
	"gympoint/internal/response"
	"gympoint/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	msgValidationFails = "validation fails"
	msgInternal        = "Internal server error"
)

// writeError maps a service error onto its status code. Errors without a
// client message are logged and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrAlreadyAnswered):
		response.Error(w, http.StatusBadRequest, service.Message(err))
	case errors.Is(err, service.ErrUnauthorized):
		response.Error(w, http.StatusUnauthorized, service.Message(err))
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.RequestID(r.Context()),
			"path":       r.URL.Path,
		}).Error("request failed")
		response.Error(w, http.StatusInternalServerError, msgInternal)
	}
}

// decode reads a JSON body into v. A malformed body counts as a validation
// failure.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.Error(w, http.StatusBadRequest, msgValidationFails)
		return false
	}
	return true
}

// pathID reads the numeric {id} route variable. Routes constrain it to
// digits, so only overflow can fail here.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		response.Error(w, http.StatusBadRequest, msgValidationFails)
		return 0, false
	}
	return uint(id), true
}

// listQuery reads ?filter= and ?page=. A page that is present but not a
// positive number is treated as page 1.
func listQuery(r *http.Request) repository.Query {
	q := r.URL.Query()
	query := repository.Query{Filter: q.Get("filter")}
	if q.Has("page") {
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		query.Page = page
	}
	return query
}

type idResponse struct {
	ID uint `json:"id"`
}
