package handler

import (
	"context"
	"net/http"

	"gympoint/internal/model"
	"gympoint/internal/repository"
	"gympoint/internal/response"
	"gympoint/internal/validation"

	"github.com/sirupsen/logrus"
)

type EnrollmentService interface {
	Create(ctx context.Context, in validation.Enrollment) (*model.Enrollment, error)
	List(ctx context.Context, q repository.Query) ([]model.Enrollment, int64, error)
	Get(ctx context.Context, id uint) (*model.Enrollment, error)
	Update(ctx context.Context, id uint, in validation.Enrollment) (*model.Enrollment, error)
	Delete(ctx context.Context, id uint) error
}

type EnrollmentHandler struct {
	enrollmentService EnrollmentService
	log               logrus.FieldLogger
}

func NewEnrollmentHandler(enrollmentService EnrollmentService, log logrus.FieldLogger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService, log: log}
}

type enrollmentPage struct {
	Enrollments []model.Enrollment `json:"enrollments"`
	Count       int64              `json:"count"`
}

func (h *EnrollmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validation.Enrollment
	if !decode(w, r, &in) {
		return
	}

	enrollment, err := h.enrollmentService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, idResponse{ID: enrollment.ID})
}

func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)
	enrollments, count, err := h.enrollmentService.List(r.Context(), q)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if q.Paginated() {
		response.WriteJSON(w, http.StatusOK, enrollmentPage{Enrollments: enrollments, Count: count})
		return
	}
	response.WriteJSON(w, http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in validation.Enrollment
	if !decode(w, r, &in) {
		return
	}

	enrollment, err := h.enrollmentService.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.enrollmentService.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
