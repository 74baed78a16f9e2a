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

type StudentService interface {
	Create(ctx context.Context, in validation.CreateStudent) (*model.Student, error)
	List(ctx context.Context, q repository.Query) ([]model.Student, int64, error)
	Get(ctx context.Context, id uint) (*model.Student, error)
	Update(ctx context.Context, id uint, in validation.UpdateStudent) (*model.Student, error)
	Delete(ctx context.Context, id uint) error
}

type StudentHandler struct {
	studentService StudentService
	log            logrus.FieldLogger
}

func NewStudentHandler(studentService StudentService, log logrus.FieldLogger) *StudentHandler {
	return &StudentHandler{studentService: studentService, log: log}
}

type studentPage struct {
	Students []model.Student `json:"students"`
	Count    int64           `json:"count"`
}

// studentFields is what an update echoes back.
type studentFields struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Age    int     `json:"age"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validation.CreateStudent
	if !decode(w, r, &in) {
		return
	}

	student, err := h.studentService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, idResponse{ID: student.ID})
}

// List answers a plain array, or {students, count} when a page is asked for.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)
	students, count, err := h.studentService.List(r.Context(), q)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if q.Paginated() {
		response.WriteJSON(w, http.StatusOK, studentPage{Students: students, Count: count})
		return
	}
	response.WriteJSON(w, http.StatusOK, students)
}

// Get answers null for an unknown id.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	student, err := h.studentService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in validation.UpdateStudent
	if !decode(w, r, &in) {
		return
	}

	s, err := h.studentService.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, studentFields{
		Name:   s.Name,
		Email:  s.Email,
		Age:    s.Age,
		Weight: s.Weight,
		Height: s.Height,
	})
}

func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.studentService.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
