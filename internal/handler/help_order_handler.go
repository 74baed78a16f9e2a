package handler

import (
	"context"
	"net/http"
	"time"

	"gympoint/internal/model"
	"gympoint/internal/response"
	"gympoint/internal/validation"

	"github.com/sirupsen/logrus"
)

type HelpOrderService interface {
	Ask(ctx context.Context, studentID uint, in validation.Question) (*model.HelpOrder, error)
	ListByStudent(ctx context.Context, studentID uint) ([]model.HelpOrder, error)
	ListUnanswered(ctx context.Context) ([]model.HelpOrder, error)
	Answer(ctx context.Context, id uint, in validation.Answer) (*model.HelpOrder, error)
}

type studentRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// helpOrderBody nests only the student's contact fields.
type helpOrderBody struct {
	ID        uint        `json:"id"`
	StudentID uint        `json:"student_id"`
	Student   *studentRef `json:"student,omitempty"`
	Question  string      `json:"question"`
	Answer    *string     `json:"answer"`
	AnswerAt  *time.Time  `json:"answer_at"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func newHelpOrderBody(o *model.HelpOrder) helpOrderBody {
	body := helpOrderBody{
		ID:        o.ID,
		StudentID: o.StudentID,
		Question:  o.Question,
		Answer:    o.Answer,
		AnswerAt:  o.AnswerAt,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.Student != nil {
		body.Student = &studentRef{ID: o.Student.ID, Name: o.Student.Name, Email: o.Student.Email}
	}
	return body
}

func helpOrderBodies(orders []model.HelpOrder) []helpOrderBody {
	bodies := make([]helpOrderBody, 0, len(orders))
	for i := range orders {
		bodies = append(bodies, newHelpOrderBody(&orders[i]))
	}
	return bodies
}

type HelpOrderHandler struct {
	helpOrderService HelpOrderService
	log              logrus.FieldLogger
}

func NewHelpOrderHandler(helpOrderService HelpOrderService, log logrus.FieldLogger) *HelpOrderHandler {
	return &HelpOrderHandler{helpOrderService: helpOrderService, log: log}
}

// ListUnanswered serves the administrative queue with each student nested.
func (h *HelpOrderHandler) ListUnanswered(w http.ResponseWriter, r *http.Request) {
	orders, err := h.helpOrderService.ListUnanswered(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, helpOrderBodies(orders))
}

func (h *HelpOrderHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in validation.Answer
	if !decode(w, r, &in) {
		return
	}

	order, err := h.helpOrderService.Answer(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newHelpOrderBody(order))
}

func (h *HelpOrderHandler) Ask(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(w, r)
	if !ok {
		return
	}
	var in validation.Question
	if !decode(w, r, &in) {
		return
	}

	order, err := h.helpOrderService.Ask(r.Context(), studentID, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, newHelpOrderBody(order))
}

func (h *HelpOrderHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(w, r)
	if !ok {
		return
	}

	orders, err := h.helpOrderService.ListByStudent(r.Context(), studentID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, helpOrderBodies(orders))
}
