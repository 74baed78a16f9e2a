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

type PlanService interface {
	Create(ctx context.Context, in validation.Plan) (*model.Plan, error)
	List(ctx context.Context, q repository.Query) ([]model.Plan, int64, error)
	Get(ctx context.Context, id uint) (*model.Plan, error)
	Update(ctx context.Context, id uint, in validation.Plan) (*model.Plan, error)
	Delete(ctx context.Context, id uint) error
}

type PlanHandler struct {
	planService PlanService
	log         logrus.FieldLogger
}

func NewPlanHandler(planService PlanService, log logrus.FieldLogger) *PlanHandler {
	return &PlanHandler{planService: planService, log: log}
}

type planPage struct {
	Plans []model.Plan `json:"plans"`
	Count int64        `json:"count"`
}

func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validation.Plan
	if !decode(w, r, &in) {
		return
	}

	plan, err := h.planService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, idResponse{ID: plan.ID})
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)
	plans, count, err := h.planService.List(r.Context(), q)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if q.Paginated() {
		response.WriteJSON(w, http.StatusOK, planPage{Plans: plans, Count: count})
		return
	}
	response.WriteJSON(w, http.StatusOK, plans)
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	plan, err := h.planService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in validation.Plan
	if !decode(w, r, &in) {
		return
	}

	plan, err := h.planService.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.planService.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
