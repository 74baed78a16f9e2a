package service

import (
	"context"
	"errors"
	"fmt"

	"gympoint/internal/model"
	"gympoint/internal/repository"
	"gympoint/internal/validation"

	"github.com/sirupsen/logrus"
)

type PlanStore interface {
	FindByID(ctx context.Context, id uint) (*model.Plan, error)
	FindByTitle(ctx context.Context, title string) (*model.Plan, error)
	FindAll(ctx context.Context, q repository.Query) ([]model.Plan, int64, error)
	Create(ctx context.Context, plan *model.Plan) error
	Update(ctx context.Context, plan *model.Plan) error
	Delete(ctx context.Context, plan *model.Plan) error
}

type PlanService struct {
	plans PlanStore
	log   logrus.FieldLogger
}

func NewPlanService(plans PlanStore, log logrus.FieldLogger) *PlanService {
	return &PlanService{plans: plans, log: log}
}

func (s *PlanService) Create(ctx context.Context, in validation.Plan) (*model.Plan, error) {
	if res := validation.Validate(in); !res.OK() {
		return nil, errValidationFails
	}
	if err := s.ensureTitleFree(ctx, in.Title, 0); err != nil {
		return nil, err
	}

	plan := &model.Plan{Title: in.Title, Duration: int(*in.Duration), Price: *in.Price}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}

	s.log.WithField("plan_id", plan.ID).Info("plan created")
	return plan, nil
}

func (s *PlanService) List(ctx context.Context, q repository.Query) ([]model.Plan, int64, error) {
	return s.plans.FindAll(ctx, q)
}

// Get returns nil without error when no plan has that id.
func (s *PlanService) Get(ctx context.Context, id uint) (*model.Plan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return plan, err
}

func (s *PlanService) Update(ctx context.Context, id uint, in validation.Plan) (*model.Plan, error) {
	if res := validation.Validate(in); !res.OK() {
		return nil, errValidationFails
	}

	plan, err := s.plans.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.ensureTitleFree(ctx, in.Title, plan.ID); err != nil {
		return nil, err
	}

	plan.Title = in.Title
	plan.Duration = int(*in.Duration)
	plan.Price = *in.Price
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.log.WithField("plan_id", plan.ID).Info("plan updated")
	return plan, nil
}

func (s *PlanService) Delete(ctx context.Context, id uint) error {
	plan, err := s.plans.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return errPlanNotFound
	}
	if err != nil {
		return err
	}
	if err := s.plans.Delete(ctx, plan); err != nil {
		return err
	}

	s.log.WithField("plan_id", id).Info("plan deleted")
	return nil
}

func (s *PlanService) ensureTitleFree(ctx context.Context, title string, self uint) error {
	existing, err := s.plans.FindByTitle(ctx, title)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check plan title: %w", err)
	case existing.ID != self:
		return errPlanExists
	}
	return nil
}
