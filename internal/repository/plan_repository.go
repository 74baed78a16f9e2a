package repository

import (
	"context"
	"fmt"

	"gympoint/internal/model"

	"gorm.io/gorm"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) FindByID(ctx context.Context, id uint) (*model.Plan, error) {
	var plan model.Plan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &plan, nil
}

func (r *PlanRepository) FindByTitle(ctx context.Context, title string) (*model.Plan, error) {
	var plan model.Plan
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&plan).Error; err != nil {
		return nil, notFound(err)
	}
	return &plan, nil
}

// FindAll orders plans by duration, shortest first. Filter matches the title.
func (r *PlanRepository) FindAll(ctx context.Context, q Query) ([]model.Plan, int64, error) {
	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Plan{}).Scopes(containsFold("title", q.Filter))
	}

	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count plans: %w", err)
	}

	plans := make([]model.Plan, 0)
	if err := filtered().Order("duration ASC").Order("title ASC").Scopes(paginate(q)).Find(&plans).Error; err != nil {
		return nil, 0, fmt.Errorf("list plans: %w", err)
	}
	return plans, count, nil
}

func (r *PlanRepository) Create(ctx context.Context, plan *model.Plan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

func (r *PlanRepository) Update(ctx context.Context, plan *model.Plan) error {
	if err := r.db.WithContext(ctx).Save(plan).Error; err != nil {
		return fmt.Errorf("update plan %d: %w", plan.ID, err)
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, plan *model.Plan) error {
	if err := r.db.WithContext(ctx).Delete(plan).Error; err != nil {
		return fmt.Errorf("delete plan %d: %w", plan.ID, err)
	}
	return nil
}
