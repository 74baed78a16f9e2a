package repository

import (
	"context"
	"fmt"

	"gympoint/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HelpOrderRepository struct {
	db *gorm.DB
}

func NewHelpOrderRepository(db *gorm.DB) *HelpOrderRepository {
	return &HelpOrderRepository{db: db}
}

// studentContact loads only the student columns a help order carries.
func studentContact(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

func (r *HelpOrderRepository) FindByID(ctx context.Context, id uint) (*model.HelpOrder, error) {
	var order model.HelpOrder
	if err := r.db.WithContext(ctx).Preload("Student", studentContact).First(&order, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

// FindUnanswered lists the orders still waiting for an answer, oldest first.
func (r *HelpOrderRepository) FindUnanswered(ctx context.Context) ([]model.HelpOrder, error) {
	orders := make([]model.HelpOrder, 0)
	err := r.db.WithContext(ctx).
		Preload("Student", studentContact).
		Where("answer_at IS NULL").
		Order("created_at ASC").
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list unanswered help orders: %w", err)
	}
	return orders, nil
}

func (r *HelpOrderRepository) FindByStudent(ctx context.Context, studentID uint) ([]model.HelpOrder, error) {
	orders := make([]model.HelpOrder, 0)
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list help orders of student %d: %w", studentID, err)
	}
	return orders, nil
}

func (r *HelpOrderRepository) Create(ctx context.Context, order *model.HelpOrder) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error; err != nil {
		return fmt.Errorf("insert help order: %w", err)
	}
	return nil
}

func (r *HelpOrderRepository) Update(ctx context.Context, order *model.HelpOrder) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(order).Error; err != nil {
		return fmt.Errorf("update help order %d: %w", order.ID, err)
	}
	return nil
}

func (r *HelpOrderRepository) Delete(ctx context.Context, order *model.HelpOrder) error {
	if err := r.db.WithContext(ctx).Delete(order).Error; err != nil {
		return fmt.Errorf("delete help order %d: %w", order.ID, err)
	}
	return nil
}
