package repository

import (
	"context"
	"fmt"
	"strings"

	"gympoint/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.WithContext(ctx).Preload("Student").Preload("Plan").First(&enrollment, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) FindByStudent(ctx context.Context, studentID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&enrollment).Error; err != nil {
		return nil, notFound(err)
	}
	return &enrollment, nil
}

// FindAll orders enrollments by start date. Filter matches the student name.
func (r *EnrollmentRepository) FindAll(ctx context.Context, q Query) ([]model.Enrollment, int64, error) {
	filtered := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&model.Enrollment{})
		if q.Filter != "" {
			students := r.db.Model(&model.Student{}).
				Select("id").
				Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q.Filter)+"%")
			tx = tx.Where("student_id IN (?)", students)
		}
		return tx
	}

	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}

	enrollments := make([]model.Enrollment, 0)
	err := filtered().
		Preload("Student").
		Preload("Plan").
		Order("start_date ASC").
		Order("id ASC").
		Scopes(paginate(q)).
		Find(&enrollments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, count, nil
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(enrollment).Error; err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *model.Enrollment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(enrollment).Error; err != nil {
		return fmt.Errorf("update enrollment %d: %w", enrollment.ID, err)
	}
	return nil
}

func (r *EnrollmentRepository) Delete(ctx context.Context, enrollment *model.Enrollment) error {
	if err := r.db.WithContext(ctx).Delete(enrollment).Error; err != nil {
		return fmt.Errorf("delete enrollment %d: %w", enrollment.ID, err)
	}
	return nil
}
