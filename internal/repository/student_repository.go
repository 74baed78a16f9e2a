package repository

import (
	"context"
	"fmt"

	"gympoint/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) FindByID(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &student, nil
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		return nil, notFound(err)
	}
	return &student, nil
}

// FindAll returns the name-ordered students matching q and the total number
// of matches before pagination.
func (r *StudentRepository) FindAll(ctx context.Context, q Query) ([]model.Student, int64, error) {
	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Student{}).Scopes(containsFold("name", q.Filter))
	}

	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}

	students := make([]model.Student, 0)
	if err := filtered().Order("name ASC").Scopes(paginate(q)).Find(&students).Error; err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	return students, count, nil
}

func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// CreateBatch inserts students, silently skipping emails that already exist.
// It returns how many rows were actually written.
func (r *StudentRepository) CreateBatch(ctx context.Context, students []model.Student) (int64, error) {
	if len(students) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&students)
	if result.Error != nil {
		return 0, fmt.Errorf("insert student batch: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	if err := r.db.WithContext(ctx).Save(student).Error; err != nil {
		return fmt.Errorf("update student %d: %w", student.ID, err)
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, student *model.Student) error {
	if err := r.db.WithContext(ctx).Delete(student).Error; err != nil {
		return fmt.Errorf("delete student %d: %w", student.ID, err)
	}
	return nil
}
