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

type StudentStore interface {
	FindByID(ctx context.Context, id uint) (*model.Student, error)
	FindByEmail(ctx context.Context, email string) (*model.Student, error)
	FindAll(ctx context.Context, q repository.Query) ([]model.Student, int64, error)
	Create(ctx context.Context, student *model.Student) error
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, student *model.Student) error
}

type StudentService struct {
	students StudentStore
	log      logrus.FieldLogger
}

func NewStudentService(students StudentStore, log logrus.FieldLogger) *StudentService {
	return &StudentService{students: students, log: log}
}

func (s *StudentService) Create(ctx context.Context, in validation.CreateStudent) (*model.Student, error) {
	if res := validation.Validate(in); !res.OK() {
		s.log.WithField("violations", res.Violations).Debug("student create rejected")
		return nil, errValidationFails
	}

	if err := s.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	student := &model.Student{
		Name:   in.Name,
		Email:  in.Email,
		Age:    int(*in.Age),
		Weight: *in.Weight,
		Height: *in.Height,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.log.WithField("student_id", student.ID).Info("student created")
	return student, nil
}

func (s *StudentService) List(ctx context.Context, q repository.Query) ([]model.Student, int64, error) {
	return s.students.FindAll(ctx, q)
}

// Get returns nil without error when no student has that id.
func (s *StudentService) Get(ctx context.Context, id uint) (*model.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return student, err
}

func (s *StudentService) Update(ctx context.Context, id uint, in validation.UpdateStudent) (*model.Student, error) {
	if res := validation.Validate(in); !res.OK() {
		s.log.WithField("violations", res.Violations).Debug("student update rejected")
		return nil, errValidationFails
	}

	student, err := s.students.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errStudentNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, in.Email, student.ID); err != nil {
		return nil, err
	}

	student.Name = in.Name
	student.Email = in.Email
	student.Age = int(*in.Age)
	student.Weight = *in.Weight
	student.Height = *in.Height
	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	s.log.WithField("student_id", student.ID).Info("student updated")
	return student, nil
}

func (s *StudentService) Delete(ctx context.Context, id uint) error {
	student, err := s.students.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return errStudentNotFound
	}
	if err != nil {
		return err
	}

	if err := s.students.Delete(ctx, student); err != nil {
		return err
	}

	s.log.WithField("student_id", id).Info("student deleted")
	return nil
}

// ensureEmailFree fails with a conflict when another student (any id other
// than self) already uses email.
func (s *StudentService) ensureEmailFree(ctx context.Context, email string, self uint) error {
	existing, err := s.students.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check email: %w", err)
	case existing.ID != self:
		return errStudentExists
	}
	return nil
}
