package service

import (
	"context"
	"errors"
	"time"

	"gympoint/internal/mail"
	"gympoint/internal/model"
	"gympoint/internal/queue"
	"gympoint/internal/repository"
	"gympoint/internal/validation"

	"github.com/sirupsen/logrus"
)

type EnrollmentStore interface {
	FindByID(ctx context.Context, id uint) (*model.Enrollment, error)
	FindByStudent(ctx context.Context, studentID uint) (*model.Enrollment, error)
	FindAll(ctx context.Context, q repository.Query) ([]model.Enrollment, int64, error)
	Create(ctx context.Context, enrollment *model.Enrollment) error
	Update(ctx context.Context, enrollment *model.Enrollment) error
	Delete(ctx context.Context, enrollment *model.Enrollment) error
}

type EnrollmentService struct {
	enrollments EnrollmentStore
	students    StudentStore
	plans       PlanStore
	mailer      queue.Enqueuer
	log         logrus.FieldLogger
	now         func() time.Time
}

func NewEnrollmentService(enrollments EnrollmentStore, students StudentStore, plans PlanStore, mailer queue.Enqueuer, log logrus.FieldLogger) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		students:    students,
		plans:       plans,
		mailer:      mailer,
		log:         log,
		now:         time.Now,
	}
}

func (s *EnrollmentService) Create(ctx context.Context, in validation.Enrollment) (*model.Enrollment, error) {
	student, plan, start, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	_, err = s.enrollments.FindByStudent(ctx, student.ID)
	if err == nil {
		return nil, errEnrollmentExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{StudentID: student.ID, PlanID: plan.ID}
	schedule(enrollment, plan, start)
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.Student = student
	enrollment.Plan = plan

	log := s.log.WithField("enrollment_id", enrollment.ID)
	log.Info("enrollment created")
	s.queueMail(ctx, log, enrollment)

	return enrollment, nil
}

func (s *EnrollmentService) List(ctx context.Context, q repository.Query) ([]model.Enrollment, int64, error) {
	return s.enrollments.FindAll(ctx, q)
}

// Get returns nil without error when no enrollment has that id.
func (s *EnrollmentService) Get(ctx context.Context, id uint) (*model.Enrollment, error) {
	enrollment, err := s.enrollments.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return enrollment, err
}

func (s *EnrollmentService) Update(ctx context.Context, id uint, in validation.Enrollment) (*model.Enrollment, error) {
	if res := validation.Validate(in); !res.OK() {
		return nil, errValidationFails
	}

	enrollment, err := s.enrollments.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errEnrollmentGone
	}
	if err != nil {
		return nil, err
	}

	student, plan, start, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	if student.ID != enrollment.StudentID {
		other, err := s.enrollments.FindByStudent(ctx, student.ID)
		if err == nil && other.ID != enrollment.ID {
			return nil, errEnrollmentExists
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	enrollment.StudentID = student.ID
	enrollment.PlanID = plan.ID
	schedule(enrollment, plan, start)
	if err := s.enrollments.Update(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.Student = student
	enrollment.Plan = plan

	s.log.WithField("enrollment_id", enrollment.ID).Info("enrollment updated")
	return enrollment, nil
}

func (s *EnrollmentService) Delete(ctx context.Context, id uint) error {
	enrollment, err := s.enrollments.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return errEnrollmentGone
	}
	if err != nil {
		return err
	}
	if err := s.enrollments.Delete(ctx, enrollment); err != nil {
		return err
	}

	s.log.WithField("enrollment_id", id).Info("enrollment deleted")
	return nil
}

// resolve validates in and loads the student and plan it points at.
func (s *EnrollmentService) resolve(ctx context.Context, in validation.Enrollment) (*model.Student, *model.Plan, time.Time, error) {
	if res := validation.Validate(in); !res.OK() {
		return nil, nil, time.Time{}, errValidationFails
	}

	start, err := time.Parse(validation.DateLayout, in.StartDate)
	if err != nil {
		return nil, nil, time.Time{}, errValidationFails
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		return nil, nil, time.Time{}, errPastDate
	}

	student, err := s.students.FindByID(ctx, in.StudentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, time.Time{}, errStudentNotFound
	}
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	plan, err := s.plans.FindByID(ctx, in.PlanID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, time.Time{}, errPlanNotFound
	}
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	return student, plan, start, nil
}

// schedule derives the end date and total price from the plan.
func schedule(e *model.Enrollment, plan *model.Plan, start time.Time) {
	e.StartDate = start
	e.EndDate = start.AddDate(0, plan.Duration, 0)
	e.Price = plan.TotalPrice()
}

func (s *EnrollmentService) queueMail(ctx context.Context, log logrus.FieldLogger, e *model.Enrollment) {
	job, err := queue.NewJob(mail.KindEnrollment, mail.EnrollmentMail{
		StudentName:  e.Student.Name,
		StudentEmail: e.Student.Email,
		PlanTitle:    e.Plan.Title,
		Duration:     e.Plan.Duration,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Price:        e.Price,
	})
	if err == nil {
		err = s.mailer.Enqueue(ctx, job)
	}
	if err != nil {
		log.WithError(err).Warn("could not queue enrollment mail")
	}
}
