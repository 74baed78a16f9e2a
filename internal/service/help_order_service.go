package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gympoint/internal/mail"
	"gympoint/internal/model"
	"gympoint/internal/queue"
	"gympoint/internal/repository"
	"gympoint/internal/validation"

	"github.com/sirupsen/logrus"
)

type HelpOrderStore interface {
	FindByID(ctx context.Context, id uint) (*model.HelpOrder, error)
	FindUnanswered(ctx context.Context) ([]model.HelpOrder, error)
	FindByStudent(ctx context.Context, studentID uint) ([]model.HelpOrder, error)
	Create(ctx context.Context, order *model.HelpOrder) error
	Update(ctx context.Context, order *model.HelpOrder) error
}

type StudentFinder interface {
	FindByID(ctx context.Context, id uint) (*model.Student, error)
}

type HelpOrderService struct {
	orders   HelpOrderStore
	students StudentFinder
	mailer   queue.Enqueuer
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewHelpOrderService(orders HelpOrderStore, students StudentFinder, mailer queue.Enqueuer, log logrus.FieldLogger) *HelpOrderService {
	return &HelpOrderService{orders: orders, students: students, mailer: mailer, log: log, now: time.Now}
}

// Ask opens a new help order for the student.
func (s *HelpOrderService) Ask(ctx context.Context, studentID uint, in validation.Question) (*model.HelpOrder, error) {
	if res := validation.Validate(in); !res.OK() {
		return nil, errValidationFails
	}

	student, err := s.students.FindByID(ctx, studentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errStudentNotFound
	}
	if err != nil {
		return nil, err
	}

	order := &model.HelpOrder{StudentID: student.ID, Question: strings.TrimSpace(in.Question)}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	order.Student = student

	s.log.WithFields(logrus.Fields{"help_order_id": order.ID, "student_id": student.ID}).Info("help order opened")
	return order, nil
}

// ListByStudent returns every order of the student, newest first.
func (s *HelpOrderService) ListByStudent(ctx context.Context, studentID uint) ([]model.HelpOrder, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errStudentNotFound
		}
		return nil, err
	}
	return s.orders.FindByStudent(ctx, studentID)
}

func (s *HelpOrderService) ListUnanswered(ctx context.Context) ([]model.HelpOrder, error) {
	return s.orders.FindUnanswered(ctx)
}

// Answer records the single answer an order may receive and queues the
// mail telling the student about it.
func (s *HelpOrderService) Answer(ctx context.Context, id uint, in validation.Answer) (*model.HelpOrder, error) {
	if res := validation.Validate(in); !res.OK() {
		return nil, errValidationFails
	}

	order, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.Answered() {
		return nil, errOrderAnswered
	}

	answer := strings.TrimSpace(in.Answer)
	answeredAt := s.now()
	order.Answer = &answer
	order.AnswerAt = &answeredAt
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	log := s.log.WithField("help_order_id", order.ID)
	log.Info("help order answered")

	if order.Student != nil {
		job, err := queue.NewJob(mail.KindAnswer, mail.AnswerMail{
			StudentName:  order.Student.Name,
			StudentEmail: order.Student.Email,
			Question:     order.Question,
			Answer:       answer,
			AnsweredAt:   answeredAt,
		})
		if err == nil {
			err = s.mailer.Enqueue(ctx, job)
		}
		if err != nil {
			log.WithError(err).Warn("could not queue answer mail")
		}
	}

	return order, nil
}
