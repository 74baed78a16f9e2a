package service

import (
	"context"
	"testing"
	"time"

	"gympoint/internal/mail"
	"gympoint/internal/model"
	"gympoint/internal/queue"
	"gympoint/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEnrollmentService(t *testing.T, mailer queue.Enqueuer) *EnrollmentService {
	t.Helper()
	r := newRepos(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, r.students.Create(ctx, &model.Student{Name: "Ana", Email: "ana@x.com", Age: 30, Weight: 60, Height: 1.65}))
	require.NoError(t, r.students.Create(ctx, &model.Student{Name: "Bruno", Email: "bruno@x.com", Age: 25, Weight: 80, Height: 1.8}))
	require.NoError(t, r.plans.Create(ctx, &model.Plan{Title: "Gold", Duration: 3, Price: 109}))

	svc := NewEnrollmentService(r.enrollments, r.students, r.plans, mailer, quietLogger())
	svc.now = fixedClock(time.Date(2030, 1, 10, 15, 0, 0, 0, time.UTC))
	return svc
}

func TestEnrollmentCreateComputesEndDateAndPrice(t *testing.T) {
	mailer := new(MockEnqueuer)
	mailer.On("Enqueue", mock.Anything, mock.MatchedBy(func(j queue.Job) bool { return j.Kind == mail.KindEnrollment })).Return(nil)
	svc := newEnrollmentService(t, mailer)
	ctx := context.Background()

	enrollment, err := svc.Create(ctx, validation.Enrollment{StudentID: 1, PlanID: 1, StartDate: "2030-01-10"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 4, 10, 0, 0, 0, 0, time.UTC), enrollment.EndDate.UTC())
	assert.Equal(t, 327.0, enrollment.Price)
	assert.Equal(t, "Gold", enrollment.Plan.Title)
	mailer.AssertExpectations(t)

	_, err = svc.Create(ctx, validation.Enrollment{StudentID: 1, PlanID: 1, StartDate: "2030-02-01"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Student already has an enrollment.", Message(err))
}

func TestEnrollmentCreateFailures(t *testing.T) {
	svc := newEnrollmentService(t, new(MockEnqueuer))

	tests := []struct {
		name    string
		in      validation.Enrollment
		kind    error
		message string
	}{
		{"Past start date", validation.Enrollment{StudentID: 1, PlanID: 1, StartDate: "2030-01-09"}, ErrValidation, "Past dates are not permitted."},
		{"Bad date format", validation.Enrollment{StudentID: 1, PlanID: 1, StartDate: "10/01/2030"}, ErrValidation, "validation fails"},
		{"Unknown student", validation.Enrollment{StudentID: 9, PlanID: 1, StartDate: "2030-02-01"}, ErrNotFound, "Student not found."},
		{"Unknown plan", validation.Enrollment{StudentID: 1, PlanID: 9, StartDate: "2030-02-01"}, ErrNotFound, "Plan not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.message, Message(err))
		})
	}
}

func TestEnrollmentUpdateAndDelete(t *testing.T) {
	mailer := new(MockEnqueuer)
	mailer.On("Enqueue", mock.Anything, mock.Anything).Return(nil)
	svc := newEnrollmentService(t, mailer)
	ctx := context.Background()

	_, err := svc.Create(ctx, validation.Enrollment{StudentID: 1, PlanID: 1, StartDate: "2030-01-10"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, validation.Enrollment{StudentID: 2, PlanID: 1, StartDate: "2030-01-10"})
	require.NoError(t, err)

	moved, err := svc.Update(ctx, 1, validation.Enrollment{StudentID: 1, PlanID: 1, StartDate: "2030-06-01"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 9, 1, 0, 0, 0, 0, time.UTC), moved.EndDate.UTC())

	_, err = svc.Update(ctx, 1, validation.Enrollment{StudentID: 2, PlanID: 1, StartDate: "2030-06-01"})
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrNotFound)
}
