package service

import (
	"context"
	"io"
	"testing"
	"time"

	"gympoint/internal/database"
	"gympoint/internal/queue"
	"gympoint/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func ptr(v float64) *float64 { return &v }

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) Enqueue(ctx context.Context, job queue.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type repos struct {
	students    *repository.StudentRepository
	plans       *repository.PlanRepository
	enrollments *repository.EnrollmentRepository
	orders      *repository.HelpOrderRepository
	users       *repository.UserRepository
}

func newRepos(db *gorm.DB) repos {
	return repos{
		students:    repository.NewStudentRepository(db),
		plans:       repository.NewPlanRepository(db),
		enrollments: repository.NewEnrollmentRepository(db),
		orders:      repository.NewHelpOrderRepository(db),
		users:       repository.NewUserRepository(db),
	}
}
