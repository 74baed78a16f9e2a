package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gympoint/internal/database"
	"gympoint/internal/model"

	"github.com/stretchr/testify/assert"
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

func seedStudents(t *testing.T, repo *StudentRepository, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		student := &model.Student{
			Name:   fmt.Sprintf("Student %02d", i),
			Email:  fmt.Sprintf("student%02d@gym.test", i),
			Age:    20 + i,
			Weight: 70,
			Height: 1.75,
		}
		require.NoError(t, repo.Create(context.Background(), student))
	}
}

func TestStudentFindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	seedStudents(t, repo, 25)
	require.NoError(t, repo.Create(context.Background(), &model.Student{Name: "Ana Souza", Email: "ana@gym.test", Age: 20, Weight: 60, Height: 1.7}))

	tests := []struct {
		name        string
		query       Query
		expectedLen int
		expectedCnt int64
		firstName   string
	}{
		{"All students", Query{}, 26, 26, "Ana Souza"},
		{"Filter is case-insensitive", Query{Filter: "ANA"}, 1, 1, "Ana Souza"},
		{"Filter without page", Query{Filter: "student"}, 25, 25, "Student 01"},
		{"First page", Query{Filter: "student", Page: 1}, 10, 25, "Student 01"},
		{"Second page", Query{Filter: "student", Page: 2}, 10, 25, "Student 11"},
		{"Last page", Query{Filter: "student", Page: 3}, 5, 25, "Student 21"},
		{"Past the end", Query{Filter: "student", Page: 4}, 0, 25, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students, count, err := repo.FindAll(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Len(t, students, tt.expectedLen)
			assert.Equal(t, tt.expectedCnt, count)
			if tt.firstName != "" {
				assert.Equal(t, tt.firstName, students[0].Name)
			}
		})
	}
}

func TestStudentSecondPageHoldsRowsElevenToTwenty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	seedStudents(t, repo, 25)

	students, count, err := repo.FindAll(context.Background(), Query{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(25), count)
	require.Len(t, students, 10)
	for i, s := range students {
		assert.Equal(t, fmt.Sprintf("Student %02d", i+11), s.Name)
	}
}

func TestStudentNotFound(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByEmail(context.Background(), "nobody@gym.test")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentCreateBatchSkipsExistingEmails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	seedStudents(t, repo, 1)

	written, err := repo.CreateBatch(context.Background(), []model.Student{
		{Name: "Duplicate", Email: "student01@gym.test", Age: 30, Weight: 80, Height: 1.8},
		{Name: "Bruno", Email: "bruno@gym.test", Age: 30, Weight: 80, Height: 1.8},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), written)

	existing, err := repo.FindByEmail(context.Background(), "student01@gym.test")
	require.NoError(t, err)
	assert.Equal(t, "Student 01", existing.Name)
}

func TestStudentUpdateAndDelete(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()
	seedStudents(t, repo, 1)

	student, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	student.Weight = 72.5
	require.NoError(t, repo.Update(ctx, student))

	reloaded, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 72.5, reloaded.Weight)

	require.NoError(t, repo.Delete(ctx, reloaded))
	_, err = repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHelpOrderFindUnanswered(t *testing.T) {
	db := setupTestDB(t)
	students := NewStudentRepository(db)
	orders := NewHelpOrderRepository(db)
	ctx := context.Background()
	seedStudents(t, students, 1)

	require.NoError(t, orders.Create(ctx, &model.HelpOrder{StudentID: 1, Question: "Can I swap my leg day?"}))
	require.NoError(t, orders.Create(ctx, &model.HelpOrder{StudentID: 1, Question: "Is creatine ok?"}))

	answered, err := orders.FindByID(ctx, 2)
	require.NoError(t, err)
	answer := "Yes"
	now := time.Now()
	answered.Answer = &answer
	answered.AnswerAt = &now
	require.NoError(t, orders.Update(ctx, answered))

	pending, err := orders.FindUnanswered(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint(1), pending[0].ID)
	require.NotNil(t, pending[0].Student)
	assert.Equal(t, "Student 01", pending[0].Student.Name)
	assert.Equal(t, "student01@gym.test", pending[0].Student.Email)
	assert.Zero(t, pending[0].Student.Age, "only contact columns are loaded")

	all, err := orders.FindByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPlanFindByTitleAndOrder(t *testing.T) {
	repo := NewPlanRepository(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Plan{Title: "Gold", Duration: 6, Price: 100}))
	require.NoError(t, repo.Create(ctx, &model.Plan{Title: "Start", Duration: 1, Price: 129}))

	plans, count, err := repo.FindAll(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, "Start", plans[0].Title)

	plan, err := repo.FindByTitle(ctx, "Gold")
	require.NoError(t, err)
	assert.Equal(t, 600.0, plan.TotalPrice())
}

func TestEnrollmentFindAllFiltersByStudentName(t *testing.T) {
	db := setupTestDB(t)
	students := NewStudentRepository(db)
	plans := NewPlanRepository(db)
	enrollments := NewEnrollmentRepository(db)
	ctx := context.Background()

	seedStudents(t, students, 2)
	require.NoError(t, plans.Create(ctx, &model.Plan{Title: "Start", Duration: 1, Price: 129}))
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range []uint{1, 2} {
		require.NoError(t, enrollments.Create(ctx, &model.Enrollment{
			StudentID: id, PlanID: 1, StartDate: start, EndDate: start.AddDate(0, 1, 0), Price: 129,
		}))
	}

	found, count, err := enrollments.FindAll(ctx, Query{Filter: "student 02"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, found, 1)
	assert.Equal(t, "Student 02", found[0].Student.Name)
	assert.Equal(t, "Start", found[0].Plan.Title)

	byStudent, err := enrollments.FindByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), byStudent.StudentID)
}
