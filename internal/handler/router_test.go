package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gympoint/internal/auth"
	"gympoint/internal/database"
	"gympoint/internal/metrics"
	"gympoint/internal/model"
	"gympoint/internal/queue"
	"gympoint/internal/repository"
	"gympoint/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testAPI struct {
	handler http.Handler
	db      *gorm.DB
	token   string
}

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

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := setupTestDB(t)
	log := quietLogger()
	tokens := auth.NewTokens("test-secret", time.Hour)
	mailer := queue.NewNoop(log)

	students := repository.NewStudentRepository(db)
	plans := repository.NewPlanRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	orders := repository.NewHelpOrderRepository(db)
	users := repository.NewUserRepository(db)

	sessions := service.NewSessionService(users, tokens, log)
	require.NoError(t, sessions.EnsureAdmin(context.Background(), "Administrator", "admin@gympoint.com", "123456"))

	h := NewRouter(Deps{
		Students:    NewStudentHandler(service.NewStudentService(students, log), log),
		HelpOrders:  NewHelpOrderHandler(service.NewHelpOrderService(orders, students, mailer, log), log),
		Plans:       NewPlanHandler(service.NewPlanService(plans, log), log),
		Enrollments: NewEnrollmentHandler(service.NewEnrollmentService(enrollments, students, plans, mailer, log), log),
		Sessions:    NewSessionHandler(sessions, log),
		Imports: NewImportHandler(context.Background(), service.NewImportService(students, log), nil,
			t.TempDir(), 10<<20, log),
		Tokens:         tokens,
		Metrics:        metrics.New(),
		Log:            log,
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	api := &testAPI{handler: h, db: db}
	rr := api.do(t, http.MethodPost, "/sessions", map[string]string{"email": "admin@gympoint.com", "password": "123456"})
	require.Equal(t, http.StatusOK, rr.Code)
	var session sessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	api.token = session.Token
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func anaPayload() map[string]interface{} {
	return map[string]interface{}{"name": "Ana", "email": "ana@x.com", "age": 30, "weight": 60, "height": 1.65}
}

func TestCreateThenFetchStudent(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPost, "/students", anaPayload())
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1}`, rr.Body.String())

	rr = api.do(t, http.MethodGet, "/students/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var student model.Student
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &student))
	assert.Equal(t, uint(1), student.ID)
	assert.Equal(t, "Ana", student.Name)
	assert.Equal(t, "ana@x.com", student.Email)
	assert.Equal(t, 30, student.Age)
	assert.Equal(t, 60.0, student.Weight)
	assert.Equal(t, 1.65, student.Height)

	rr = api.do(t, http.MethodGet, "/students/2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", string(bytes.TrimSpace(rr.Body.Bytes())))
}

func TestCreateStudentFailures(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/students", anaPayload()).Code)

	missingEmail := anaPayload()
	delete(missingEmail, "email")
	duplicate := anaPayload()
	duplicate["name"] = "Another Ana"
	hugeAge := anaPayload()
	hugeAge["email"] = "huge@x.com"
	hugeAge["age"] = 1e20

	tests := []struct {
		name         string
		body         interface{}
		expectedBody string
	}{
		{"Missing field", missingEmail, `{"error":"validation fails"}`},
		{"Malformed body", "not an object", `{"error":"validation fails"}`},
		{"Duplicate email", duplicate, `{"error":"Student already exists."}`},
		{"Age overflows int", hugeAge, `{"error":"validation fails"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := api.do(t, http.MethodPost, "/students", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}

	var stored model.Student
	require.NoError(t, api.db.First(&stored, 1).Error)
	assert.Equal(t, "Ana", stored.Name)
	var count int64
	require.NoError(t, api.db.Model(&model.Student{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListStudents(t *testing.T) {
	api := newTestAPI(t)
	names := []string{"Bia", "Caio", "Duda", "Enzo", "Fabi", "Gabi", "Heitor", "Iris", "Joao", "Kaio", "Lara", "Maya", "Nina", "Otto", "Pedro"}
	for i, name := range names {
		rr := api.do(t, http.MethodPost, "/students", map[string]interface{}{
			"name": name, "email": name + "@x.com", "age": 20 + i, "weight": 70, "height": 1.7,
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := api.do(t, http.MethodGet, "/students", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var all []model.Student
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	assert.Len(t, all, len(names))

	rr = api.do(t, http.MethodGet, "/students?page=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var page studentPage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, int64(15), page.Count)
	require.Len(t, page.Students, 5)
	assert.Equal(t, "Lara", page.Students[0].Name)

	rr = api.do(t, http.MethodGet, "/students?filter=ai&page=abc", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	page = studentPage{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, int64(2), page.Count)
	assert.Equal(t, "Caio", page.Students[0].Name)
}

func TestUpdateStudentReturnsWhitelistedFields(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/students", anaPayload()).Code)

	update := anaPayload()
	update["age"] = 31
	rr := api.do(t, http.MethodPut, "/students/1", update)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"name":"Ana","email":"ana@x.com","age":31,"weight":60,"height":1.65}`, rr.Body.String())

	update["age"] = 121
	rr = api.do(t, http.MethodPut, "/students/1", update)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	update["age"] = 31
	rr = api.do(t, http.MethodPut, "/students/9", update)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Student not found."}`, rr.Body.String())
}

func TestDeleteStudent(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/students", anaPayload()).Code)

	rr := api.do(t, http.MethodDelete, "/students/99", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Student not found."}`, rr.Body.String())

	var count int64
	require.NoError(t, api.db.Model(&model.Student{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	rr = api.do(t, http.MethodDelete, "/students/1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestAnswerHelpOrder(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/students", anaPayload()).Code)

	rr := api.do(t, http.MethodPost, "/students/1/help-orders", map[string]string{"question": "Can I train twice a day?"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = api.do(t, http.MethodGet, "/help-orders", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var pending []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.JSONEq(t, `{"id":1,"name":"Ana","email":"ana@x.com"}`, string(pending[0]["student"]))

	rr = api.do(t, http.MethodPost, "/help-orders/1/answer", map[string]string{"answer": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"validation fails"}`, rr.Body.String())

	rr = api.do(t, http.MethodPost, "/help-orders/1/answer", map[string]string{"answer": "Yes, with rest days."})
	require.Equal(t, http.StatusOK, rr.Code)
	var answered model.HelpOrder
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &answered))
	require.NotNil(t, answered.Answer)
	assert.Equal(t, "Yes, with rest days.", *answered.Answer)
	assert.NotNil(t, answered.AnswerAt)

	rr = api.do(t, http.MethodGet, "/help-orders", nil)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = api.do(t, http.MethodPost, "/help-orders/1/answer", map[string]string{"answer": "Again"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Help order already answered."}`, rr.Body.String())

	rr = api.do(t, http.MethodPost, "/help-orders/7/answer", map[string]string{"answer": "Yes"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlansAndEnrollments(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/students", anaPayload()).Code)

	rr := api.do(t, http.MethodPost, "/plans", map[string]interface{}{"title": "Gold", "duration": 3, "price": 109})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1}`, rr.Body.String())

	rr = api.do(t, http.MethodPost, "/plans", map[string]interface{}{"title": "Gold", "duration": 6, "price": 99})
	assert.JSONEq(t, `{"error":"Plan already exists."}`, rr.Body.String())

	start := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	rr = api.do(t, http.MethodPost, "/enrollments", map[string]interface{}{"student_id": 1, "plan_id": 1, "start_date": start})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = api.do(t, http.MethodGet, "/enrollments/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var enrollment model.Enrollment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &enrollment))
	assert.Equal(t, 327.0, enrollment.Price)
	require.NotNil(t, enrollment.Plan)
	assert.Equal(t, "Gold", enrollment.Plan.Title)

	rr = api.do(t, http.MethodPost, "/enrollments", map[string]interface{}{"student_id": 1, "plan_id": 1, "start_date": start})
	assert.JSONEq(t, `{"error":"Student already has an enrollment."}`, rr.Body.String())

	rr = api.do(t, http.MethodGet, "/enrollments?page=1", nil)
	var page enrollmentPage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Count)

	assert.Equal(t, http.StatusNoContent, api.do(t, http.MethodDelete, "/enrollments/1", nil).Code)
	assert.Equal(t, http.StatusNoContent, api.do(t, http.MethodDelete, "/plans/1", nil).Code)
}

func TestRouterAuth(t *testing.T) {
	api := newTestAPI(t)
	api.token = ""

	rr := api.do(t, http.MethodGet, "/students", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"Token not provided"}`, rr.Body.String())

	rr = api.do(t, http.MethodPost, "/sessions", map[string]string{"email": "admin@gympoint.com", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"Password does not match"}`, rr.Body.String())

	rr = api.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = api.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "gympoint_http_requests_total")
}
