package client

import (
	"context"
	"fmt"
	"net/http"

	"gympoint/internal/model"
)

type SessionUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Session struct {
	User  SessionUser `json:"user"`
	Token string      `json:"token"`
}

// SignIn opens a session and keeps its token for later calls.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	body := map[string]string{"email": email, "password": password}
	if err := c.doRequest(ctx, http.MethodPost, "/sessions", body, &session); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	c.SetToken(session.Token)
	return &session, nil
}

type StudentInput struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Age    int     `json:"age"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
}

type StudentPage struct {
	Students []model.Student `json:"students"`
	Count    int64           `json:"count"`
}

func (c *Client) StudentsPage(ctx context.Context, filter string, page int) (*StudentPage, error) {
	if page < 1 {
		page = 1
	}
	var result StudentPage
	if err := c.doRequest(ctx, http.MethodGet, listPath("/students", filter, page), nil, &result); err != nil {
		return nil, fmt.Errorf("list students page %d: %w", page, err)
	}
	return &result, nil
}

// GetStudent returns nil when the API knows no such student.
func (c *Client) GetStudent(ctx context.Context, id uint) (*model.Student, error) {
	var student *model.Student
	if err := c.doRequest(ctx, http.MethodGet, idPath("/students", id), nil, &student); err != nil {
		return nil, fmt.Errorf("get student %d: %w", id, err)
	}
	return student, nil
}

func (c *Client) CreateStudent(ctx context.Context, in StudentInput) (uint, error) {
	var created idResponse
	if err := c.doRequest(ctx, http.MethodPost, "/students", in, &created); err != nil {
		return 0, fmt.Errorf("create student: %w", err)
	}
	return created.ID, nil
}

// UpdateStudent returns the fields the API echoes back; ID is filled in
// from the argument.
func (c *Client) UpdateStudent(ctx context.Context, id uint, in StudentInput) (*model.Student, error) {
	var student model.Student
	if err := c.doRequest(ctx, http.MethodPut, idPath("/students", id), in, &student); err != nil {
		return nil, fmt.Errorf("update student %d: %w", id, err)
	}
	student.ID = id
	return &student, nil
}

func (c *Client) DeleteStudent(ctx context.Context, id uint) error {
	if err := c.doRequest(ctx, http.MethodDelete, idPath("/students", id), nil, nil); err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	return nil
}

func (c *Client) ListHelpOrders(ctx context.Context) ([]model.HelpOrder, error) {
	var orders []model.HelpOrder
	if err := c.doRequest(ctx, http.MethodGet, "/help-orders", nil, &orders); err != nil {
		return nil, fmt.Errorf("list help orders: %w", err)
	}
	return orders, nil
}

func (c *Client) AnswerHelpOrder(ctx context.Context, id uint, answer string) (*model.HelpOrder, error) {
	var order model.HelpOrder
	body := map[string]string{"answer": answer}
	if err := c.doRequest(ctx, http.MethodPost, idPath("/help-orders", id)+"/answer", body, &order); err != nil {
		return nil, fmt.Errorf("answer help order %d: %w", id, err)
	}
	return &order, nil
}

type PlanInput struct {
	Title    string  `json:"title"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

func (c *Client) ListPlans(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	if err := c.doRequest(ctx, http.MethodGet, "/plans", nil, &plans); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

func (c *Client) CreatePlan(ctx context.Context, in PlanInput) (uint, error) {
	var created idResponse
	if err := c.doRequest(ctx, http.MethodPost, "/plans", in, &created); err != nil {
		return 0, fmt.Errorf("create plan: %w", err)
	}
	return created.ID, nil
}

func (c *Client) UpdatePlan(ctx context.Context, id uint, in PlanInput) (*model.Plan, error) {
	var plan model.Plan
	if err := c.doRequest(ctx, http.MethodPut, idPath("/plans", id), in, &plan); err != nil {
		return nil, fmt.Errorf("update plan %d: %w", id, err)
	}
	return &plan, nil
}

func (c *Client) DeletePlan(ctx context.Context, id uint) error {
	if err := c.doRequest(ctx, http.MethodDelete, idPath("/plans", id), nil, nil); err != nil {
		return fmt.Errorf("delete plan %d: %w", id, err)
	}
	return nil
}

type EnrollmentInput struct {
	StudentID uint   `json:"student_id"`
	PlanID    uint   `json:"plan_id"`
	StartDate string `json:"start_date"`
}

type EnrollmentPage struct {
	Enrollments []model.Enrollment `json:"enrollments"`
	Count       int64              `json:"count"`
}

func (c *Client) EnrollmentsPage(ctx context.Context, filter string, page int) (*EnrollmentPage, error) {
	if page < 1 {
		page = 1
	}
	var result EnrollmentPage
	if err := c.doRequest(ctx, http.MethodGet, listPath("/enrollments", filter, page), nil, &result); err != nil {
		return nil, fmt.Errorf("list enrollments page %d: %w", page, err)
	}
	return &result, nil
}

func (c *Client) CreateEnrollment(ctx context.Context, in EnrollmentInput) (uint, error) {
	var created idResponse
	if err := c.doRequest(ctx, http.MethodPost, "/enrollments", in, &created); err != nil {
		return 0, fmt.Errorf("create enrollment: %w", err)
	}
	return created.ID, nil
}

func (c *Client) UpdateEnrollment(ctx context.Context, id uint, in EnrollmentInput) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := c.doRequest(ctx, http.MethodPut, idPath("/enrollments", id), in, &enrollment); err != nil {
		return nil, fmt.Errorf("update enrollment %d: %w", id, err)
	}
	return &enrollment, nil
}

func (c *Client) DeleteEnrollment(ctx context.Context, id uint) error {
	if err := c.doRequest(ctx, http.MethodDelete, idPath("/enrollments", id), nil, nil); err != nil {
		return fmt.Errorf("delete enrollment %d: %w", id, err)
	}
	return nil
}
