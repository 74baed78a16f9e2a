package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func num(v float64) *float64 { return &v }

func validCreate() CreateStudent {
	return CreateStudent{Name: "Ana", Email: "ana@x.com", Age: num(20), Weight: num(60), Height: num(1.7)}
}

func TestCreateStudentRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateStudent)
		ok     bool
		field  string
	}{
		{"valid payload", func(*CreateStudent) {}, true, ""},
		{"missing name", func(s *CreateStudent) { s.Name = "" }, false, "name"},
		{"bad email", func(s *CreateStudent) { s.Email = "ana" }, false, "email"},
		{"missing age", func(s *CreateStudent) { s.Age = nil }, false, "age"},
		{"age has no upper bound on create", func(s *CreateStudent) { s.Age = num(150.5) }, true, ""},
		{"age beyond int range", func(s *CreateStudent) { s.Age = num(1e20) }, false, "age"},
		{"age below int range", func(s *CreateStudent) { s.Age = num(-1e20) }, false, "age"},
		{"age not a number", func(s *CreateStudent) { s.Age = num(math.NaN()) }, false, "age"},
		{"zero weight", func(s *CreateStudent) { s.Weight = num(0) }, false, "weight"},
		{"weight above 250", func(s *CreateStudent) { s.Weight = num(251) }, false, "weight"},
		{"weight at 250", func(s *CreateStudent) { s.Weight = num(250) }, true, ""},
		{"negative height", func(s *CreateStudent) { s.Height = num(-1) }, false, "height"},
		{"missing height", func(s *CreateStudent) { s.Height = nil }, false, "height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validCreate()
			tt.mutate(&payload)
			res := Validate(payload)
			assert.Equal(t, tt.ok, res.OK())
			if !tt.ok {
				assert.Equal(t, tt.field, res.Violations[0].Field)
			}
		})
	}
}

func TestUpdateStudentAgeRules(t *testing.T) {
	base := UpdateStudent{Name: "Ana", Email: "ana@x.com", Weight: num(60), Height: num(1.7)}

	tests := []struct {
		name string
		age  *float64
		ok   bool
		rule string
	}{
		{"whole years", num(35), true, ""},
		{"at the bound", num(120), true, ""},
		{"above the bound", num(121), false, "lte"},
		{"fractional", num(35.5), false, "integer"},
		{"zero", num(0), false, "gt"},
		{"missing", nil, false, "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := base
			payload.Age = tt.age
			res := Validate(payload)
			assert.Equal(t, tt.ok, res.OK())
			if !tt.ok {
				assert.Equal(t, Violation{Field: "age", Rule: tt.rule}, res.Violations[0])
			}
		})
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	res := Validate(CreateStudent{})
	assert.False(t, res.OK())
	assert.Len(t, res.Violations, 5)
}

func TestEnrollmentAndAnswerRules(t *testing.T) {
	assert.True(t, Validate(Enrollment{StudentID: 1, PlanID: 1, StartDate: "2030-01-15"}).OK())
	assert.False(t, Validate(Enrollment{StudentID: 1, PlanID: 1, StartDate: "15/01/2030"}).OK())
	assert.False(t, Validate(Enrollment{PlanID: 1, StartDate: "2030-01-15"}).OK())

	assert.True(t, Validate(Answer{Answer: "Drink water"}).OK())
	assert.False(t, Validate(Answer{Answer: "   "}).OK())

	assert.True(t, Validate(Plan{Title: "Gold", Duration: num(6), Price: num(109.9)}).OK())
	assert.False(t, Validate(Plan{Title: "Gold", Duration: num(1.5), Price: num(109.9)}).OK())
	assert.False(t, Validate(Plan{Title: "Gold", Duration: num(1e19), Price: num(109.9)}).OK())
}
