// Package validation checks incoming payloads against per-entity rule sets.
//
// A rule set is a plain struct whose `validate` tags enumerate the
// constraints of each field. Numeric fields are pointers so an absent value
// fails `required` while an explicit zero reaches the range rules.
package validation

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation names one broken constraint.
type Violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Result is either a pass (no violations) or the list of violations.
type Result struct {
	Violations []Violation
}

func (r Result) OK() bool {
	return len(r.Violations) == 0
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("integer", isInteger); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("fitsint", fitsInt); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
	return v
}

func isInteger(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return f == math.Trunc(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// fitsInt reports whether a float converts to int without overflow.
// NaN fails every comparison and is rejected too.
func fitsInt(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return f >= float64(math.MinInt) && f < float64(math.MaxInt)+1
	}
	return true
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validate runs the rule set carried by payload's tags.
func Validate(payload interface{}) Result {
	err := validate.Struct(payload)
	if err == nil {
		return Result{}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Result{Violations: []Violation{{Rule: "invalid"}}}
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{Field: fe.Field(), Rule: fe.Tag()})
	}
	return Result{Violations: violations}
}
