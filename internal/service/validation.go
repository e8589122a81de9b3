package service

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/records-service/internal/domain"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

var validate = newValidator()

// newValidator reports fields by their JSON names so error details line up
// with request bodies. Employee bounds are registered as aliases built from
// the domain constants.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("finite", isFinite); err != nil {
		panic(err)
	}

	departments := make([]string, 0, len(domain.Departments))
	for _, d := range domain.Departments {
		departments = append(departments, string(d))
	}
	v.RegisterAlias("employee_name", fmt.Sprintf("min=%d,max=%d", domain.EmployeeNameMinLength, domain.EmployeeNameMaxLength))
	v.RegisterAlias("employee_age", fmt.Sprintf("gte=%d,lte=%d", domain.EmployeeMinAge, domain.EmployeeMaxAge))
	v.RegisterAlias("employee_department", "oneof="+strings.Join(departments, " "))
	return v
}

func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// validationError converts validator output into a 400 with one message per
// offending field.
func validationError(message string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fieldMessage(fe)
	}
	return apperrors.NewValidationError(message, details)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "finite":
		return fmt.Sprintf("%s must be a finite number", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
