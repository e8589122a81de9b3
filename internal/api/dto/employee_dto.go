package dto

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/spec-kit/records-service/internal/domain"
)

// EmployeeRequest payload for create and update. Absent attributes stay nil.
type EmployeeRequest struct {
	Name       *string  `json:"name" form:"name"`
	Salary     *float64 `json:"salary" form:"salary"`
	Age        *int     `json:"age" form:"age"`
	Department *string  `json:"department" form:"department"`
	IsActive   *bool    `json:"isActive" form:"isActive"`
}

// UnmarshalJSON accepts numbers and booleans either as JSON literals or as
// their string form, so "5000" and 5000 both set the salary.
func (r *EmployeeRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name       *string         `json:"name"`
		Salary     json.RawMessage `json:"salary"`
		Age        json.RawMessage `json:"age"`
		Department *string         `json:"department"`
		IsActive   json.RawMessage `json:"isActive"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	req := EmployeeRequest{Name: raw.Name, Department: raw.Department}
	if text, ok, err := scalarText("salary", raw.Salary, floatType); err != nil {
		return err
	} else if ok {
		salary, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return typeError("salary", text, floatType)
		}
		req.Salary = &salary
	}
	if text, ok, err := scalarText("age", raw.Age, intType); err != nil {
		return err
	} else if ok {
		age, err := strconv.Atoi(text)
		if err != nil {
			return typeError("age", text, intType)
		}
		req.Age = &age
	}
	if text, ok, err := scalarText("isActive", raw.IsActive, boolType); err != nil {
		return err
	} else if ok {
		active, err := strconv.ParseBool(text)
		if err != nil {
			return typeError("isActive", text, boolType)
		}
		req.IsActive = &active
	}

	*r = req
	return nil
}

// Fields converts the request into domain fields.
func (r EmployeeRequest) Fields() domain.EmployeeFields {
	return domain.EmployeeFields{
		Name:       r.Name,
		Salary:     r.Salary,
		Age:        r.Age,
		Department: r.Department,
		IsActive:   r.IsActive,
	}
}

var (
	floatType = reflect.TypeOf(float64(0))
	intType   = reflect.TypeOf(int(0))
	boolType  = reflect.TypeOf(false)
)

// scalarText returns the text of a number, boolean or string literal. Null,
// missing and blank strings report ok=false.
func scalarText(field string, raw json.RawMessage, want reflect.Type) (string, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false, nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		s = strings.TrimSpace(s)
		return s, s != "", nil
	case '{', '[':
		return "", false, typeError(field, string(raw), want)
	}
	return string(raw), true, nil
}

func typeError(field, value string, want reflect.Type) error {
	return &json.UnmarshalTypeError{Value: value, Type: want, Field: field}
}
