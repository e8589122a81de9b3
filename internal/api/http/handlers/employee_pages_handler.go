package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/service"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

const employeeLayout = "layouts/main"

// EmployeePagesHandler renders the employee HTML forms. GET shows the form,
// POST performs the action and re-renders it with the outcome.
type EmployeePagesHandler struct {
	employees *service.EmployeeService
}

func NewEmployeePagesHandler(employees *service.EmployeeService) *EmployeePagesHandler {
	return &EmployeePagesHandler{employees: employees}
}

func (h *EmployeePagesHandler) Index(c *fiber.Ctx) error {
	query := employeeListQuery(c)
	data := fiber.Map{
		"departments": domain.Departments,
		"sortBy":      query.Sort,
		"department":  query.Department,
		"minSalary":   query.MinSalary,
		"maxSalary":   query.MaxSalary,
	}
	result, err := h.employees.List(c.UserContext(), query)
	if err != nil {
		msg, err := formMessage(err, "")
		if err != nil {
			return err
		}
		data["error"] = msg
		return c.Render("employees/index", data, employeeLayout)
	}

	data["employees"] = result.Items
	data["page"] = result.PageInfo
	return c.Render("employees/index", data, employeeLayout)
}

func (h *EmployeePagesHandler) Find(c *fiber.Ctx) error {
	data := fiber.Map{}
	if c.Method() == fiber.MethodPost {
		emp, err := h.employees.Get(c.UserContext(), c.FormValue("id"))
		if err != nil {
			msg, err := formMessage(err, "No employee found with that ID")
			if err != nil {
				return err
			}
			data["error"] = msg
		} else {
			data["employee"] = emp
		}
	}
	return c.Render("employees/find", data, employeeLayout)
}

func (h *EmployeePagesHandler) Add(c *fiber.Ctx) error {
	data := fiber.Map{"departments": domain.Departments}
	if c.Method() == fiber.MethodPost {
		emp, err := h.createFromForm(c)
		if err != nil {
			msg, err := formMessage(err, "")
			if err != nil {
				return err
			}
			data["error"] = "Error adding employee. " + msg
		} else {
			data["success"] = "Employee added successfully!"
			data["employee"] = emp
		}
	}
	return c.Render("employees/add", data, employeeLayout)
}

func (h *EmployeePagesHandler) Update(c *fiber.Ctx) error {
	data := fiber.Map{"departments": domain.Departments}
	if c.Method() == fiber.MethodPost {
		emp, err := h.updateFromForm(c)
		if err != nil {
			msg, err := formMessage(err, "No employee found")
			if err != nil {
				return err
			}
			data["error"] = msg
		} else {
			data["success"] = "Employee updated successfully!"
			data["employee"] = emp
		}
	}
	return c.Render("employees/update", data, employeeLayout)
}

func (h *EmployeePagesHandler) Delete(c *fiber.Ctx) error {
	data := fiber.Map{}
	if c.Method() == fiber.MethodPost {
		emp, err := h.employees.Delete(c.UserContext(), c.FormValue("id"))
		if err != nil {
			msg, err := formMessage(err, "No employee found to delete")
			if err != nil {
				return err
			}
			data["error"] = msg
		} else {
			data["success"] = "Employee deleted successfully"
			data["employee"] = emp
		}
	}
	return c.Render("employees/delete", data, employeeLayout)
}

func (h *EmployeePagesHandler) createFromForm(c *fiber.Ctx) (*domain.Employee, error) {
	fields, err := employeeFormFields(c)
	if err != nil {
		return nil, err
	}
	return h.employees.Create(c.UserContext(), fields)
}

func (h *EmployeePagesHandler) updateFromForm(c *fiber.Ctx) (*domain.Employee, error) {
	fields, err := employeeFormFields(c)
	if err != nil {
		return nil, err
	}
	return h.employees.Update(c.UserContext(), c.FormValue("id"), fields)
}

// employeeFormFields coerces form strings. Blank inputs are treated as not
// supplied.
func employeeFormFields(c *fiber.Ctx) (domain.EmployeeFields, error) {
	fields := domain.EmployeeFields{
		Name:       formValue(c, "name"),
		Department: formValue(c, "department"),
	}
	details := map[string]any{}

	if raw := formValue(c, "salary"); raw != nil {
		salary, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			details["salary"] = "salary must be a number"
		} else {
			fields.Salary = &salary
		}
	}
	if raw := formValue(c, "age"); raw != nil {
		age, err := strconv.Atoi(*raw)
		if err != nil {
			details["age"] = "age must be a whole number"
		} else {
			fields.Age = &age
		}
	}
	if raw := formValue(c, "isActive"); raw != nil {
		active, err := parseCheckbox(*raw)
		if err != nil {
			details["isActive"] = fmt.Sprintf("isActive cannot be %q", *raw)
		} else {
			fields.IsActive = &active
		}
	}

	if len(details) > 0 {
		return fields, apperrors.NewValidationError("Validation Error", details)
	}
	return fields, nil
}

func parseCheckbox(raw string) (bool, error) {
	if raw == "on" {
		return true, nil
	}
	return strconv.ParseBool(raw)
}
