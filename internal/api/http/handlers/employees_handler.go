package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/service"
)

// EmployeesHandler serves the employee JSON API.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// List godoc
// GET /api/employees?page=&limit=&sortBy=&minSalary=&maxSalary=&department=
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	query := employeeListQuery(c)
	result, err := h.employees.List(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(dto.EmployeeListResponse{PageInfo: result.PageInfo, Data: result.Items})
}

func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	emp, err := h.employees.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(emp)
}

func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	emp, err := h.employees.Create(c.UserContext(), req.Fields())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(emp)
}

func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	emp, err := h.employees.Update(c.UserContext(), c.Params("id"), req.Fields())
	if err != nil {
		return err
	}
	return c.JSON(emp)
}

func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.employees.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func employeeListQuery(c *fiber.Ctx) service.EmployeeListQuery {
	page, limit, sort := listParams(c)
	return service.EmployeeListQuery{
		Page:       page,
		Limit:      limit,
		Sort:       sort,
		MinSalary:  c.Query("minSalary"),
		MaxSalary:  c.Query("maxSalary"),
		Department: c.Query("department"),
	}
}
