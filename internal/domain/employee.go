package domain

import "time"

// Department enumerates the organizational units an employee can belong to.
type Department string

const (
	DepartmentHR      Department = "HR"
	DepartmentIT      Department = "IT"
	DepartmentSales   Department = "Sales"
	DepartmentFinance Department = "Finance"
)

// Departments lists every valid department in display order.
var Departments = []Department{DepartmentHR, DepartmentIT, DepartmentSales, DepartmentFinance}

const (
	DefaultEmployeeAge        = 25
	DefaultEmployeeDepartment = DepartmentIT
	EmployeeNameMinLength     = 2
	EmployeeNameMaxLength     = 50
	EmployeeMinAge            = 16
	EmployeeMaxAge            = 80
)

// Employee is a persisted employee record.
type Employee struct {
	ID         string     `json:"_id"`
	Name       string     `json:"name"`
	Salary     float64    `json:"salary"`
	Age        int        `json:"age"`
	Department Department `json:"department"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// EmployeeFields carries a partial set of employee attributes. Nil means the
// attribute was not supplied.
type EmployeeFields struct {
	Name       *string
	Salary     *float64
	Age        *int
	Department *string
	IsActive   *bool
}

// EmployeeSortFields is the sort whitelist for employees.
var EmployeeSortFields = map[string]struct{}{
	"_id":        {},
	"name":       {},
	"salary":     {},
	"age":        {},
	"department": {},
	"isActive":   {},
	"createdAt":  {},
	"updatedAt":  {},
}
