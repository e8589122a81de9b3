package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/events"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// DefaultEmployeeSort orders employees when no sort is requested.
const DefaultEmployeeSort = "createdAt"

// EmployeeService coordinates employee workflows.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
	pagination Pagination
	logger     *zap.Logger
}

// EmployeeDependencies bundles collaborators for the employee service.
type EmployeeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Dispatcher   events.Dispatcher
	Pagination   Pagination
	Logger       *zap.Logger
}

// EmployeeListQuery carries list parameters as received. Numeric filters stay
// raw so that every caller reports bad input the same way.
type EmployeeListQuery struct {
	Page       int
	Limit      int
	Sort       string
	MinSalary  string
	MaxSalary  string
	Department string
}

// EmployeePage is one page of employees.
type EmployeePage struct {
	PageInfo
	Items []domain.Employee
}

// employeeCandidate is the shape validated before every write.
type employeeCandidate struct {
	Name       string   `json:"name" validate:"required,employee_name"`
	Salary     *float64 `json:"salary" validate:"required,finite,gte=0"`
	Age        int      `json:"age" validate:"employee_age"`
	Department string   `json:"department" validate:"employee_department"`
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{
		employees:  deps.EmployeeRepo,
		dispatcher: deps.Dispatcher,
		pagination: deps.Pagination,
		logger:     logger,
	}
}

// List returns a filtered, sorted page of employees.
func (s *EmployeeService) List(ctx context.Context, query EmployeeListQuery) (*EmployeePage, error) {
	sort, err := ParseSort(query.Sort, domain.EmployeeSortFields, DefaultEmployeeSort)
	if err != nil {
		return nil, err
	}
	filter := repository.EmployeeFilter{Sort: sort}
	if filter.MinSalary, err = parseSalaryBound("minSalary", query.MinSalary); err != nil {
		return nil, err
	}
	if filter.MaxSalary, err = parseSalaryBound("maxSalary", query.MaxSalary); err != nil {
		return nil, err
	}
	if dept := strings.TrimSpace(query.Department); dept != "" {
		d := domain.Department(dept)
		filter.Department = &d
	}

	page := s.pagination.Normalize(query.Page, query.Limit)
	filter.Limit = page.Limit
	filter.Offset = page.Offset()

	items, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.employees.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &EmployeePage{PageInfo: NewPageInfo(page, len(items), total), Items: items}, nil
}

// Get fetches one employee by system identifier.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := employeeOID(id)
	if err != nil {
		return nil, err
	}
	emp, err := s.employees.GetByID(ctx, oid)
	if err != nil {
		return nil, employeeError(err, id)
	}
	return emp, nil
}

// Create validates and stores a new employee, applying defaults for omitted
// attributes.
func (s *EmployeeService) Create(ctx context.Context, fields domain.EmployeeFields) (*domain.Employee, error) {
	emp := &domain.Employee{
		Age:        domain.DefaultEmployeeAge,
		Department: domain.DefaultEmployeeDepartment,
		IsActive:   true,
	}
	salarySet := applyEmployeeFields(emp, fields)
	if err := validateEmployee(emp, salarySet); err != nil {
		return nil, err
	}

	emp.ID = domain.NewObjectID()
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.EventEmployeeCreated, emp, nil)
	return emp, nil
}

// Update applies a partial change. The merged record is validated before it
// is written, so a rejected update leaves the stored record untouched.
func (s *EmployeeService) Update(ctx context.Context, id string, fields domain.EmployeeFields) (*domain.Employee, error) {
	oid, err := employeeOID(id)
	if err != nil {
		return nil, err
	}
	emp, err := s.employees.GetByID(ctx, oid)
	if err != nil {
		return nil, employeeError(err, id)
	}

	applyEmployeeFields(emp, fields)
	if err := validateEmployee(emp, true); err != nil {
		return nil, err
	}
	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, employeeError(err, id)
	}
	s.publishEvent(ctx, events.EventEmployeeUpdated, emp, changedEmployeeFields(fields))
	return emp, nil
}

// Delete removes an employee and returns the removed record.
func (s *EmployeeService) Delete(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := employeeOID(id)
	if err != nil {
		return nil, err
	}
	emp, err := s.employees.Delete(ctx, oid)
	if err != nil {
		return nil, employeeError(err, id)
	}
	s.publishEvent(ctx, events.EventEmployeeDeleted, emp, nil)
	return emp, nil
}

// applyEmployeeFields copies supplied attributes onto emp and reports whether
// a salary was among them.
func applyEmployeeFields(emp *domain.Employee, fields domain.EmployeeFields) bool {
	if fields.Name != nil {
		emp.Name = strings.TrimSpace(*fields.Name)
	}
	if fields.Salary != nil {
		emp.Salary = *fields.Salary
	}
	if fields.Age != nil {
		emp.Age = *fields.Age
	}
	if fields.Department != nil {
		emp.Department = domain.Department(strings.TrimSpace(*fields.Department))
	}
	if fields.IsActive != nil {
		emp.IsActive = *fields.IsActive
	}
	return fields.Salary != nil
}

func validateEmployee(emp *domain.Employee, salarySet bool) error {
	candidate := employeeCandidate{
		Name:       emp.Name,
		Age:        emp.Age,
		Department: string(emp.Department),
	}
	if salarySet {
		salary := emp.Salary
		candidate.Salary = &salary
	}
	if err := validate.Struct(candidate); err != nil {
		return validationError("Validation Error", err)
	}
	return nil
}

func changedEmployeeFields(fields domain.EmployeeFields) []string {
	changed := make([]string, 0, 5)
	if fields.Name != nil {
		changed = append(changed, "name")
	}
	if fields.Salary != nil {
		changed = append(changed, "salary")
	}
	if fields.Age != nil {
		changed = append(changed, "age")
	}
	if fields.Department != nil {
		changed = append(changed, "department")
	}
	if fields.IsActive != nil {
		changed = append(changed, "isActive")
	}
	return changed
}

func employeeOID(id string) (string, error) {
	oid, ok := domain.ParseObjectID(strings.TrimSpace(id))
	if !ok {
		return "", apperrors.NewInvalidID("employee", id)
	}
	return oid, nil
}

func employeeError(err error, id string) error {
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return apperrors.NewNotFound("Employee", map[string]any{"id": id})
	}
	return err
}

func parseSalaryBound(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("Validation Error", map[string]any{
			name: fmt.Sprintf("%s must be a number", name),
		})
	}
	return &v, nil
}

func (s *EmployeeService) publishEvent(ctx context.Context, eventType events.EventType, emp *domain.Employee, fields []string) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Resource:  events.ResourceEmployee,
		RecordID:  emp.ID,
		Timestamp: time.Now().UTC(),
		Payload: events.EmployeeChangedPayload{
			Name:       emp.Name,
			Department: string(emp.Department),
			Fields:     fields,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
