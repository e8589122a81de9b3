package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/events"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func boolPtr(b bool) *bool        { return &b }

func newMemoryEmployeeService(d events.Dispatcher) *EmployeeService {
	return NewEmployeeService(EmployeeDependencies{
		EmployeeRepo: repository.NewMemoryEmployeeRepository(),
		Dispatcher:   d,
		Pagination:   Pagination{DefaultLimit: 10, MaxLimit: 100},
	})
}

func TestEmployeeService_CreateAppliesDefaults(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc := newMemoryEmployeeService(dispatcher)

	emp, err := svc.Create(context.Background(), domain.EmployeeFields{
		Name:   strPtr("  Ada Lovelace "),
		Salary: floatPtr(0),
	})
	require.NoError(t, err)

	assert.Len(t, emp.ID, 24)
	assert.Equal(t, "Ada Lovelace", emp.Name)
	assert.Equal(t, 0.0, emp.Salary)
	assert.Equal(t, domain.DefaultEmployeeAge, emp.Age)
	assert.Equal(t, domain.DepartmentIT, emp.Department)
	assert.True(t, emp.IsActive)
	assert.False(t, emp.CreatedAt.IsZero())

	fetched, err := svc.Get(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Equal(t, emp, fetched)
	assert.Equal(t, []events.EventType{events.EventEmployeeCreated}, dispatcher.types())
}

func TestEmployeeService_CreateRejectsMissingFields(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := NewEmployeeService(EmployeeDependencies{EmployeeRepo: repo})

	_, err := svc.Create(context.Background(), domain.EmployeeFields{Age: intPtr(12)})
	de := apperrors.ToDomainError(err)
	require.Equal(t, apperrors.CodeValidationFailed, de.Code)
	assert.Contains(t, de.Details, "name")
	assert.Contains(t, de.Details, "salary")
	assert.Contains(t, de.Details, "age")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEmployeeService_CreateRejectsOutOfRange(t *testing.T) {
	svc := newMemoryEmployeeService(nil)

	cases := map[string]domain.EmployeeFields{
		"name":       {Name: strPtr("A"), Salary: floatPtr(10)},
		"salary":     {Name: strPtr("Ada"), Salary: floatPtr(-1)},
		"department": {Name: strPtr("Ada"), Salary: floatPtr(10), Department: strPtr("Marketing")},
	}
	for field, fields := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := svc.Create(context.Background(), fields)
			de := apperrors.ToDomainError(err)
			require.Equal(t, apperrors.CodeValidationFailed, de.Code)
			assert.Contains(t, de.Details, field)
		})
	}
}

func TestEmployeeService_RejectsNonFiniteSalary(t *testing.T) {
	svc := newMemoryEmployeeService(nil)
	ctx := context.Background()

	for name, salary := range map[string]float64{
		"positive infinity": math.Inf(1),
		"negative infinity": math.Inf(-1),
		"not a number":      math.NaN(),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, domain.EmployeeFields{Name: strPtr("Ada"), Salary: floatPtr(salary)})
			de := apperrors.ToDomainError(err)
			require.Equal(t, apperrors.CodeValidationFailed, de.Code)
			assert.Equal(t, "salary must be a finite number", de.Details["salary"])
		})
	}

	emp, err := svc.Create(ctx, domain.EmployeeFields{Name: strPtr("Ada"), Salary: floatPtr(10)})
	require.NoError(t, err)
	_, err = svc.Update(ctx, emp.ID, domain.EmployeeFields{Salary: floatPtr(math.Inf(1))})
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.ToDomainError(err).Code)

	page, err := svc.List(ctx, EmployeeListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 10.0, page.Items[0].Salary)
}

func TestEmployeeService_MessagesUseDomainBounds(t *testing.T) {
	svc := newMemoryEmployeeService(nil)

	_, err := svc.Create(context.Background(), domain.EmployeeFields{
		Name: strPtr("A"), Salary: floatPtr(10), Age: intPtr(81), Department: strPtr("Ops"),
	})
	de := apperrors.ToDomainError(err)
	require.Equal(t, apperrors.CodeValidationFailed, de.Code)
	assert.Equal(t, fmt.Sprintf("name must be at least %d characters", domain.EmployeeNameMinLength), de.Details["name"])
	assert.Equal(t, fmt.Sprintf("age must be at most %d", domain.EmployeeMaxAge), de.Details["age"])
	assert.Equal(t, "department must be one of: HR, IT, Sales, Finance", de.Details["department"])
}

func TestEmployeeService_UpdateRejectsUnknownDepartment(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc := newMemoryEmployeeService(dispatcher)
	ctx := context.Background()

	emp, err := svc.Create(ctx, domain.EmployeeFields{Name: strPtr("Ada"), Salary: floatPtr(100), Department: strPtr("HR")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, emp.ID, domain.EmployeeFields{Department: strPtr("Marketing"), Salary: floatPtr(999)})
	de := apperrors.ToDomainError(err)
	require.Equal(t, 400, de.HTTPStatus)
	assert.Contains(t, de.Details, "department")

	stored, err := svc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DepartmentHR, stored.Department)
	assert.Equal(t, 100.0, stored.Salary)
	assert.Equal(t, []events.EventType{events.EventEmployeeCreated}, dispatcher.types())
}

func TestEmployeeService_UpdatePartial(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc := newMemoryEmployeeService(dispatcher)
	ctx := context.Background()

	emp, err := svc.Create(ctx, domain.EmployeeFields{Name: strPtr("Ada"), Salary: floatPtr(100)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, emp.ID, domain.EmployeeFields{Age: intPtr(40), IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, 40, updated.Age)
	assert.False(t, updated.IsActive)
	assert.Equal(t, emp.CreatedAt, updated.CreatedAt)

	require.Len(t, dispatcher.published, 2)
	payload := dispatcher.published[1].Payload.(events.EmployeeChangedPayload)
	assert.Equal(t, []string{"age", "isActive"}, payload.Fields)
}

func TestEmployeeService_InvalidID(t *testing.T) {
	svc := newMemoryEmployeeService(nil)

	_, err := svc.Get(context.Background(), "not-an-id")
	assert.Equal(t, apperrors.CodeInvalidID, apperrors.ToDomainError(err).Code)

	_, err = svc.Update(context.Background(), "123", domain.EmployeeFields{})
	assert.Equal(t, apperrors.CodeInvalidID, apperrors.ToDomainError(err).Code)

	_, err = svc.Delete(context.Background(), "zzzzzzzzzzzzzzzzzzzzzzzz")
	assert.Equal(t, apperrors.CodeInvalidID, apperrors.ToDomainError(err).Code)
}

func TestEmployeeService_DeleteTwice(t *testing.T) {
	svc := newMemoryEmployeeService(nil)
	ctx := context.Background()

	emp, err := svc.Create(ctx, domain.EmployeeFields{Name: strPtr("Ada"), Salary: floatPtr(1)})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, emp.ID, deleted.ID)

	_, err = svc.Delete(ctx, emp.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEmployeeService_ListPaginates(t *testing.T) {
	svc := newMemoryEmployeeService(nil)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		_, err := svc.Create(ctx, domain.EmployeeFields{Name: strPtr(fmt.Sprintf("Employee %02d", i)), Salary: floatPtr(float64(i))})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, EmployeeListQuery{Page: 2, Limit: 5, Sort: "name"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, "Employee 05", page.Items[0].Name)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasPrev)
	assert.True(t, page.HasNext)
	assert.Equal(t, 1, *page.PrevPage)
	assert.Equal(t, 3, *page.NextPage)
}

func TestEmployeeService_ListBuildsFilter(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := NewEmployeeService(EmployeeDependencies{
		EmployeeRepo: repo,
		Pagination:   Pagination{DefaultLimit: 10, MaxLimit: 50},
	})

	matches := mock.MatchedBy(func(f repository.EmployeeFilter) bool {
		return f.MinSalary != nil && *f.MinSalary == 1000 &&
			f.MaxSalary == nil &&
			f.Department != nil && *f.Department == domain.DepartmentHR &&
			len(f.Sort) == 2 && f.Sort[0] == domain.SortField{Field: "salary", Desc: true} &&
			f.Limit == 50 && f.Offset == 0
	})
	repo.On("List", mock.Anything, matches).Return([]domain.Employee{}, nil).Once()
	repo.On("Count", mock.Anything, matches).Return(int64(0), nil).Once()

	page, err := svc.List(context.Background(), EmployeeListQuery{
		Page:       -3,
		Limit:      500,
		Sort:       "-salary, name",
		MinSalary:  "1000",
		Department: "HR",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasNext)
	repo.AssertExpectations(t)
}

func TestEmployeeService_ListRejectsBadQuery(t *testing.T) {
	svc := newMemoryEmployeeService(nil)

	_, err := svc.List(context.Background(), EmployeeListQuery{Sort: "password"})
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.ToDomainError(err).Code)

	_, err = svc.List(context.Background(), EmployeeListQuery{MaxSalary: "lots"})
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidationFailed, de.Code)
	assert.Contains(t, de.Details, "maxSalary")
}
