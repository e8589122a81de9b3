package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/records-service/internal/domain"
)

// MemoryEmployeeRepository is an in-memory implementation of EmployeeRepository.
type MemoryEmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]domain.Employee
	now       func() time.Time
}

// NewMemoryEmployeeRepository creates an empty repository.
func NewMemoryEmployeeRepository() *MemoryEmployeeRepository {
	return &MemoryEmployeeRepository{
		employees: make(map[string]domain.Employee),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryEmployeeRepository) Create(_ context.Context, emp *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.employees[emp.ID]; exists {
		return fmt.Errorf("employee %s already exists", emp.ID)
	}
	now := r.now()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	r.employees[emp.ID] = *emp
	return nil
}

func (r *MemoryEmployeeRepository) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return &emp, nil
}

func (r *MemoryEmployeeRepository) Update(_ context.Context, emp *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.employees[emp.ID]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	emp.CreatedAt = existing.CreatedAt
	emp.UpdatedAt = r.now()
	r.employees[emp.ID] = *emp
	return nil
}

func (r *MemoryEmployeeRepository) Delete(_ context.Context, id string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return &emp, nil
}

func (r *MemoryEmployeeRepository) List(_ context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	for _, s := range filter.Sort {
		if _, ok := domain.EmployeeSortFields[s.Field]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSortField, s.Field)
		}
	}

	matches := r.matching(filter)
	sort.SliceStable(matches, func(i, j int) bool {
		for _, s := range filter.Sort {
			c := compareEmployees(&matches[i], &matches[j], s.Field)
			if c == 0 {
				continue
			}
			if s.Desc {
				return c > 0
			}
			return c < 0
		}
		return matches[i].ID < matches[j].ID
	})

	return paginate(matches, filter.Offset, filter.Limit), nil
}

func (r *MemoryEmployeeRepository) Count(_ context.Context, filter EmployeeFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *MemoryEmployeeRepository) matching(filter EmployeeFilter) []domain.Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		if filter.MinSalary != nil && emp.Salary < *filter.MinSalary {
			continue
		}
		if filter.MaxSalary != nil && emp.Salary > *filter.MaxSalary {
			continue
		}
		if filter.Department != nil && emp.Department != *filter.Department {
			continue
		}
		result = append(result, emp)
	}
	return result
}

func compareEmployees(a, b *domain.Employee, field string) int {
	switch field {
	case "_id":
		return strings.Compare(a.ID, b.ID)
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "salary":
		return compareOrdered(a.Salary, b.Salary)
	case "age":
		return compareOrdered(a.Age, b.Age)
	case "department":
		return strings.Compare(string(a.Department), string(b.Department))
	case "isActive":
		return compareOrdered(boolRank(a.IsActive), boolRank(b.IsActive))
	case "createdAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}

func compareOrdered[T int | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
