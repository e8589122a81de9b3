package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/records-service/internal/domain"
)

// EmployeeFilter captures list parameters for employees.
type EmployeeFilter struct {
	MinSalary  *float64
	MaxSalary  *float64
	Department *domain.Department
	Sort       []domain.SortField
	Limit      int
	Offset     int
}

// EmployeeRepository encapsulates employee persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	Count(ctx context.Context, filter EmployeeFilter) (int64, error)
}

var employeeColumnsBySortKey = map[string]string{
	"_id":        "id",
	"name":       "name",
	"salary":     "salary",
	"age":        "age",
	"department": "department",
	"isActive":   "is_active",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

const employeeColumns = `id, name, salary, age, department, is_active, created_at, updated_at`

type employeeRepository struct {
	db DBTX
}

// NewEmployeeRepository instantiates repository.
func NewEmployeeRepository(db DBTX) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (id, name, salary, age, department, is_active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		emp.ID,
		emp.Name,
		emp.Salary,
		emp.Age,
		string(emp.Department),
		emp.IsActive,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return translatePgError(err)
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(r.db.QueryRow(ctx, query, id))
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees SET name=$1, salary=$2, age=$3, department=$4, is_active=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		emp.Name,
		emp.Salary,
		emp.Age,
		string(emp.Department),
		emp.IsActive,
		emp.ID,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEmployeeNotFound
	}
	if err != nil {
		return translatePgError(err)
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) (*domain.Employee, error) {
	query := `DELETE FROM employees WHERE id = $1 RETURNING ` + employeeColumns
	return scanEmployee(r.db.QueryRow(ctx, query, id))
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	where, args := employeeWhere(filter)
	order, err := orderBy(filter.Sort, func(field string) (string, bool) {
		col, ok := employeeColumnsBySortKey[field]
		return col, ok
	}, "id")
	if err != nil {
		return nil, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM employees%s %s LIMIT $%d OFFSET $%d`,
		employeeColumns, where, order, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) Count(ctx context.Context, filter EmployeeFilter) (int64, error) {
	where, args := employeeWhere(filter)
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func employeeWhere(filter EmployeeFilter) (string, []any) {
	clauses := []string{}
	args := []any{}

	if filter.MinSalary != nil {
		args = append(args, *filter.MinSalary)
		clauses = append(clauses, fmt.Sprintf("salary >= $%d", len(args)))
	}
	if filter.MaxSalary != nil {
		args = append(args, *filter.MaxSalary)
		clauses = append(clauses, fmt.Sprintf("salary <= $%d", len(args)))
	}
	if filter.Department != nil {
		args = append(args, string(*filter.Department))
		clauses = append(clauses, fmt.Sprintf("department = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		emp        domain.Employee
		department string
	)
	if err := row.Scan(
		&emp.ID,
		&emp.Name,
		&emp.Salary,
		&emp.Age,
		&department,
		&emp.IsActive,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	emp.Department = domain.Department(department)
	return &emp, nil
}
