package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/leave-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.Repository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, email, gender, marital_status, country, hire_date,
			   employment_status, base_salary, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.Gender, &emp.MaritalStatus,
		&emp.Country, &emp.HireDate, &emp.EmploymentStatus, &emp.BaseSalary,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return emp, nil
}

// GetActive implements employee.Repository.
func (e *employeeRepositoryImpl) GetActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, email, gender, marital_status, country, hire_date,
			   employment_status, base_salary, created_at, updated_at
		FROM employees
		WHERE employment_status = 'active'
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.FullName, &emp.Email, &emp.Gender, &emp.MaritalStatus,
			&emp.Country, &emp.HireDate, &emp.EmploymentStatus, &emp.BaseSalary,
			&emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// UpdateAttributes implements employee.Repository. Only the provided fields
// are written.
func (e *employeeRepositoryImpl) UpdateAttributes(ctx context.Context, id string, changes employee.UpdateProfileRequest) error {
	q := GetQuerier(ctx, e.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	argPos := 2

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if changes.FullName != nil {
		addClause("full_name", *changes.FullName)
	}
	if changes.Gender != nil {
		addClause("gender", *changes.Gender)
	}
	if changes.MaritalStatus != nil {
		addClause("marital_status", *changes.MaritalStatus)
	}
	if changes.Country != nil {
		addClause("country", *changes.Country)
	}

	query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $1", strings.Join(setClauses, ", "))

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
