package postgresql

import (
	"context"
	"fmt"

	"github.com/fieldserv/backoffice-go/internal/domain/employee"
	"github.com/fieldserv/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, designation, active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.FullName, &e.Designation, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) Exists(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}

	return exists, nil
}

func (r *employeeRepository) GetExpenseProfile(ctx context.Context, employeeID string) (employee.ExpenseProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, basic_salary, updated_at
		FROM employee_expense_profiles
		WHERE employee_id = $1
	`

	var p employee.ExpenseProfile
	err := q.QueryRow(ctx, query, employeeID).Scan(&p.EmployeeID, &p.BasicSalary, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ExpenseProfile{}, employee.ErrExpenseProfileNotFound
		}
		return employee.ExpenseProfile{}, fmt.Errorf("failed to get expense profile: %w", err)
	}

	return p, nil
}
