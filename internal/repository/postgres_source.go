package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// PgxPool is the subset of pgxpool.Pool used by PostgresSource.
type PgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresSource reads the employee list from the employees table.
type PostgresSource struct {
	pool PgxPool
}

// NewPostgresSource instantiates the source.
func NewPostgresSource(pool PgxPool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

func (s *PostgresSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	if s.pool == nil {
		return nil, unavailable("postgres pool not configured")
	}
	const query = `
        SELECT name, department, band, base_salary, performance_bonus, retention_bonus, total_ctc, location, joining_date
        FROM employees
        ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, unavailable("query employees: %w", err)
	}
	defer rows.Close()

	var result []domain.Employee
	row := 0
	for rows.Next() {
		row++
		var (
			emp  domain.Employee
			band string
		)
		if err := rows.Scan(
			&emp.Name,
			&emp.Department,
			&band,
			&emp.BaseSalary,
			&emp.PerformanceBonus,
			&emp.RetentionBonus,
			&emp.TotalCTC,
			&emp.Location,
			&emp.JoiningDate,
		); err != nil {
			return nil, malformed(row, "", "scan: %v", err)
		}
		emp.Band = domain.Band(band)
		if err := validateEmployee(row, emp); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate employees: %w", err)
	}
	return result, nil
}

// ReplaceEmployees swaps the table contents for employees in one transaction.
func (s *PostgresSource) ReplaceEmployees(ctx context.Context, employees []domain.Employee) error {
	if s.pool == nil {
		return unavailable("postgres pool not configured")
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM employees`); err != nil {
		return fmt.Errorf("clear employees: %w", err)
	}

	rows := make([][]any, 0, len(employees))
	for _, emp := range employees {
		rows = append(rows, []any{
			emp.Name,
			emp.Department,
			string(emp.Band),
			emp.BaseSalary,
			emp.PerformanceBonus,
			emp.RetentionBonus,
			emp.TotalCTC,
			emp.Location,
			emp.JoiningDate,
		})
	}
	columns := []string{"name", "department", "band", "base_salary", "performance_bonus", "retention_bonus", "total_ctc", "location", "joining_date"}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"employees"}, columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy employees: %w", err)
	}
	return tx.Commit(ctx)
}
