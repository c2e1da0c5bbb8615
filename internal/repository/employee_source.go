package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// EmployeeSource loads the full, ordered employee list from an external store.
type EmployeeSource interface {
	LoadEmployees(ctx context.Context) ([]domain.Employee, error)
}

// sourceRecord mirrors the source schema and keeps column order when encoded.
type sourceRecord struct {
	Name             string `json:"Employee Name"`
	Department       string `json:"Department"`
	Band             string `json:"Band"`
	BaseSalary       int64  `json:"Base Salary (INR)"`
	PerformanceBonus int64  `json:"Performance Bonus (INR)"`
	RetentionBonus   int64  `json:"Retention Bonus (INR)"`
	TotalCTC         int64  `json:"Total CTC (INR)"`
	Location         string `json:"Location"`
	JoiningDate      string `json:"Joining Date"`
}

func toSourceRecord(e domain.Employee) sourceRecord {
	return sourceRecord{
		Name:             e.Name,
		Department:       e.Department,
		Band:             string(e.Band),
		BaseSalary:       e.BaseSalary,
		PerformanceBonus: e.PerformanceBonus,
		RetentionBonus:   e.RetentionBonus,
		TotalCTC:         e.TotalCTC,
		Location:         e.Location,
		JoiningDate:      e.JoiningDate,
	}
}

func malformed(row int, column, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	if column == "" {
		return fmt.Errorf("%w: row %d: %s", domain.ErrMalformedData, row, detail)
	}
	return fmt.Errorf("%w: row %d: column %q: %s", domain.ErrMalformedData, row, column, detail)
}

// unavailable accepts %w in format so the cause stays in the chain.
func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrSourceUnavailable}, args...)...)
}

// buildEmployee converts one row of raw column values into an Employee.
// Rows are numbered from 1.
func buildEmployee(row int, fields map[string]string) (domain.Employee, error) {
	for _, column := range domain.Columns() {
		if _, ok := fields[column]; !ok {
			return domain.Employee{}, malformed(row, column, "missing")
		}
	}

	amounts := make(map[string]int64, 4)
	for _, column := range []string{
		domain.ColumnBaseSalary,
		domain.ColumnPerformanceBonus,
		domain.ColumnRetentionBonus,
		domain.ColumnTotalCTC,
	} {
		amount, err := parseAmount(fields[column])
		if err != nil {
			return domain.Employee{}, malformed(row, column, "%v", err)
		}
		amounts[column] = amount
	}

	emp := domain.Employee{
		Name:             strings.TrimSpace(fields[domain.ColumnName]),
		Department:       strings.TrimSpace(fields[domain.ColumnDepartment]),
		Band:             domain.Band(strings.TrimSpace(fields[domain.ColumnBand])),
		BaseSalary:       amounts[domain.ColumnBaseSalary],
		PerformanceBonus: amounts[domain.ColumnPerformanceBonus],
		RetentionBonus:   amounts[domain.ColumnRetentionBonus],
		TotalCTC:         amounts[domain.ColumnTotalCTC],
		Location:         strings.TrimSpace(fields[domain.ColumnLocation]),
		JoiningDate:      strings.TrimSpace(fields[domain.ColumnJoiningDate]),
	}
	if err := validateEmployee(row, emp); err != nil {
		return domain.Employee{}, err
	}
	return emp, nil
}

func validateEmployee(row int, emp domain.Employee) error {
	if emp.Name == "" {
		return malformed(row, domain.ColumnName, "empty")
	}
	if emp.Department == "" {
		return malformed(row, domain.ColumnDepartment, "empty")
	}
	if emp.Band == "" {
		return malformed(row, domain.ColumnBand, "empty")
	}
	for column, amount := range map[string]int64{
		domain.ColumnBaseSalary:       emp.BaseSalary,
		domain.ColumnPerformanceBonus: emp.PerformanceBonus,
		domain.ColumnRetentionBonus:   emp.RetentionBonus,
		domain.ColumnTotalCTC:         emp.TotalCTC,
	} {
		if amount < 0 {
			return malformed(row, column, "negative amount %d", amount)
		}
	}
	return nil
}

// parseAmount follows the converter's int(float(x)) rule: fractional parts
// are truncated.
func parseAmount(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("empty amount")
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("unparsable amount %q", raw)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative amount %q", raw)
	}
	if f >= 1<<63 {
		return 0, fmt.Errorf("amount %q out of range", raw)
	}
	return int64(f), nil
}
