package domain

import "strings"

// Employee is the immutable fact sheet loaded from the record source.
type Employee struct {
	Name             string `json:"name"`
	Department       string `json:"department"`
	Band             Band   `json:"band"`
	BaseSalary       int64  `json:"base_salary"`
	PerformanceBonus int64  `json:"performance_bonus"`
	RetentionBonus   int64  `json:"retention_bonus"`
	TotalCTC         int64  `json:"total_ctc"`
	Location         string `json:"location"`
	JoiningDate      string `json:"joining_date"`
}

// ComponentSum returns base salary plus both bonuses.
func (e Employee) ComponentSum() int64 {
	return e.BaseSalary + e.PerformanceBonus + e.RetentionBonus
}

// NameKey is the case-insensitive identity key of the employee.
func (e Employee) NameKey() string {
	return NormalizeName(e.Name)
}

// NormalizeName trims and lower-cases a name for identity comparisons.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Source column names shared by every record format.
const (
	ColumnName             = "Employee Name"
	ColumnDepartment       = "Department"
	ColumnBand             = "Band"
	ColumnBaseSalary       = "Base Salary (INR)"
	ColumnPerformanceBonus = "Performance Bonus (INR)"
	ColumnRetentionBonus   = "Retention Bonus (INR)"
	ColumnTotalCTC         = "Total CTC (INR)"
	ColumnLocation         = "Location"
	ColumnJoiningDate      = "Joining Date"
)

// Columns lists the fixed record schema in source order.
func Columns() []string {
	return []string{
		ColumnName,
		ColumnDepartment,
		ColumnBand,
		ColumnBaseSalary,
		ColumnPerformanceBonus,
		ColumnRetentionBonus,
		ColumnTotalCTC,
		ColumnLocation,
		ColumnJoiningDate,
	}
}
