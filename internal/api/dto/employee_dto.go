package dto

import (
	"time"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// EmployeeResponse is the public view of an employee record.
type EmployeeResponse struct {
	Name             string `json:"name"`
	Department       string `json:"department"`
	Band             string `json:"band"`
	BaseSalary       int64  `json:"base_salary"`
	PerformanceBonus int64  `json:"performance_bonus"`
	RetentionBonus   int64  `json:"retention_bonus"`
	TotalCTC         int64  `json:"total_ctc"`
	Location         string `json:"location"`
	JoiningDate      string `json:"joining_date"`
}

// NewEmployeeResponse maps a domain record.
func NewEmployeeResponse(e domain.Employee) EmployeeResponse {
	return EmployeeResponse{
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

// DirectoryStatusResponse describes the directory cache.
type DirectoryStatusResponse struct {
	Loaded    bool       `json:"loaded"`
	Employees int        `json:"employees"`
	LoadedAt  *time.Time `json:"loaded_at,omitempty"`
}
