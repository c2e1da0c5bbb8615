package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/directory"
	"github.com/spec-kit/employee-assistant/internal/domain"
)

type sliceSource struct {
	employees []domain.Employee
	err       error
}

func (s sliceSource) LoadEmployees(context.Context) ([]domain.Employee, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.Employee(nil), s.employees...), nil
}

func fixtureEmployees() []domain.Employee {
	return []domain.Employee{
		{Name: "Martha Bennett", Department: "Sales", Band: domain.BandL1, BaseSalary: 411477, PerformanceBonus: 60657, RetentionBonus: 22227, TotalCTC: 494361, Location: "Aimeebury", JoiningDate: "2025-05-02"},
		{Name: "Christopher Higgins", Department: "HR", Band: domain.BandL3, BaseSalary: 1405700, PerformanceBonus: 178939, RetentionBonus: 95532, TotalCTC: 1680171, Location: "New Amanda", JoiningDate: "2025-05-12"},
		{Name: "Tiffany Bradshaw", Department: "Sales", Band: domain.BandL2, BaseSalary: 700000, PerformanceBonus: 80000, RetentionBonus: 20000, TotalCTC: 800000, Location: "Aimeebury", JoiningDate: "2024-11-20"},
		{Name: "Julie Rodriguez", Department: "Engineering", Band: domain.BandL4, BaseSalary: 2100000, PerformanceBonus: 250000, RetentionBonus: 150000, TotalCTC: 2500000, Location: "Port Jessica", JoiningDate: "2023-02-01"},
		{Name: "Emily Brown", Department: "HR", Band: domain.BandL5, BaseSalary: 3500000, PerformanceBonus: 400000, RetentionBonus: 300000, TotalCTC: 4200000, Location: "Aimeebury", JoiningDate: "2021-07-15"},
	}
}

func newTestAssistant(employees []domain.Employee, deps AssistantDeps) *Assistant {
	dir := directory.New(sliceSource{employees: employees}, zap.NewNop())
	return NewAssistant(dir, nil, deps)
}
