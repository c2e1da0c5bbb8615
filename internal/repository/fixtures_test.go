package repository

import "github.com/spec-kit/employee-assistant/internal/domain"

func sampleEmployees() []domain.Employee {
	return []domain.Employee{
		{Name: "Martha Bennett", Department: "Sales", Band: domain.BandL1, BaseSalary: 411477, PerformanceBonus: 60657, RetentionBonus: 22227, TotalCTC: 494361, Location: "Aimeebury", JoiningDate: "2025-05-02"},
		{Name: "Christopher Higgins", Department: "HR", Band: domain.BandL3, BaseSalary: 1405700, PerformanceBonus: 178939, RetentionBonus: 95532, TotalCTC: 1680171, Location: "New Amanda", JoiningDate: "2025-05-12"},
	}
}

const sampleJSON = `[
  {
    "Employee Name": "Martha Bennett",
    "Department": "Sales",
    "Band": "L1",
    "Base Salary (INR)": 411477,
    "Performance Bonus (INR)": 60657,
    "Retention Bonus (INR)": 22227,
    "Total CTC (INR)": 494361,
    "Location": "Aimeebury",
    "Joining Date": "2025-05-02"
  },
  {
    "Employee Name": " Christopher Higgins ",
    "Department": "HR",
    "Band": "L3",
    "Base Salary (INR)": "1405700.0",
    "Performance Bonus (INR)": 178939,
    "Retention Bonus (INR)": 95532,
    "Total CTC (INR)": 1680171,
    "Location": "New Amanda",
    "Joining Date": "2025-05-12"
  }
]`

const sampleCSV = "Employee Name,Department,Band,Base Salary (INR),Performance Bonus (INR),Retention Bonus (INR),Total CTC (INR),Location,Joining Date\n" +
	"Martha Bennett,Sales,L1,411477,60657,22227,494361,Aimeebury,2025-05-02\n" +
	"Christopher Higgins,HR,L3,1405700.75,178939,95532,1680171,New Amanda,2025-05-12\n"
