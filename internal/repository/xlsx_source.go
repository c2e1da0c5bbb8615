package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// XLSXFileSource reads the employee list from the first worksheet of a workbook.
type XLSXFileSource struct {
	path  string
	sheet string
}

// NewXLSXFileSource builds a source for path. An empty sheet selects the
// first worksheet.
func NewXLSXFileSource(path, sheet string) *XLSXFileSource {
	return &XLSXFileSource{path: path, sheet: sheet}
}

func (s *XLSXFileSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("%w", err)
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if isMissingFile(err) {
			return nil, unavailable("open %s: %w", s.path, err)
		}
		return nil, fmt.Errorf("%w: open workbook %s: %v", domain.ErrMalformedData, s.path, err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook %s has no sheets", domain.ErrMalformedData, s.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", domain.ErrMalformedData, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", domain.ErrMalformedData, sheet)
	}
	// Amounts are read raw so number formats cannot round them. The formatted
	// view only tells date cells apart from plain numbers.
	shown, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", domain.ErrMalformedData, sheet, err)
	}

	columns := normalizeHeader(rows[0])
	dateCol := indexOf(columns, domain.ColumnJoiningDate)
	date1904 := usesDate1904(f)
	employees := make([]domain.Employee, 0, len(rows)-1)
	for i, record := range rows[1:] {
		if isBlankRow(record) {
			continue
		}
		if dateCol >= 0 && dateCol < len(record) {
			record[dateCol] = joiningDate(record[dateCol], cellAt(shown, i+1, dateCol), date1904)
		}
		emp, err := buildEmployee(i+1, zipRow(columns, record))
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

// WriteXLSXFile writes employees to a single-sheet workbook.
func WriteXLSXFile(path string, employees []domain.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]any, 0, len(domain.Columns()))
	for _, column := range domain.Columns() {
		header = append(header, column)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, emp := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			emp.Name,
			emp.Department,
			string(emp.Band),
			emp.BaseSalary,
			emp.PerformanceBonus,
			emp.RetentionBonus,
			emp.TotalCTC,
			emp.Location,
			emp.JoiningDate,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// joiningDate turns a date-formatted serial number into an ISO date. Text
// cells and unformatted numbers are kept as stored.
func joiningDate(raw, shown string, date1904 bool) string {
	if shown == "" || shown == raw {
		return raw
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return shown
	}
	return t.Format("2006-01-02")
}

func usesDate1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

func cellAt(rows [][]string, row, col int) string {
	if row >= len(rows) || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}

func indexOf(columns []string, name string) int {
	for i, column := range columns {
		if column == name {
			return i
		}
	}
	return -1
}

func isBlankRow(record []string) bool {
	for _, value := range record {
		if value != "" {
			return false
		}
	}
	return true
}
