package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// CSVFileSource reads the employee list from a CSV export with a header row.
type CSVFileSource struct {
	path string
}

// NewCSVFileSource builds a source for path.
func NewCSVFileSource(path string) *CSVFileSource {
	return &CSVFileSource{path: path}
}

func (s *CSVFileSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("%w", err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, unavailable("open %s: %w", s.path, err)
	}
	defer f.Close()

	return DecodeEmployeesCSV(f)
}

// DecodeEmployeesCSV parses CSV rows keyed by the header line.
func DecodeEmployeesCSV(r io.Reader) ([]domain.Employee, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty CSV document", domain.ErrMalformedData)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read CSV header: %v", domain.ErrMalformedData, err)
	}
	columns := normalizeHeader(header)

	var employees []domain.Employee
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(row, "", "%v", err)
		}
		emp, err := buildEmployee(row, zipRow(columns, record))
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

// ConvertCSVToJSON converts a CSV export into the JSON array format and
// returns the number of employees written.
func ConvertCSVToJSON(ctx context.Context, csvPath, jsonPath string) (int, error) {
	employees, err := NewCSVFileSource(csvPath).LoadEmployees(ctx)
	if err != nil {
		return 0, err
	}
	if err := WriteJSONFile(jsonPath, employees); err != nil {
		return 0, err
	}
	return len(employees), nil
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		columns[i] = strings.TrimSpace(name)
	}
	return columns
}

func zipRow(columns, values []string) map[string]string {
	fields := make(map[string]string, len(columns))
	for i, column := range columns {
		if column == "" {
			continue
		}
		if i < len(values) {
			fields[column] = values[i]
		} else {
			fields[column] = ""
		}
	}
	return fields
}
