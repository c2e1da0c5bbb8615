package repository

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// YAMLFileSource reads the employee list from a YAML sequence of records
// keyed by the source column names.
type YAMLFileSource struct {
	path string
}

// NewYAMLFileSource builds a source for path.
func NewYAMLFileSource(path string) *YAMLFileSource {
	return &YAMLFileSource{path: path}
}

func (s *YAMLFileSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("%w", err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, unavailable("read %s: %w", s.path, err)
	}
	return DecodeEmployeesYAML(data)
}

// DecodeEmployeesYAML parses a YAML document holding a list of records.
func DecodeEmployeesYAML(data []byte) ([]domain.Employee, error) {
	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %v", domain.ErrMalformedData, err)
	}

	employees := make([]domain.Employee, 0, len(records))
	for i, record := range records {
		row := i + 1
		fields := make(map[string]string, len(record))
		for key, value := range record {
			text, err := yamlScalar(value)
			if err != nil {
				return nil, malformed(row, key, "%v", err)
			}
			fields[key] = text
		}
		emp, err := buildEmployee(row, fields)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

func yamlScalar(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		return v.Format("2006-01-02"), nil
	case nil:
		return "", fmt.Errorf("null value")
	default:
		return "", fmt.Errorf("unexpected %T value", value)
	}
}
