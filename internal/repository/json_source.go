package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// JSONFileSource reads the employee list from a JSON array file.
type JSONFileSource struct {
	path string
}

// NewJSONFileSource builds a source for path.
func NewJSONFileSource(path string) *JSONFileSource {
	return &JSONFileSource{path: path}
}

func (s *JSONFileSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("%w", err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, unavailable("read %s: %w", s.path, err)
	}
	return DecodeEmployeesJSON(data)
}

// DecodeEmployeesJSON parses a JSON array of source records.
func DecodeEmployeesJSON(data []byte) ([]domain.Employee, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON document", domain.ErrMalformedData)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array of employees", domain.ErrMalformedData)
	}

	var (
		employees []domain.Employee
		decodeErr error
	)
	row := 0
	root.ForEach(func(_, value gjson.Result) bool {
		row++
		if !value.IsObject() {
			decodeErr = malformed(row, "", "expected an object")
			return false
		}
		fields, err := jsonFields(row, value)
		if err != nil {
			decodeErr = err
			return false
		}
		emp, err := buildEmployee(row, fields)
		if err != nil {
			decodeErr = err
			return false
		}
		employees = append(employees, emp)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return employees, nil
}

func jsonFields(row int, obj gjson.Result) (map[string]string, error) {
	fields := make(map[string]string, len(domain.Columns()))
	for key, value := range obj.Map() {
		switch value.Type {
		case gjson.String, gjson.Number:
			fields[key] = value.String()
		case gjson.Null:
			return nil, malformed(row, key, "null value")
		default:
			return nil, malformed(row, key, "unexpected %s value", value.Type)
		}
	}
	return fields, nil
}

// EncodeEmployeesJSON renders employees with the source column names.
func EncodeEmployeesJSON(employees []domain.Employee) ([]byte, error) {
	records := make([]sourceRecord, 0, len(employees))
	for _, emp := range employees {
		records = append(records, toSourceRecord(emp))
	}
	return json.MarshalIndent(records, "", "  ")
}

// WriteJSONFile writes employees to path as a JSON array.
func WriteJSONFile(path string, employees []domain.Employee) error {
	data, err := EncodeEmployeesJSON(employees)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// isMissingFile reports whether err means the source file does not exist.
func isMissingFile(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
