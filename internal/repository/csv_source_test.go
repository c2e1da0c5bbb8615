package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

func TestDecodeEmployeesCSV_TruncatesFractions(t *testing.T) {
	employees, err := DecodeEmployeesCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, sampleEmployees(), employees)
}

func TestDecodeEmployeesCSV_HeaderWithBOM(t *testing.T) {
	employees, err := DecodeEmployeesCSV(strings.NewReader("\ufeff" + sampleCSV))
	require.NoError(t, err)
	assert.Len(t, employees, 2)
}

func TestDecodeEmployeesCSV_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"missing column": "Employee Name,Department\nMartha Bennett,Sales\n",
		"bad amount":     strings.Replace(sampleCSV, "411477", "4l1477", 1),
		"ragged row":     sampleCSV + "Only,Three,Fields\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeEmployeesCSV(strings.NewReader(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedData)
		})
	}
}

func TestConvertCSVToJSON(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "Employee_List.csv")
	jsonPath := filepath.Join(dir, "Employee_List.json")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	count, err := ConvertCSVToJSON(context.Background(), csvPath, jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	employees, err := NewJSONFileSource(jsonPath).LoadEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleEmployees(), employees)
}

func TestConvertCSVToJSON_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := ConvertCSVToJSON(context.Background(), filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.json"))
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
