package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

func TestDecodeEmployeesJSON(t *testing.T) {
	employees, err := DecodeEmployeesJSON([]byte(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, sampleEmployees(), employees)
}

func TestDecodeEmployeesJSON_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"Employee Name":`,
		"not an array":    `{"Employee Name": "Martha Bennett"}`,
		"not an object":   `["Martha Bennett"]`,
		"missing column":  `[{"Employee Name": "Martha Bennett"}]`,
		"bad number":      `[{"Employee Name":"A B","Department":"Sales","Band":"L1","Base Salary (INR)":"lots","Performance Bonus (INR)":1,"Retention Bonus (INR)":1,"Total CTC (INR)":3,"Location":"X","Joining Date":"2025-01-01"}]`,
		"negative amount": `[{"Employee Name":"A B","Department":"Sales","Band":"L1","Base Salary (INR)":-5,"Performance Bonus (INR)":1,"Retention Bonus (INR)":1,"Total CTC (INR)":3,"Location":"X","Joining Date":"2025-01-01"}]`,
		"null field":      `[{"Employee Name":null,"Department":"Sales","Band":"L1","Base Salary (INR)":1,"Performance Bonus (INR)":1,"Retention Bonus (INR)":1,"Total CTC (INR)":3,"Location":"X","Joining Date":"2025-01-01"}]`,
		"empty name":      `[{"Employee Name":"  ","Department":"Sales","Band":"L1","Base Salary (INR)":1,"Performance Bonus (INR)":1,"Retention Bonus (INR)":1,"Total CTC (INR)":3,"Location":"X","Joining Date":"2025-01-01"}]`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeEmployeesJSON([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedData)
		})
	}
}

func TestDecodeEmployeesJSON_AmountOutOfRange(t *testing.T) {
	doc := `[{"Employee Name":"A B","Department":"Sales","Band":"L1","Base Salary (INR)":9223372036854775807,"Performance Bonus (INR)":1,"Retention Bonus (INR)":1,"Total CTC (INR)":3,"Location":"X","Joining Date":"2025-01-01"}]`

	_, err := DecodeEmployeesJSON([]byte(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedData)
	assert.Contains(t, err.Error(), "out of range")
	assert.NotContains(t, err.Error(), "negative")
}

func TestJSONFileSource_MissingFile(t *testing.T) {
	src := NewJSONFileSource(filepath.Join(t.TempDir(), "missing.json"))

	_, err := src.LoadEmployees(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestWriteJSONFile_RoundTripsThroughSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Employee_List.json")
	require.NoError(t, WriteJSONFile(path, sampleEmployees()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Employee Name": "Martha Bennett"`)

	employees, err := NewJSONFileSource(path).LoadEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleEmployees(), employees)
}
