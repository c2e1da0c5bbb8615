package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/config"
	"github.com/spec-kit/employee-assistant/internal/domain"
	"github.com/spec-kit/employee-assistant/internal/repository"
)

func TestNew_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Employee_List.json")
	require.NoError(t, repository.WriteJSONFile(path, []domain.Employee{
		{Name: "Martha Bennett", Department: "Sales", Band: domain.BandL1, BaseSalary: 411477, PerformanceBonus: 60657, RetentionBonus: 22227, TotalCTC: 494361, Location: "Aimeebury", JoiningDate: "2025-05-02"},
	}))

	cfg := config.Config{Directory: config.DirectoryConfig{Source: config.SourceJSON, Path: path}}
	rt, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer rt.Close()

	assert.Nil(t, rt.Postgres)
	assert.Nil(t, rt.Redis)

	rt.Preload(context.Background())
	loaded, count, _ := rt.Directory.Status()
	assert.True(t, loaded)
	assert.Equal(t, 1, count)

	got := rt.Assistant.Process(context.Background(), "list all employees")
	assert.Contains(t, got, "• Martha Bennett (L1) - Aimeebury")
}

func TestNew_UnsupportedSource(t *testing.T) {
	_, err := New(context.Background(), config.Config{Directory: config.DirectoryConfig{Source: "ldap"}}, zap.NewNop())
	assert.Error(t, err)
}
