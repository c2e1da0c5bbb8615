package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

type countingSource struct {
	mu        sync.Mutex
	employees []domain.Employee
	err       error
	calls     atomic.Int32
	delay     time.Duration
}

func (s *countingSource) LoadEmployees(_ context.Context) ([]domain.Employee, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.Employee(nil), s.employees...), nil
}

func (s *countingSource) set(employees []domain.Employee, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = employees
	s.err = err
}

type recordingObserver struct {
	outcomes []string
}

func (o *recordingObserver) RecordDirectoryLoad(outcome string, _ int, _ time.Duration) {
	o.outcomes = append(o.outcomes, outcome)
}

func fixture() []domain.Employee {
	return []domain.Employee{
		{Name: "Martha Bennett", Department: "Sales", Band: domain.BandL1, BaseSalary: 411477, PerformanceBonus: 60657, RetentionBonus: 22227, TotalCTC: 494361, Location: "Aimeebury", JoiningDate: "2025-05-02"},
		{Name: "Christopher Higgins", Department: "HR", Band: domain.BandL3, BaseSalary: 1405700, PerformanceBonus: 178939, RetentionBonus: 95532, TotalCTC: 1680171, Location: "New Amanda", JoiningDate: "2025-05-12"},
		{Name: "Tiffany Bradshaw", Department: "Sales", Band: domain.BandL2, BaseSalary: 700000, PerformanceBonus: 50000, RetentionBonus: 25000, TotalCTC: 775000, Location: "Aimeebury", JoiningDate: "2024-01-15"},
	}
}

func TestFindByName_IgnoresCaseAndPadding(t *testing.T) {
	dir := New(&countingSource{employees: fixture()}, nil)

	for _, emp := range fixture() {
		for _, query := range []string{emp.Name, "  " + emp.Name + "\t", strings.ToUpper(emp.Name)} {
			got, err := dir.FindByName(context.Background(), query)
			require.NoError(t, err, query)
			assert.Equal(t, emp, got)
		}
	}
}

func TestFindByName_NotFound(t *testing.T) {
	dir := New(&countingSource{employees: fixture()}, nil)

	_, err := dir.FindByName(context.Background(), "Nonexistent Person")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestFindByName_FirstDuplicateWins(t *testing.T) {
	employees := fixture()
	dup := employees[0]
	dup.Department = "Finance"
	employees = append(employees, dup)
	dir := New(&countingSource{employees: employees}, nil)

	got, err := dir.FindByName(context.Background(), "martha bennett")
	require.NoError(t, err)
	assert.Equal(t, "Sales", got.Department)
}

func TestListAll_LoadsOnceAndKeepsOrder(t *testing.T) {
	src := &countingSource{employees: fixture()}
	dir := New(src, nil)

	first, err := dir.ListAll(context.Background())
	require.NoError(t, err)
	second, err := dir.ListAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, fixture(), first)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestListAll_ReturnsCopy(t *testing.T) {
	dir := New(&countingSource{employees: fixture()}, nil)

	list, err := dir.ListAll(context.Background())
	require.NoError(t, err)
	list[0].Name = "Changed"

	again, err := dir.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Martha Bennett", again[0].Name)
}

func TestListAll_ConcurrentFirstLoad(t *testing.T) {
	src := &countingSource{employees: fixture(), delay: 20 * time.Millisecond}
	dir := New(src, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			list, err := dir.ListAll(context.Background())
			assert.NoError(t, err)
			assert.Len(t, list, 3)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}

func TestListAll_PropagatesSourceErrors(t *testing.T) {
	for _, sentinel := range []error{domain.ErrSourceUnavailable, domain.ErrMalformedData} {
		src := &countingSource{err: fmt.Errorf("%w: boom", sentinel)}
		obs := &recordingObserver{}
		dir := New(src, nil, WithObserver(obs))

		_, err := dir.ListAll(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, []string{"error"}, obs.outcomes)

		loaded, _, _ := dir.Status()
		assert.False(t, loaded)
	}
}

func TestReload_KeepsCacheOnFailure(t *testing.T) {
	src := &countingSource{employees: fixture()}
	dir := New(src, nil)
	_, err := dir.ListAll(context.Background())
	require.NoError(t, err)

	src.set(nil, fmt.Errorf("%w: gone", domain.ErrSourceUnavailable))
	err = dir.Reload(context.Background())
	require.Error(t, err)

	list, err := dir.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestReload_SwapsWholeList(t *testing.T) {
	src := &countingSource{employees: fixture()}
	dir := New(src, nil)
	_, err := dir.ListAll(context.Background())
	require.NoError(t, err)

	src.set(fixture()[:1], nil)
	require.NoError(t, dir.Reload(context.Background()))

	list, err := dir.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = dir.FindByName(context.Background(), "Christopher Higgins")
	assert.True(t, errors.Is(err, domain.ErrEmployeeNotFound))
}

func TestInvalidate_ForcesReload(t *testing.T) {
	src := &countingSource{employees: fixture()}
	dir := New(src, nil)
	_, err := dir.ListAll(context.Background())
	require.NoError(t, err)

	dir.Invalidate()
	loaded, count, _ := dir.Status()
	assert.False(t, loaded)
	assert.Zero(t, count)

	_, err = dir.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestDepartments_FirstAppearanceOrder(t *testing.T) {
	dir := New(&countingSource{employees: fixture()}, nil)

	departments, err := dir.Departments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Department{{Name: "Sales", Headcount: 2}, {Name: "HR", Headcount: 1}}, departments)
}

func TestNilSourceIsUnavailable(t *testing.T) {
	dir := New(nil, nil)

	_, err := dir.ListAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
