package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

func TestTablesCoverEveryBand(t *testing.T) {
	for _, band := range domain.Bands() {
		_, ok := LeaveFor(band)
		assert.True(t, ok, "leave entry for %s", band)
		_, ok = TravelFor(band)
		assert.True(t, ok, "travel entry for %s", band)
	}
}

func TestUnknownBandIsFlagged(t *testing.T) {
	_, ok := LeaveFor(domain.Band("L9"))
	assert.False(t, ok)
	_, ok = TravelFor(domain.Band(""))
	assert.False(t, ok)
}

func TestAllowanceString(t *testing.T) {
	leave, ok := LeaveFor(domain.BandL5)
	require.True(t, ok)
	assert.Equal(t, "Unlimited", leave.Total.String())
	assert.Equal(t, "NA", leave.Sick.String())

	leave, ok = LeaveFor(domain.BandL3)
	require.True(t, ok)
	assert.Equal(t, "18", leave.Total.String())
	assert.Equal(t, "3/week", leave.OfficeAttendance)
}

func TestAllowanceDays(t *testing.T) {
	assert.Equal(t, "12 days", Allowance(12).Days())
	assert.Equal(t, "Unlimited", Unlimited.Days())
	assert.Equal(t, "NA", NotApplicable.Days())
}
