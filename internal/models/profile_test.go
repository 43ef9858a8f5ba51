package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileBuilder(t *testing.T) {
	base := NewProfileBuilder(RecruitmentAgency).
		WithHiring(10, 30).
		WithHRTime(30, 50).
		WithAgencyFees(15000).
		WithRevenueImpact(500)

	profile, err := base.WithProjection(3).Build()
	require.NoError(t, err)
	assert.Equal(t, 10, profile.HiresPerYear)
	assert.Equal(t, 3, profile.YearsToProject)

	// Deriving a second profile must not touch the first.
	other, err := base.WithProjection(5).Build()
	require.NoError(t, err)
	assert.Equal(t, 5, other.YearsToProject)
	assert.Equal(t, 3, profile.YearsToProject)
}

func TestProfileBuilder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		builder ProfileBuilder
	}{
		{
			"unknown recruitment type",
			NewProfileBuilder("freelance").WithHiring(5, 20).WithProjection(1),
		},
		{
			"zero hires",
			NewProfileBuilder(RecruitmentAgency).WithHiring(0, 20).WithProjection(1),
		},
		{
			"negative time to hire",
			NewProfileBuilder(RecruitmentAgency).WithHiring(5, -1).WithProjection(1),
		},
		{
			"projection too long",
			NewProfileBuilder(RecruitmentAgency).WithHiring(5, 20).WithProjection(6),
		},
		{
			"internal without team",
			NewProfileBuilder(RecruitmentInternal).WithHiring(5, 20).WithProjection(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			assert.Error(t, err)
		})
	}
}

func TestInternalTeam(t *testing.T) {
	team := InternalTeam{Recruiters: 2, RecruiterSalary: 70000, Coordinators: 1, CoordinatorSalary: 45000}
	assert.Equal(t, 3, team.Size())
	assert.Equal(t, 185000.0, team.AnnualCost())
}

func TestQuantityFormat(t *testing.T) {
	tests := []struct {
		quantity Quantity
		expected string
	}{
		{Currency(315000), "$315,000"},
		{Currency(2990.5), "$2,990.50"},
		{Currency(-1200), "-$1,200"},
		{Count(1234567), "1,234,567"},
		{Days(30), "30 days"},
		{Hours(300), "300 hours"},
		{Percent(50), "50%"},
		{Percent(66.67), "66.67%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.quantity.Format())
	}
}
