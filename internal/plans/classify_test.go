package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentroi-workers/internal/models"
)

func TestRecommend_AgencyBands(t *testing.T) {
	tests := []struct {
		name         string
		hiresPerYear int
		expected     models.PlanID
	}{
		{"one hire per year", 1, models.PlanEssential},
		{"exactly one per month", 12, models.PlanEssential},
		{"just over one per month", 13, models.PlanGrowth},
		{"ten per month", 120, models.PlanGrowth},
		{"twenty per month", 240, models.PlanScale},
		{"above twenty per month", 241, models.PlanEnterprise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.RecruitmentProfile{
				RecruitmentType: models.RecruitmentAgency,
				HiresPerYear:    tt.hiresPerYear,
			}
			tier := Recommend(profile)
			assert.Equal(t, tt.expected, tier.ID)
		})
	}
}

func TestRecommend_InternalBands(t *testing.T) {
	tests := []struct {
		name         string
		recruiters   int
		coordinators int
		expected     models.PlanID
	}{
		{"solo recruiter", 1, 0, models.PlanGrowth},
		{"two person team", 1, 1, models.PlanGrowth},
		{"three person team", 2, 1, models.PlanScale},
		{"five person team", 3, 2, models.PlanScale},
		{"six person team", 4, 2, models.PlanEnterprise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.RecruitmentProfile{
				RecruitmentType: models.RecruitmentInternal,
				HiresPerYear:    24,
				InternalTeam: models.InternalTeam{
					Recruiters:   tt.recruiters,
					Coordinators: tt.coordinators,
				},
			}
			tier := Recommend(profile)
			assert.Equal(t, tt.expected, tier.ID)
		})
	}
}

func TestRecommend_InternalNeverEssential(t *testing.T) {
	profile := models.RecruitmentProfile{
		RecruitmentType: models.RecruitmentInternal,
		HiresPerYear:    1,
		InternalTeam:    models.InternalTeam{Recruiters: 1},
	}
	tier := Recommend(profile)
	assert.NotEqual(t, models.PlanEssential, tier.ID)
}

func TestCatalog(t *testing.T) {
	tiers := Catalog()
	require.Len(t, tiers, 4)

	essential, ok := TierByID(models.PlanEssential)
	require.True(t, ok)
	assert.Equal(t, models.BillingOneTime, essential.Billing)
	assert.Equal(t, 2990.0, essential.Price)

	for _, id := range []models.PlanID{models.PlanGrowth, models.PlanScale, models.PlanEnterprise} {
		tier, ok := TierByID(id)
		require.True(t, ok)
		assert.Equal(t, models.BillingRecurring, tier.Billing)
		assert.NotEmpty(t, Justifications(id))
	}

	_, ok = TierByID("platinum")
	assert.False(t, ok)
}
