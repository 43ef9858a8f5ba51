package plans

import "talentroi-workers/internal/models"

// Classification thresholds. Agency profiles are banded by average
// monthly hires, internal profiles by recruiting team headcount.
const (
	agencyEssentialMaxMonthly = 1.0
	agencyGrowthMaxMonthly    = 10.0
	agencyScaleMaxMonthly     = 20.0

	internalGrowthMaxTeam = 2
	internalScaleMaxTeam  = 5
)

// Recommend maps a profile to the catalog tier that fits its hiring
// volume. Internal teams never land on Essential: an in-house team
// implies ongoing hiring, which a one-time campaign cannot serve.
func Recommend(p models.RecruitmentProfile) models.PlanTier {
	var id models.PlanID
	switch p.RecruitmentType {
	case models.RecruitmentInternal:
		switch size := p.InternalTeam.Size(); {
		case size <= internalGrowthMaxTeam:
			id = models.PlanGrowth
		case size <= internalScaleMaxTeam:
			id = models.PlanScale
		default:
			id = models.PlanEnterprise
		}
	default:
		monthly := float64(p.HiresPerYear) / 12
		switch {
		case monthly <= agencyEssentialMaxMonthly:
			id = models.PlanEssential
		case monthly <= agencyGrowthMaxMonthly:
			id = models.PlanGrowth
		case monthly <= agencyScaleMaxMonthly:
			id = models.PlanScale
		default:
			id = models.PlanEnterprise
		}
	}
	tier, _ := TierByID(id)
	return tier
}
