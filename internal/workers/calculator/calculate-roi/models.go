// internal/workers/calculator/calculate-roi/models.go
package calculateroi

import "talentroi-workers/internal/models"

type Input struct {
	Profile         models.RecruitmentProfile `json:"profile"`
	RecommendedPlan models.PlanTier           `json:"recommendedPlan"`
	BillingCadence  models.BillingCadence     `json:"billingCadence,omitempty"`
}

type Output struct {
	Result *models.ROIResult `json:"roiResult"`
}
