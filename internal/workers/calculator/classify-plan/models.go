// internal/workers/calculator/classify-plan/models.go
package classifyplan

import "talentroi-workers/internal/models"

type Input struct {
	Profile models.RecruitmentProfile `json:"profile"`
}

type Output struct {
	RecommendedPlan    models.PlanTier `json:"recommendedPlan"`
	PlanJustifications []string        `json:"planJustifications"`
}
