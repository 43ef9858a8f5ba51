// internal/workers/calculator/save-calculation/models.go
package savecalculation

import "talentroi-workers/internal/models"

type Input struct {
	RequestID      string                    `json:"requestId"`
	LeadID         string                    `json:"leadId,omitempty"`
	Profile        models.RecruitmentProfile `json:"profile"`
	BillingCadence models.BillingCadence     `json:"billingCadence,omitempty"`
	Result         *models.ROIResult         `json:"roiResult"`
}

type Output struct {
	CalculationID string `json:"calculationId"`
	SavedAt       string `json:"savedAt"`
}
