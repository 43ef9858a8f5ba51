// internal/workers/analytics/index-calculation/models.go
package indexcalculation

import "talentroi-workers/internal/models"

type Input struct {
	CalculationID  string                    `json:"calculationId"`
	LeadID         string                    `json:"leadId,omitempty"`
	Email          string                    `json:"email,omitempty"`
	Company        string                    `json:"company,omitempty"`
	Country        string                    `json:"country,omitempty"`
	Profile        models.RecruitmentProfile `json:"profile"`
	BillingCadence models.BillingCadence     `json:"billingCadence,omitempty"`
	Result         *models.ROIResult         `json:"roiResult"`
}

type Output struct {
	Indexed   bool   `json:"indexed"`
	IndexName string `json:"indexName"`
	DocID     string `json:"docId"`
}
