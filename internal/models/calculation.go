package models

import "time"

// CalculationRecord is a persisted calculation run: the profile that
// went in, the result that came out, and who asked for it.
type CalculationRecord struct {
	ID        string             `json:"id"`
	RequestID string             `json:"requestId"`
	LeadID    string             `json:"leadId,omitempty"`
	Profile   RecruitmentProfile `json:"profile"`
	Cadence   BillingCadence     `json:"cadence"`
	Result    ROIResult          `json:"result"`
	CreatedAt time.Time          `json:"createdAt"`
}
