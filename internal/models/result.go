package models

// YearProjection is one row of the multi-year savings table. All
// amounts are cumulative from year one.
type YearProjection struct {
	Year               int     `json:"year"`
	TraditionalCost    float64 `json:"traditionalCost"`
	PlanCost           float64 `json:"planCost"`
	CumulativeSavings  float64 `json:"cumulativeSavings"`
}

// ROIResult is the full output of a savings calculation.
//
// CatalogPlanCost is always the published price of the recommended
// plan. AnnualPlanCost is what the prospect is modeled to pay for the
// first year and differs from the catalog price when the savings
// guarantee kicks in.
type ROIResult struct {
	TraditionalAnnualCost float64 `json:"traditionalAnnualCost"`

	RecommendedPlan    PlanTier `json:"recommendedPlan"`
	PlanJustifications []string `json:"planJustifications"`
	CatalogPlanCost    float64  `json:"catalogPlanCost"`
	AnnualPlanCost     float64  `json:"annualPlanCost"`

	NetAnnualSavings      float64 `json:"netAnnualSavings"`
	FloorGuaranteeApplied bool    `json:"floorGuaranteeApplied"`

	HRHoursSavedAnnually       float64 `json:"hrHoursSavedAnnually"`
	TimeToHireReductionPercent float64 `json:"timeToHireReductionPercent"`
	BreakevenHireCount         int     `json:"breakevenHireCount"`
	RevenueRecoveredAnnually   float64 `json:"revenueRecoveredAnnually"`

	YearlyProjection []YearProjection `json:"yearlyProjection"`
}
