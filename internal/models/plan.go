package models

// PlanID identifies a subscription tier in the product catalog.
type PlanID string

const (
	PlanEssential  PlanID = "essential"
	PlanGrowth     PlanID = "growth"
	PlanScale      PlanID = "scale"
	PlanEnterprise PlanID = "enterprise"
)

// Billing describes how a plan is charged.
type Billing string

const (
	BillingOneTime   Billing = "one_time"
	BillingRecurring Billing = "recurring"
)

// BillingCadence is the payment rhythm a prospect selects for
// recurring plans. One-time plans ignore it.
type BillingCadence string

const (
	CadenceMonthly BillingCadence = "monthly"
	CadenceAnnual  BillingCadence = "annual"
)

// PlanTier is a catalog entry. Price is the monthly rate for
// recurring plans and the full price for one-time plans.
type PlanTier struct {
	ID      PlanID  `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Billing Billing `json:"billing"`
}
