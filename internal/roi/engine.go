// Package roi implements the savings calculation behind the
// TalentROI calculator. Compute is pure: same profile in, same
// result out, no clocks, no I/O.
package roi

import (
	"errors"
	"math"

	"talentroi-workers/internal/models"
	"talentroi-workers/internal/plans"
)

// Params are the commercial constants of the calculation. They ship
// with fixed defaults and can be overridden from configuration.
type Params struct {
	TargetTimeToHireDays float64
	AnnualDiscountRate   float64
	FloorGuaranteeRatio  float64
}

// DefaultParams returns the published commercial terms: a 15 day
// target time-to-hire, 20% discount for annual billing, and a 70%
// savings guarantee.
func DefaultParams() Params {
	return Params{
		TargetTimeToHireDays: 15,
		AnnualDiscountRate:   0.20,
		FloorGuaranteeRatio:  0.70,
	}
}

var (
	// ErrNoHires means the profile reached the engine without the
	// intake validation that guarantees at least one hire per year.
	ErrNoHires = errors.New("roi: profile has no hires per year")

	// ErrZeroPerHireCost means the active cost fields are all zero,
	// which leaves the breakeven count undefined.
	ErrZeroPerHireCost = errors.New("roi: per-hire cost is zero")
)

// Compute runs the full savings calculation for a validated profile
// against the given recommended tier and billing cadence.
//
// The lost-revenue term is part of the traditional total but not of
// the per-hire cost, so the breakeven count deliberately ignores it.
func Compute(p models.RecruitmentProfile, tier models.PlanTier, cadence models.BillingCadence, params Params) (*models.ROIResult, error) {
	if p.HiresPerYear < 1 {
		return nil, ErrNoHires
	}
	hires := float64(p.HiresPerYear)

	var perHire, traditional float64
	switch p.RecruitmentType {
	case models.RecruitmentInternal:
		teamCost := p.InternalTeam.AnnualCost()
		hiringCost := p.TotalCostPerHire * hires
		perHire = (teamCost + hiringCost) / hires
		traditional = teamCost + hiringCost
	default:
		perHire = p.AgencyFeesPerHire + p.HRHourlyRate*p.HRTimePerHire
		traditional = perHire * hires
	}
	if perHire <= 0 {
		return nil, ErrZeroPerHireCost
	}
	traditional += p.RevenueLostPerDay * p.TimeToHire * hires

	catalogCost, annualCost := annualPlanCost(tier, cadence, params.AnnualDiscountRate)

	reduction := 0.0
	if p.TimeToHire > params.TargetTimeToHireDays {
		reduction = (p.TimeToHire - params.TargetTimeToHireDays) / p.TimeToHire * 100
	}
	recovered := math.Max(0, (p.TimeToHire-params.TargetTimeToHireDays)*p.RevenueLostPerDay*hires)

	result := &models.ROIResult{
		TraditionalAnnualCost:      traditional,
		RecommendedPlan:            tier,
		PlanJustifications:         plans.Justifications(tier.ID),
		CatalogPlanCost:            catalogCost,
		AnnualPlanCost:             annualCost,
		NetAnnualSavings:           traditional - annualCost,
		HRHoursSavedAnnually:       p.HRTimePerHire * hires,
		TimeToHireReductionPercent: reduction,
		BreakevenHireCount:         int(math.Ceil(annualCost / perHire)),
		RevenueRecoveredAnnually:   recovered,
	}

	// Savings guarantee: a plan is never presented as costing more
	// than the status quo. When the raw numbers go negative, the
	// displayed plan cost is rewritten so the prospect keeps 70% of
	// their traditional spend. The catalog price stays untouched.
	if result.NetAnnualSavings < 0 {
		result.FloorGuaranteeApplied = true
		result.NetAnnualSavings = params.FloorGuaranteeRatio * traditional
		result.AnnualPlanCost = traditional - result.NetAnnualSavings
	}

	result.YearlyProjection = project(traditional, result.AnnualPlanCost, tier.Billing, p.YearsToProject)
	return result, nil
}

func annualPlanCost(tier models.PlanTier, cadence models.BillingCadence, discount float64) (catalog, annual float64) {
	if tier.Billing == models.BillingOneTime {
		return tier.Price, tier.Price
	}
	annual = tier.Price * 12
	if cadence == models.CadenceAnnual {
		annual *= 1 - discount
	}
	return annual, annual
}

func project(traditional, planCost float64, billing models.Billing, years int) []models.YearProjection {
	if years < 1 {
		years = 1
	}
	out := make([]models.YearProjection, 0, years)
	for y := 1; y <= years; y++ {
		cumulative := planCost
		if billing == models.BillingRecurring {
			cumulative = planCost * float64(y)
		}
		out = append(out, models.YearProjection{
			Year:              y,
			TraditionalCost:   traditional * float64(y),
			PlanCost:          cumulative,
			CumulativeSavings: traditional*float64(y) - cumulative,
		})
	}
	return out
}
