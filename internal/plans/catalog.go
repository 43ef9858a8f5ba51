// Package plans holds the published subscription catalog and the
// rules that match a recruitment profile to a tier.
package plans

import "talentroi-workers/internal/models"

// Static catalog. Pricing overrides, when present, are resolved at
// runtime by the classify-plan worker against the plan_tiers table.
var catalog = []models.PlanTier{
	{ID: models.PlanEssential, Name: "Essential", Price: 2990, Billing: models.BillingOneTime},
	{ID: models.PlanGrowth, Name: "Growth", Price: 499, Billing: models.BillingRecurring},
	{ID: models.PlanScale, Name: "Scale", Price: 999, Billing: models.BillingRecurring},
	{ID: models.PlanEnterprise, Name: "Enterprise", Price: 1999, Billing: models.BillingRecurring},
}

var justifications = map[models.PlanID][]string{
	models.PlanEssential: {
		"Single-role hiring is covered by a one-time campaign",
		"No recurring commitment while hiring volume stays low",
	},
	models.PlanGrowth: {
		"Steady hiring volume benefits from an always-on pipeline",
		"Replaces per-hire agency fees with a flat subscription",
	},
	models.PlanScale: {
		"High monthly volume needs multi-role campaign management",
		"Dedicated sourcing keeps time-to-hire down at this volume",
	},
	models.PlanEnterprise: {
		"Hiring at this scale needs custom workflows and integrations",
		"Includes a dedicated account team and priority support",
	},
}

// Catalog returns a copy of the published tiers in ascending order.
func Catalog() []models.PlanTier {
	out := make([]models.PlanTier, len(catalog))
	copy(out, catalog)
	return out
}

// TierByID looks up a tier in the static catalog.
func TierByID(id models.PlanID) (models.PlanTier, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return models.PlanTier{}, false
}

// Justifications returns the talking points shown next to a
// recommended tier.
func Justifications(id models.PlanID) []string {
	js := justifications[id]
	out := make([]string, len(js))
	copy(out, js)
	return out
}
