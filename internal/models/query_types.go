// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeCalculationByID     QueryType = "calculation_by_id"
	QueryTypeCalculationsByEmail QueryType = "calculations_by_email"
	QueryTypeLeadByEmail         QueryType = "lead_by_email"
	QueryTypeTierDistribution    QueryType = "tier_distribution"
)
