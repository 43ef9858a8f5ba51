// internal/workers/data-access/query-postgresql/models.go
package querypostgresql

import "talentroi-workers/internal/models"

type Input struct {
	QueryType     string                 `json:"queryType"`
	CalculationID string                 `json:"calculationId,omitempty"`
	Email         string                 `json:"email,omitempty"`
	Limit         int                    `json:"limit,omitempty"`
	Filters       map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

// Export constants for external use
var (
	QueryTypeCalculationByID     = models.QueryTypeCalculationByID
	QueryTypeCalculationsByEmail = models.QueryTypeCalculationsByEmail
	QueryTypeLeadByEmail         = models.QueryTypeLeadByEmail
	QueryTypeTierDistribution    = models.QueryTypeTierDistribution
)
