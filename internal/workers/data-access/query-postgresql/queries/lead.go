// internal/workers/data-access/query-postgresql/queries/lead.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func LeadByEmail(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	email, ok := params["email"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, leadEmail, firstName, lastName, createdAt string
	var company, phone, country, leadSource, planInterest sql.NullString

	err := db.QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name, company, phone,
		       country, lead_source, plan_interest, created_at
		FROM leads
		WHERE email = $1`, email).Scan(
		&id, &leadEmail, &firstName, &lastName,
		&company, &phone, &country,
		&leadSource, &planInterest, &createdAt,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":           id,
		"email":        leadEmail,
		"firstName":    firstName,
		"lastName":     lastName,
		"company":      company.String,
		"phone":        phone.String,
		"country":      country.String,
		"leadSource":   leadSource.String,
		"planInterest": planInterest.String,
		"createdAt":    createdAt,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func TierDistribution(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT result->'recommendedPlan'->>'id' AS plan_id, COUNT(*) AS total
		FROM calculations
		GROUP BY 1
		ORDER BY total DESC`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var planID string
		var total int
		if err := rows.Scan(&planID, &total); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"planId": planID,
			"count":  total,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
