// internal/workers/data-access/query-postgresql/queries/calculation.go
package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

func CalculationByID(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	calculationID, ok := params["calculationId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, requestID, cadence, createdAt string
	var leadID sql.NullString
	var profileJSON, resultJSON []byte

	err := db.QueryRowContext(ctx, `
		SELECT id, request_id, lead_id, profile, cadence, result, created_at
		FROM calculations
		WHERE id = $1`, calculationID).Scan(
		&id, &requestID, &leadID,
		&profileJSON, &cadence,
		&resultJSON, &createdAt,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":        id,
		"requestId": requestID,
		"cadence":   cadence,
		"profile":   decodeJSON(profileJSON),
		"result":    decodeJSON(resultJSON),
		"createdAt": createdAt,
	}
	if leadID.Valid {
		result["leadId"] = leadID.String
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func CalculationsByEmail(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	email, ok := params["email"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	limit := 20
	if raw, ok := params["limit"].(int); ok && raw > 0 {
		limit = raw
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT c.id, c.request_id, c.cadence, c.result, c.created_at
		FROM calculations c
		JOIN leads l ON c.lead_id = l.id
		WHERE l.email = $1
		ORDER BY c.created_at DESC
		LIMIT $2`, email, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, requestID, cadence, createdAt string
		var resultJSON []byte
		if err := rows.Scan(&id, &requestID, &cadence, &resultJSON, &createdAt); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":        id,
			"requestId": requestID,
			"cadence":   cadence,
			"result":    decodeJSON(resultJSON),
			"createdAt": createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func decodeJSON(raw []byte) interface{} {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}
	return decoded
}
