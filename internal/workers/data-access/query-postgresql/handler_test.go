package querypostgresql

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/models"
	"talentroi-workers/internal/workers/data-access/query-postgresql/queries"
)

func createTestConfig() *Config {
	return &Config{
		Timeout:  5 * time.Second,
		CacheTTL: time.Minute,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func setupMockDB(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	handler := NewHandler(createTestConfig(), db, createTestLogger(t))
	return handler, mock
}

func TestExecute_CalculationByID(t *testing.T) {
	handler, mock := setupMockDB(t)

	profileJSON := []byte(`{"recruitmentType":"agency","hiresPerYear":10}`)
	resultJSON := []byte(`{"netAnnualSavings":312010,"recommendedPlan":{"id":"essential"}}`)

	mock.ExpectQuery(`SELECT id, request_id, lead_id, profile, cadence, result, created_at`).
		WithArgs("calc-123").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "request_id", "lead_id", "profile", "cadence", "result", "created_at",
		}).AddRow("calc-123", "req-1", "lead-1", profileJSON, "monthly", resultJSON, "2026-08-01T00:00:00Z"))

	output, err := handler.Execute(context.Background(), &Input{
		QueryType:     string(models.QueryTypeCalculationByID),
		CalculationID: "calc-123",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, output.RowCount)
	data := output.Data.(map[string]interface{})
	assert.Equal(t, "calc-123", data["id"])
	assert.Equal(t, "monthly", data["cadence"])

	profile := data["profile"].(map[string]interface{})
	assert.Equal(t, "agency", profile["recruitmentType"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_CalculationsByEmail(t *testing.T) {
	handler, mock := setupMockDB(t)

	resultJSON := []byte(`{"netAnnualSavings":312010}`)
	mock.ExpectQuery(`FROM calculations c`).
		WithArgs("jane@acme.com", 20).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "request_id", "cadence", "result", "created_at",
		}).
			AddRow("calc-2", "req-2", "monthly", resultJSON, "2026-08-02T00:00:00Z").
			AddRow("calc-1", "req-1", "annual", resultJSON, "2026-08-01T00:00:00Z"))

	output, err := handler.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeCalculationsByEmail),
		Email:     "jane@acme.com",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, output.RowCount)
	rows := output.Data.([]map[string]interface{})
	assert.Equal(t, "calc-2", rows[0]["id"])
}

func TestExecute_LeadByEmail(t *testing.T) {
	handler, mock := setupMockDB(t)

	mock.ExpectQuery(`FROM leads`).
		WithArgs("jane@acme.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "first_name", "last_name", "company", "phone",
			"country", "lead_source", "plan_interest", "created_at",
		}).AddRow("lead-1", "jane@acme.com", "Jane", "Doe", "Acme Inc", "+14155552671",
			"US", "roi-calculator", "growth", "2026-08-01T00:00:00Z"))

	output, err := handler.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeLeadByEmail),
		Email:     "jane@acme.com",
	})
	require.NoError(t, err)

	data := output.Data.(map[string]interface{})
	assert.Equal(t, "lead-1", data["id"])
	assert.Equal(t, "growth", data["planInterest"])
}

func TestExecute_TierDistribution(t *testing.T) {
	handler, mock := setupMockDB(t)

	mock.ExpectQuery(`GROUP BY 1`).
		WillReturnRows(sqlmock.NewRows([]string{"plan_id", "total"}).
			AddRow("growth", 42).
			AddRow("essential", 17))

	output, err := handler.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeTierDistribution),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, output.RowCount)
	rows := output.Data.([]map[string]interface{})
	assert.Equal(t, "growth", rows[0]["planId"])
	assert.Equal(t, 42, rows[0]["count"])
}

func TestExecute_InvalidQueryType(t *testing.T) {
	handler, _ := setupMockDB(t)

	_, err := handler.Execute(context.Background(), &Input{
		QueryType: "unknown_query",
	})
	assert.ErrorIs(t, err, ErrInvalidQueryType)
}

func TestExecute_MissingParam(t *testing.T) {
	handler, _ := setupMockDB(t)

	_, err := handler.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeCalculationByID),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueryExecutionFailed)
}

func TestExecute_DatabaseError(t *testing.T) {
	handler, mock := setupMockDB(t)

	mock.ExpectQuery(`FROM leads`).
		WithArgs("jane@acme.com").
		WillReturnError(errors.New("connection refused"))

	_, err := handler.Execute(context.Background(), &Input{
		QueryType: string(models.QueryTypeLeadByEmail),
		Email:     "jane@acme.com",
	})
	assert.ErrorIs(t, err, ErrQueryExecutionFailed)
}

func TestExecute_CachedResultSkipsDatabase(t *testing.T) {
	handler, _ := setupMockDB(t)

	redisClient, redisMock := redismock.NewClientMock()
	handler.WithCache(redisClient)

	input := &Input{
		QueryType: string(models.QueryTypeTierDistribution),
	}
	cached, err := json.Marshal(&Output{
		Data:     []map[string]interface{}{{"planId": "growth", "count": 42}},
		RowCount: 1,
	})
	require.NoError(t, err)

	key, err := json.Marshal(input)
	require.NoError(t, err)
	redisMock.ExpectGet("query:pg:" + string(key)).SetVal(string(cached))

	// No sqlmock expectations set: a database hit would fail the test.
	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, output.RowCount)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestExecute_WritesResultToCache(t *testing.T) {
	handler, mock := setupMockDB(t)

	mr := miniredis.RunT(t)
	handler.WithCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	mock.ExpectQuery(`GROUP BY 1`).
		WillReturnRows(sqlmock.NewRows([]string{"plan_id", "total"}).
			AddRow("growth", 42))

	input := &Input{QueryType: string(models.QueryTypeTierDistribution)}

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, output.RowCount)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Second run is served from Redis. No further sqlmock expectations
	// are registered, so a database hit would fail the test.
	cached, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.RowCount)

	key, err := json.Marshal(input)
	require.NoError(t, err)
	assert.True(t, mr.Exists("query:pg:"+string(key)))
}

func TestQueriesRegistry_CoversAllQueryTypes(t *testing.T) {
	for _, queryType := range []models.QueryType{
		models.QueryTypeCalculationByID,
		models.QueryTypeCalculationsByEmail,
		models.QueryTypeLeadByEmail,
		models.QueryTypeTierDistribution,
	} {
		_, exists := queries.Registry[queryType]
		assert.True(t, exists, "registry missing %s", queryType)
	}
}
