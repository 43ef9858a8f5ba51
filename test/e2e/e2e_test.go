// test/e2e/e2e_test.go
//
// Full pipeline test against real services. Requires Zeebe, PostgreSQL,
// Elasticsearch and Redis running locally (docker compose up) and
// E2E_TESTS=true in the environment.
package e2e

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"talentroi-workers/internal/common/config"
	"talentroi-workers/internal/common/database"
	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/models"

	indexcalculation "talentroi-workers/internal/workers/analytics/index-calculation"
	calculateroi "talentroi-workers/internal/workers/calculator/calculate-roi"
	classifyplan "talentroi-workers/internal/workers/calculator/classify-plan"
	savecalculation "talentroi-workers/internal/workers/calculator/save-calculation"
	validateprofile "talentroi-workers/internal/workers/calculator/validate-profile"
	querypostgresql "talentroi-workers/internal/workers/data-access/query-postgresql"
	buildresponse "talentroi-workers/internal/workers/infrastructure/build-response"
)

var (
	zeebeClient zbc.Client
	zapLog      *zap.Logger
)

func e2eEnabled() bool {
	return os.Getenv("E2E_TESTS") == "true"
}

func TestMain(m *testing.M) {
	zapLog, _ = zap.NewProduction()

	if e2eEnabled() {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         "localhost:26500",
			UsePlaintextConnection: true,
		})
		if err != nil {
			panic(fmt.Sprintf("failed to connect to Zeebe: %v", err))
		}
	}

	code := m.Run()

	if zeebeClient != nil {
		zeebeClient.Close()
	}
	os.Exit(code)
}

func TestFullPipeline(t *testing.T) {
	if !e2eEnabled() {
		t.Skip("set E2E_TESTS=true to run against real services")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"

	assertServicesUp(t, cfg)

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer pg.Close()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer rdb.Close()

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)

	createTables(t, pg.DB)

	log := logger.NewZapAdapter(zapLog)
	ctx := context.Background()

	// 1. validate-profile accepts the raw wizard fields.
	vpHandler := validateprofile.NewHandler(validateprofile.DefaultConfig(), log)
	vpOut, err := vpHandler.Execute(ctx, &validateprofile.Input{
		Step: "hiring",
		ProfileData: map[string]interface{}{
			"recruitmentType":   "agency",
			"hiresPerYear":      float64(10),
			"timeToHire":        float64(30),
			"hrTimePerHire":     float64(30),
			"hrHourlyRate":      float64(50),
			"agencyFeesPerHire": float64(15000),
			"revenueLostPerDay": float64(500),
			"yearsToProject":    float64(3),
		},
	})
	require.NoError(t, err)
	require.True(t, vpOut.IsValid, "validation errors: %v", vpOut.ValidationErrors)

	profile := models.RecruitmentProfile{
		RecruitmentType:   models.RecruitmentAgency,
		HiresPerYear:      10,
		TimeToHire:        30,
		HRTimePerHire:     30,
		HRHourlyRate:      50,
		AgencyFeesPerHire: 15000,
		RevenueLostPerDay: 500,
		YearsToProject:    3,
	}

	// 2. classify-plan picks the tier.
	cpHandler := classifyplan.NewHandler(classifyplan.LoadConfig(), pg.DB, rdb.Client, log)
	cpOut, err := cpHandler.Execute(ctx, &classifyplan.Input{Profile: profile})
	require.NoError(t, err)
	assert.Equal(t, models.PlanGrowth, cpOut.RecommendedPlan.ID)
	assert.NotEmpty(t, cpOut.PlanJustifications)

	// 3. calculate-roi runs the savings engine.
	crHandler := calculateroi.NewHandler(calculateroi.LoadConfig(), log)
	crOut, err := crHandler.Execute(ctx, &calculateroi.Input{
		Profile:         profile,
		RecommendedPlan: cpOut.RecommendedPlan,
		BillingCadence:  models.CadenceMonthly,
	})
	require.NoError(t, err)
	result := crOut.Result
	require.NotNil(t, result)
	assert.Equal(t, float64(315000), result.TraditionalAnnualCost)
	assert.Greater(t, result.NetAnnualSavings, float64(0))

	// 4. save-calculation persists it.
	requestID := uuid.New().String()
	scHandler := savecalculation.NewHandler(savecalculation.LoadConfig(), pg.DB, log)
	scOut, err := scHandler.Execute(ctx, &savecalculation.Input{
		RequestID:      requestID,
		Profile:        profile,
		BillingCadence: models.CadenceMonthly,
		Result:         result,
	})
	require.NoError(t, err)
	require.NotEmpty(t, scOut.CalculationID)

	// Replay of the same request must be rejected.
	_, err = scHandler.Execute(ctx, &savecalculation.Input{
		RequestID: requestID,
		Profile:   profile,
		Result:    result,
	})
	assert.ErrorIs(t, err, savecalculation.ErrDuplicateCalculation)

	// 5. query-postgresql reads it back.
	qpHandler := querypostgresql.NewHandler(&querypostgresql.Config{
		Timeout:  30 * time.Second,
		CacheTTL: 5 * time.Minute,
	}, pg.DB, log).WithCache(rdb.Client)
	qpOut, err := qpHandler.Execute(ctx, &querypostgresql.Input{
		QueryType:     string(querypostgresql.QueryTypeCalculationByID),
		CalculationID: scOut.CalculationID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, qpOut.RowCount)

	// 6. index-calculation pushes the document to Elasticsearch.
	icHandler := indexcalculation.NewHandler(indexcalculation.LoadConfig(), es.Client, log)
	icOut, err := icHandler.Execute(ctx, &indexcalculation.Input{
		CalculationID:  scOut.CalculationID,
		Profile:        profile,
		BillingCadence: models.CadenceMonthly,
		Result:         result,
	})
	require.NoError(t, err)
	assert.True(t, icOut.Indexed)
	assert.Equal(t, scOut.CalculationID, icOut.DocID)

	// 7. build-response assembles the widget envelope.
	var resultMap map[string]interface{}
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &resultMap))

	brHandler := buildresponse.NewHandler(&buildresponse.Config{
		TemplateRegistry: "../../configs/templates.json",
		CacheTTL:         5 * time.Minute,
		AppVersion:       "e2e",
	}, log)
	brOut, err := brHandler.Execute(ctx, &buildresponse.Input{
		TemplateId: "roi-summary",
		RequestId:  requestID,
		Data: map[string]interface{}{
			"company":   "Acme Staffing",
			"roiResult": resultMap,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "success", brOut.Response.Status)
	assert.Equal(t, "$315,000", brOut.Response.Formatted["traditionalAnnualCost"])

	t.Log("full pipeline passed")
}

func assertServicesUp(t *testing.T, cfg *config.Config) {
	t.Helper()
	ctx := context.Background()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "PostgreSQL connection failed")
	assert.NoError(t, pg.Ping(ctx), "PostgreSQL ping failed")
	pg.Close()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "Redis client creation failed")
	assert.NoError(t, rdb.Ping(ctx), "Redis ping failed")
	rdb.Close()

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err, "Elasticsearch client creation failed")
	assert.NoError(t, es.Ping(), "Elasticsearch ping failed")

	_, err = zeebeClient.NewTopologyCommand().Send(ctx)
	assert.NoError(t, err, "Zeebe topology request failed")
}

func createTables(t *testing.T, db *sql.DB) {
	t.Helper()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			first_name TEXT,
			last_name TEXT,
			company TEXT,
			phone TEXT,
			country TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS plan_tiers (
			id TEXT PRIMARY KEY,
			price NUMERIC NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS calculations (
			id TEXT PRIMARY KEY,
			request_id TEXT NOT NULL UNIQUE,
			lead_id TEXT REFERENCES leads(id),
			profile JSONB NOT NULL,
			cadence TEXT NOT NULL,
			result JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS audit_log (
			id BIGSERIAL PRIMARY KEY,
			event_type TEXT NOT NULL,
			resource_type TEXT NOT NULL,
			resource_id TEXT NOT NULL,
			details JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func BenchmarkValidateProfile(b *testing.B) {
	if !e2eEnabled() {
		b.Skip("set E2E_TESTS=true to run against real services")
	}

	handler := validateprofile.NewHandler(validateprofile.DefaultConfig(), logger.NewNoOpLogger())
	input := &validateprofile.Input{
		Step: "hiring",
		ProfileData: map[string]interface{}{
			"recruitmentType": "agency",
			"hiresPerYear":    float64(10),
			"timeToHire":      float64(30),
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := handler.Execute(context.Background(), input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCalculateROI(b *testing.B) {
	if !e2eEnabled() {
		b.Skip("set E2E_TESTS=true to run against real services")
	}

	handler := calculateroi.NewHandler(calculateroi.LoadConfig(), logger.NewNoOpLogger())
	input := &calculateroi.Input{
		Profile: models.RecruitmentProfile{
			RecruitmentType:   models.RecruitmentAgency,
			HiresPerYear:      10,
			TimeToHire:        30,
			HRTimePerHire:     30,
			HRHourlyRate:      50,
			AgencyFeesPerHire: 15000,
			YearsToProject:    3,
		},
		RecommendedPlan: models.PlanTier{
			ID: models.PlanGrowth, Name: "Growth", Price: 2990, Billing: models.BillingOneTime,
		},
		BillingCadence: models.CadenceMonthly,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := handler.Execute(context.Background(), input); err != nil {
			b.Fatal(err)
		}
	}
}
