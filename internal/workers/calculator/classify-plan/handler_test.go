// internal/workers/calculator/classify-plan/handler_test.go
package classifyplan

import (
	"context"
	"testing"
	"time"

	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		CacheTTL: time.Minute,
		Timeout:  5 * time.Second,
	}
}

func agencyProfile(hiresPerYear int) models.RecruitmentProfile {
	return models.RecruitmentProfile{
		RecruitmentType:   models.RecruitmentAgency,
		HiresPerYear:      hiresPerYear,
		TimeToHire:        30,
		HRTimePerHire:     30,
		HRHourlyRate:      50,
		AgencyFeesPerHire: 15000,
		YearsToProject:    3,
	}
}

func TestExecute_Classification(t *testing.T) {
	tests := []struct {
		name           string
		profile        models.RecruitmentProfile
		expectedPlanID models.PlanID
	}{
		{
			// 12 hires/year is exactly 1/month.
			name:           "low volume agency gets essential",
			profile:        agencyProfile(12),
			expectedPlanID: models.PlanEssential,
		},
		{
			name:           "mid volume agency gets growth",
			profile:        agencyProfile(60),
			expectedPlanID: models.PlanGrowth,
		},
		{
			name:           "high volume agency gets scale",
			profile:        agencyProfile(200),
			expectedPlanID: models.PlanScale,
		},
		{
			name:           "very high volume agency gets enterprise",
			profile:        agencyProfile(300),
			expectedPlanID: models.PlanEnterprise,
		},
		{
			name: "small internal team gets growth",
			profile: models.RecruitmentProfile{
				RecruitmentType:  models.RecruitmentInternal,
				HiresPerYear:     24,
				TimeToHire:       45,
				TotalCostPerHire: 3000,
				InternalTeam:     models.InternalTeam{Recruiters: 1, RecruiterSalary: 70000},
				YearsToProject:   3,
			},
			expectedPlanID: models.PlanGrowth,
		},
		{
			name: "large internal team gets enterprise",
			profile: models.RecruitmentProfile{
				RecruitmentType:  models.RecruitmentInternal,
				HiresPerYear:     100,
				TimeToHire:       45,
				TotalCostPerHire: 3000,
				InternalTeam:     models.InternalTeam{Recruiters: 5, RecruiterSalary: 70000, Coordinators: 2, CoordinatorSalary: 45000},
				YearsToProject:   3,
			},
			expectedPlanID: models.PlanEnterprise,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))

			output, err := handler.Execute(context.Background(), &Input{Profile: tt.profile})
			require.NoError(t, err)

			assert.Equal(t, tt.expectedPlanID, output.RecommendedPlan.ID)
			assert.NotEmpty(t, output.RecommendedPlan.Name)
			assert.NotEmpty(t, output.PlanJustifications)
		})
	}
}

func TestExecute_PriceOverrideFromDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()

	redisMock.ExpectGet("plan:price:essential").RedisNil()
	mock.ExpectQuery(`SELECT price FROM plan_tiers WHERE id = \$1`).
		WithArgs("essential").
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(2490.0))
	redisMock.ExpectSet("plan:price:essential", "2490", time.Minute).SetVal("OK")

	handler := NewHandler(createTestConfig(), db, redisClient, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Profile: agencyProfile(12)})
	require.NoError(t, err)

	assert.Equal(t, models.PlanEssential, output.RecommendedPlan.ID)
	assert.Equal(t, 2490.0, output.RecommendedPlan.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_PriceServedFromCache(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet("plan:price:growth").SetVal("449")

	handler := NewHandler(createTestConfig(), nil, redisClient, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Profile: agencyProfile(60)})
	require.NoError(t, err)

	assert.Equal(t, 449.0, output.RecommendedPlan.Price)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestExecute_CatalogPriceWhenNoOverride(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet("plan:price:essential").RedisNil()
	mock.ExpectQuery(`SELECT price FROM plan_tiers WHERE id = \$1`).
		WithArgs("essential").
		WillReturnRows(sqlmock.NewRows([]string{"price"}))

	handler := NewHandler(createTestConfig(), db, redisClient, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Profile: agencyProfile(12)})
	require.NoError(t, err)

	// Static catalog price survives when the override table has no row.
	assert.Equal(t, 2990.0, output.RecommendedPlan.Price)
}

func TestExecute_InvalidProfile(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Profile: models.RecruitmentProfile{}})
	assert.Error(t, err)
}
