// internal/workers/calculator/save-calculation/handler_test.go
package savecalculation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput() *Input {
	return &Input{
		RequestID:      "req-123",
		LeadID:         "lead-456",
		BillingCadence: models.CadenceMonthly,
		Profile: models.RecruitmentProfile{
			RecruitmentType:   models.RecruitmentAgency,
			HiresPerYear:      10,
			AgencyFeesPerHire: 15000,
			YearsToProject:    3,
		},
		Result: &models.ROIResult{
			TraditionalAnnualCost: 315000,
			RecommendedPlan: models.PlanTier{
				ID:      models.PlanEssential,
				Name:    "Essential",
				Price:   2990,
				Billing: models.BillingOneTime,
			},
			AnnualPlanCost:   2990,
			NetAnnualSavings: 312010,
		},
	}
}

func TestExecute_SavesCalculation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("req-123").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO calculations`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	handler := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.NotEmpty(t, output.CalculationID)
	assert.NotEmpty(t, output.SavedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_RejectsDuplicateRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("req-123").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	handler := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))

	_, err = handler.Execute(context.Background(), testInput())
	assert.ErrorIs(t, err, ErrDuplicateCalculation)
}

func TestExecute_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("req-123").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO calculations`).
		WillReturnError(fmt.Errorf("connection reset"))

	handler := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))

	_, err = handler.Execute(context.Background(), testInput())
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
}

func TestExecute_AuditFailureIsNotFatal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("req-123").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO calculations`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(errors.New("table missing"))

	handler := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)
	assert.NotEmpty(t, output.CalculationID)
}

func TestExecute_InputValidation(t *testing.T) {
	handler := NewHandler(LoadConfig(), nil, logger.NewTestLogger(t))

	noRequest := testInput()
	noRequest.RequestID = ""
	_, err := handler.Execute(context.Background(), noRequest)
	assert.Error(t, err)

	noResult := testInput()
	noResult.Result = nil
	_, err = handler.Execute(context.Background(), noResult)
	assert.Error(t, err)
}
