// internal/workers/calculator/send-report/handler_test.go
package sendreport

import (
	"context"
	"errors"
	"testing"

	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmailSender struct {
	lastInput *ses.SendEmailInput
	err       error
}

func (f *fakeEmailSender) SendEmail(_ context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-001")}, nil
}

type fakeSMSSender struct {
	lastInput *sns.PublishInput
	err       error
}

func (f *fakeSMSSender) Publish(_ context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

var planNames = map[models.PlanID]string{
	models.PlanEssential:  "Essential",
	models.PlanGrowth:     "Growth",
	models.PlanScale:      "Scale",
	models.PlanEnterprise: "Enterprise",
}

func reportInput(planID models.PlanID, billing models.Billing) *Input {
	return &Input{
		Email:     "jane@acme.com",
		Phone:     "+14155552671",
		FirstName: "Jane",
		Company:   "Acme Inc",
		Result: &models.ROIResult{
			TraditionalAnnualCost: 315000,
			RecommendedPlan: models.PlanTier{
				ID:      planID,
				Name:    planNames[planID],
				Price:   2990,
				Billing: billing,
			},
			AnnualPlanCost:             2990,
			NetAnnualSavings:           312010,
			HRHoursSavedAnnually:       300,
			TimeToHireReductionPercent: 50,
			BreakevenHireCount:         1,
			RevenueRecoveredAnnually:   75000,
			YearlyProjection: []models.YearProjection{
				{Year: 1, TraditionalCost: 315000, PlanCost: 2990, CumulativeSavings: 312010},
			},
		},
	}
}

func newTestHandler(t *testing.T, config *Config, email EmailSender, sms SMSSender) *Handler {
	log := logger.NewTestLogger(t)
	return NewHandler(config, NewService(config, email, sms, log), log)
}

func TestExecute_SendsEmailReport(t *testing.T) {
	email := &fakeEmailSender{}
	handler := newTestHandler(t, DefaultConfig(), email, nil)

	output, err := handler.Execute(context.Background(), reportInput(models.PlanEssential, models.BillingOneTime))
	require.NoError(t, err)

	assert.True(t, output.EmailSent)
	assert.False(t, output.SMSSent)
	assert.Equal(t, "msg-001", output.MessageID)

	require.NotNil(t, email.lastInput)
	assert.Equal(t, "reports@talentroi.io", *email.lastInput.Source)
	assert.Equal(t, []string{"jane@acme.com"}, email.lastInput.Destination.ToAddresses)

	body := *email.lastInput.Message.Body.Text.Data
	assert.Contains(t, body, "Hello Jane")
	assert.Contains(t, body, "$315,000")
	assert.Contains(t, body, "$312,010")
	assert.Contains(t, body, "300 hours")
	assert.Contains(t, body, "50%")
	assert.Contains(t, body, "1 hire")
}

func TestExecute_SMSForEnterpriseTier(t *testing.T) {
	config := DefaultConfig()
	config.SMSEnabled = true

	sms := &fakeSMSSender{}
	handler := newTestHandler(t, config, &fakeEmailSender{}, sms)

	output, err := handler.Execute(context.Background(), reportInput(models.PlanEnterprise, models.BillingRecurring))
	require.NoError(t, err)

	assert.True(t, output.SMSSent)
	require.NotNil(t, sms.lastInput)
	assert.Equal(t, "+14155552671", *sms.lastInput.PhoneNumber)
	assert.Contains(t, *sms.lastInput.Message, "$312,010")
}

func TestExecute_NoSMSBelowMinTier(t *testing.T) {
	config := DefaultConfig()
	config.SMSEnabled = true

	sms := &fakeSMSSender{}
	handler := newTestHandler(t, config, &fakeEmailSender{}, sms)

	output, err := handler.Execute(context.Background(), reportInput(models.PlanScale, models.BillingRecurring))
	require.NoError(t, err)

	assert.False(t, output.SMSSent)
	assert.Nil(t, sms.lastInput)
}

func TestExecute_SMSFailureDoesNotFailJob(t *testing.T) {
	config := DefaultConfig()
	config.SMSEnabled = true

	sms := &fakeSMSSender{err: errors.New("throttled")}
	handler := newTestHandler(t, config, &fakeEmailSender{}, sms)

	output, err := handler.Execute(context.Background(), reportInput(models.PlanEnterprise, models.BillingRecurring))
	require.NoError(t, err)

	assert.True(t, output.EmailSent)
	assert.False(t, output.SMSSent)
}

func TestExecute_EmailFailure(t *testing.T) {
	handler := newTestHandler(t, DefaultConfig(), &fakeEmailSender{err: errors.New("ses unavailable")}, nil)

	_, err := handler.Execute(context.Background(), reportInput(models.PlanEssential, models.BillingOneTime))
	assert.Error(t, err)
}

func TestExecute_InvalidEmail(t *testing.T) {
	handler := newTestHandler(t, DefaultConfig(), &fakeEmailSender{}, nil)

	input := reportInput(models.PlanEssential, models.BillingOneTime)
	input.Email = "not-an-email"

	_, err := handler.Execute(context.Background(), input)
	assert.Error(t, err)
}
