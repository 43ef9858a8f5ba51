package crmleadcreate

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentroi-workers/internal/common/crm"
	commonerrors "talentroi-workers/internal/common/errors"
	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/common/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeadClient struct {
	existing   []crm.Lead
	searchErr  error
	createdID  string
	createErr  error
	lastLead   *crm.Lead
	lastSearch string
}

func (f *fakeLeadClient) CreateLead(_ context.Context, lead *crm.Lead) (string, error) {
	f.lastLead = lead
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.createdID, nil
}

func (f *fakeLeadClient) SearchLeads(_ context.Context, email string) ([]crm.Lead, error) {
	f.lastSearch = email
	return f.existing, f.searchErr
}

func createTestConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       10 * time.Second,
		CRMBaseURL:    "https://crm.test/v2",
		CRMAPIKey:     "test-key",
		CRMOAuthToken: "test-token",
	}
}

func newTestService(t *testing.T, client LeadClient) *Service {
	return &Service{
		config:    createTestConfig(),
		logger:    logger.NewTestLogger(t),
		crmClient: client,
	}
}

func validInput() *Input {
	return &Input{
		Email:        "jane@acme.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		Company:      "Acme Inc",
		Country:      "US",
		LeadSource:   "roi-calculator",
		PlanInterest: "growth",
	}
}

func TestServiceExecute_CreatesLead(t *testing.T) {
	client := &fakeLeadClient{createdID: "lead-789"}
	service := newTestService(t, client)

	output, err := service.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, "lead-789", output.LeadID)
	assert.Equal(t, "zoho", output.CRMProvider)

	require.NotNil(t, client.lastLead)
	assert.Equal(t, "jane@acme.com", client.lastLead.Email)
	assert.Equal(t, "growth", client.lastLead.PlanInterest)
	assert.Equal(t, "roi-calculator", client.lastLead.Source)
}

func TestServiceExecute_ExistingLeadIsReused(t *testing.T) {
	client := &fakeLeadClient{
		existing: []crm.Lead{{ID: "lead-001", Email: "jane@acme.com"}},
	}
	service := newTestService(t, client)

	output, err := service.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, "lead-001", output.LeadID)
	assert.Nil(t, client.lastLead, "no create call expected for existing lead")
}

func TestServiceExecute_SearchFailureStillCreates(t *testing.T) {
	client := &fakeLeadClient{searchErr: errors.New("timeout"), createdID: "lead-002"}
	service := newTestService(t, client)

	output, err := service.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "lead-002", output.LeadID)
}

func TestServiceExecute_Errors(t *testing.T) {
	tests := []struct {
		name         string
		client       LeadClient
		mutate       func(*Input)
		expectedCode string
	}{
		{
			name:         "invalid email",
			client:       &fakeLeadClient{},
			mutate:       func(i *Input) { i.Email = "bad" },
			expectedCode: "VALIDATION_FAILED",
		},
		{
			name:         "client not configured",
			client:       nil,
			expectedCode: "CRM_NOT_CONFIGURED",
		},
		{
			name:         "create fails",
			client:       &fakeLeadClient{createErr: errors.New("500")},
			expectedCode: "CRM_API_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(t, tt.client)
			input := validInput()
			if tt.mutate != nil {
				tt.mutate(input)
			}

			_, err := service.Execute(context.Background(), input)
			require.Error(t, err)

			var stdErr *commonerrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, tt.expectedCode, string(stdErr.Code))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := createTestConfig()
	assert.NoError(t, valid.Validate())

	noKey := createTestConfig()
	noKey.CRMAPIKey = ""
	assert.Error(t, noKey.Validate())

	noToken := createTestConfig()
	noToken.CRMOAuthToken = ""
	assert.Error(t, noToken.Validate())

	badTimeout := createTestConfig()
	badTimeout.Timeout = 0
	assert.Error(t, badTimeout.Validate())
}

func TestInputSchema(t *testing.T) {
	schema := GetInputSchema()

	valid := validation.ValidateInput(map[string]interface{}{
		"email":        "jane@acme.com",
		"firstName":    "Jane",
		"lastName":     "Doe",
		"planInterest": "growth",
	}, schema)
	assert.True(t, valid.Valid)

	missingRequired := validation.ValidateInput(map[string]interface{}{
		"email": "jane@acme.com",
	}, schema)
	assert.False(t, missingRequired.Valid)

	badPlan := validation.ValidateInput(map[string]interface{}{
		"email":        "jane@acme.com",
		"firstName":    "Jane",
		"lastName":     "Doe",
		"planInterest": "platinum",
	}, schema)
	assert.False(t, badPlan.Valid)
}
