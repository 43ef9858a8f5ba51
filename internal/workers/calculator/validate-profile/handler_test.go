// internal/workers/calculator/validate-profile/handler_test.go
package validateprofile

import (
	"context"
	"testing"

	"talentroi-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(DefaultConfig(), logger.NewTestLogger(t))
}

func TestExecute_NumericFields(t *testing.T) {
	tests := []struct {
		name           string
		data           map[string]interface{}
		expectValid    bool
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name: "valid metrics step",
			data: map[string]interface{}{
				"hiresPerYear":      float64(10),
				"hrTimePerHire":     float64(30),
				"hrHourlyRate":      float64(50),
				"agencyFeesPerHire": float64(15000),
			},
			expectValid: true,
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 10, output.ValidatedData["hiresPerYear"])
				assert.Equal(t, 30.0, output.ValidatedData["hrTimePerHire"])
			},
		},
		{
			name: "negative slider values clamp to zero",
			data: map[string]interface{}{
				"revenueLostPerDay": float64(-250),
				"hrTimePerHire":     float64(-1),
			},
			expectValid: true,
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 0.0, output.ValidatedData["revenueLostPerDay"])
				assert.Equal(t, 0.0, output.ValidatedData["hrTimePerHire"])
			},
		},
		{
			name: "hires per year clamps to one",
			data: map[string]interface{}{
				"hiresPerYear": float64(0),
			},
			expectValid: true,
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.ValidatedData["hiresPerYear"])
			},
		},
		{
			name: "projection clamps into range",
			data: map[string]interface{}{
				"yearsToProject": float64(9),
			},
			expectValid: true,
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 5, output.ValidatedData["yearsToProject"])
			},
		},
		{
			name: "numeric string is accepted",
			data: map[string]interface{}{
				"timeToHire": "30",
			},
			expectValid: true,
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 30.0, output.ValidatedData["timeToHire"])
			},
		},
		{
			name: "free text in numeric field is rejected",
			data: map[string]interface{}{
				"timeToHire": "about a month",
			},
			expectValid: false,
			validateOutput: func(t *testing.T, output *Output) {
				require.Len(t, output.ValidationErrors, 1)
				assert.Equal(t, "timeToHire", output.ValidationErrors[0].Field)
				assert.Equal(t, "INVALID_NUMBER", output.ValidationErrors[0].Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t)
			output, err := handler.Execute(context.Background(), &Input{
				Step:        "metrics",
				ProfileData: tt.data,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expectValid, output.IsValid)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestExecute_ContactFields(t *testing.T) {
	tests := []struct {
		name        string
		data        map[string]interface{}
		country     string
		expectValid bool
		failedField string
	}{
		{
			name: "valid contact step",
			data: map[string]interface{}{
				"email":      "jane@acme.com",
				"phone":      "+14155552671",
				"website":    "https://acme.com",
				"postalCode": "94105",
				"company":    "Acme Inc",
			},
			country:     "US",
			expectValid: true,
		},
		{
			name:        "bad email",
			data:        map[string]interface{}{"email": "not-an-email"},
			expectValid: false,
			failedField: "email",
		},
		{
			name:        "nine digit US zip",
			data:        map[string]interface{}{"postalCode": "94105-1234"},
			country:     "US",
			expectValid: true,
		},
		{
			name:        "malformed US zip",
			data:        map[string]interface{}{"postalCode": "9410"},
			country:     "US",
			expectValid: false,
			failedField: "postalCode",
		},
		{
			name:        "non-US postal code only needs content",
			data:        map[string]interface{}{"postalCode": "EC1A 1BB"},
			country:     "GB",
			expectValid: true,
		},
		{
			name:        "unknown recruitment type",
			data:        map[string]interface{}{"recruitmentType": "outsourced"},
			expectValid: false,
			failedField: "recruitmentType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t)
			output, err := handler.Execute(context.Background(), &Input{
				Step:        "contact",
				ProfileData: tt.data,
				Country:     tt.country,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expectValid, output.IsValid)
			if tt.failedField != "" {
				require.NotEmpty(t, output.ValidationErrors)
				assert.Equal(t, tt.failedField, output.ValidationErrors[0].Field)
			}
		})
	}
}

func TestExecute_RejectedFieldsDoNotPolluteValidatedData(t *testing.T) {
	handler := newTestHandler(t)
	output, err := handler.Execute(context.Background(), &Input{
		Step: "metrics",
		ProfileData: map[string]interface{}{
			"hiresPerYear": float64(12),
			"timeToHire":   "soon",
		},
	})
	require.NoError(t, err)

	assert.False(t, output.IsValid)
	assert.Equal(t, 12, output.ValidatedData["hiresPerYear"])
	_, present := output.ValidatedData["timeToHire"]
	assert.False(t, present)
}

func TestExecute_EmptyProfileData(t *testing.T) {
	handler := newTestHandler(t)
	_, err := handler.Execute(context.Background(), &Input{Step: "contact"})
	assert.Error(t, err)
}
