// internal/workers/analytics/index-calculation/handler_test.go
package indexcalculation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/models"
)

// recordingTransport captures the index request so assertions can run
// without an Elasticsearch container.
type recordingTransport struct {
	statusCode  int
	lastRequest *http.Request
	lastBody    []byte
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.lastRequest = req
	if req.Body != nil {
		rt.lastBody, _ = io.ReadAll(req.Body)
	}
	return &http.Response{
		StatusCode: rt.statusCode,
		Body:       io.NopCloser(strings.NewReader(`{"result":"created"}`)),
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}, "Content-Type": []string{"application/json"}},
	}, nil
}

func newTestHandler(t *testing.T, transport http.RoundTripper) *Handler {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
		Transport: transport,
	})
	require.NoError(t, err)

	return NewHandler(LoadConfig(), client, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func indexInput() *Input {
	return &Input{
		CalculationID:  "calc-123",
		LeadID:         "lead-456",
		Email:          "jane@acme.com",
		Company:        "Acme Inc",
		Country:        "US",
		BillingCadence: models.CadenceMonthly,
		Profile: models.RecruitmentProfile{
			RecruitmentType:   models.RecruitmentAgency,
			HiresPerYear:      10,
			TimeToHire:        30,
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
			AnnualPlanCost:     2990,
			NetAnnualSavings:   312010,
			BreakevenHireCount: 1,
		},
	}
}

func TestExecute_IndexesCalculation(t *testing.T) {
	transport := &recordingTransport{statusCode: http.StatusCreated}
	handler := newTestHandler(t, transport)

	output, err := handler.Execute(context.Background(), indexInput())
	require.NoError(t, err)

	assert.True(t, output.Indexed)
	assert.Equal(t, "roi-calculations", output.IndexName)
	assert.Equal(t, "calc-123", output.DocID)

	require.NotNil(t, transport.lastRequest)
	assert.Contains(t, transport.lastRequest.URL.Path, "/roi-calculations/_doc/calc-123")

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(transport.lastBody, &doc))
	assert.Equal(t, "agency", doc["recruitmentType"])
	assert.Equal(t, "essential", doc["recommendedPlan"])
	assert.Equal(t, 312010.0, doc["netAnnualSavings"])
	assert.Equal(t, "jane@acme.com", doc["email"])
	assert.NotEmpty(t, doc["indexedAt"])
}

func TestExecute_IndexError(t *testing.T) {
	transport := &recordingTransport{statusCode: http.StatusServiceUnavailable}
	handler := newTestHandler(t, transport)

	_, err := handler.Execute(context.Background(), indexInput())
	assert.ErrorIs(t, err, ErrIndexingFailed)
}

func TestExecute_InputValidation(t *testing.T) {
	handler := newTestHandler(t, &recordingTransport{statusCode: http.StatusCreated})

	noID := indexInput()
	noID.CalculationID = ""
	_, err := handler.Execute(context.Background(), noID)
	assert.Error(t, err)

	noResult := indexInput()
	noResult.Result = nil
	_, err = handler.Execute(context.Background(), noResult)
	assert.Error(t, err)
}
