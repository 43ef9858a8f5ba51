// internal/workers/analytics/index-calculation/handler.go
package indexcalculation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"

	"talentroi-workers/internal/common/logger"
)

const (
	TaskType = "index-calculation"
)

var (
	ErrIndexingFailed = errors.New("INDEXING_FAILED")
)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	logger logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	return &Handler{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "INDEXING_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.CalculationID == "" {
		return nil, fmt.Errorf("calculationId is required")
	}
	if input.Result == nil {
		return nil, fmt.Errorf("roiResult is required")
	}

	doc := h.buildDocument(input)

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal document: %v", ErrIndexingFailed, err)
	}

	res, err := h.client.Index(
		h.config.IndexName,
		bytes.NewReader(body),
		h.client.Index.WithDocumentID(input.CalculationID),
		h.client.Index.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexingFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: index returned %s", ErrIndexingFailed, res.Status())
	}

	h.logger.Info("calculation indexed", map[string]interface{}{
		"calculationId": input.CalculationID,
		"index":         h.config.IndexName,
		"planId":        input.Result.RecommendedPlan.ID,
	})

	return &Output{
		Indexed:   true,
		IndexName: h.config.IndexName,
		DocID:     input.CalculationID,
	}, nil
}

// buildDocument flattens the calculation into the analytics document
// shape. Dashboards aggregate on these fields, so they stay scalar.
func (h *Handler) buildDocument(input *Input) map[string]interface{} {
	r := input.Result

	doc := map[string]interface{}{
		"calculationId":         input.CalculationID,
		"recruitmentType":       input.Profile.RecruitmentType,
		"hiresPerYear":          input.Profile.HiresPerYear,
		"timeToHire":            input.Profile.TimeToHire,
		"billingCadence":        input.BillingCadence,
		"traditionalAnnualCost": r.TraditionalAnnualCost,
		"recommendedPlan":       r.RecommendedPlan.ID,
		"annualPlanCost":        r.AnnualPlanCost,
		"netAnnualSavings":      r.NetAnnualSavings,
		"floorGuaranteeApplied": r.FloorGuaranteeApplied,
		"breakevenHireCount":    r.BreakevenHireCount,
		"indexedAt":             time.Now().UTC().Format(time.RFC3339),
	}

	if input.LeadID != "" {
		doc["leadId"] = input.LeadID
	}
	if input.Email != "" {
		doc["email"] = input.Email
	}
	if input.Company != "" {
		doc["company"] = input.Company
	}
	if input.Country != "" {
		doc["country"] = input.Country
	}

	return doc
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.failJob(client, job, "COMPLETE_ERROR", fmt.Sprintf("prepare complete: %v", err))
		return
	}

	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey": job.Key,
		"docId":  output.DocID,
	})
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, _ = client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
