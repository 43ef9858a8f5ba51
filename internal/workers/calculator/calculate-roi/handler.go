// internal/workers/calculator/calculate-roi/handler.go
package calculateroi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/common/metrics"
	"talentroi-workers/internal/models"
	"talentroi-workers/internal/roi"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-roi"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	return &Handler{
		config: config,
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := "CALCULATION_FAILED"
		if errors.Is(err, roi.ErrNoHires) || errors.Is(err, roi.ErrZeroPerHireCost) {
			code = "PROFILE_PRECONDITION_FAILED"
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.RecommendedPlan.ID == "" {
		return nil, fmt.Errorf("recommendedPlan is required")
	}

	cadence := input.BillingCadence
	if cadence == "" {
		cadence = h.config.DefaultCadence
	}
	if cadence != models.CadenceMonthly && cadence != models.CadenceAnnual {
		return nil, fmt.Errorf("unknown billing cadence %q", cadence)
	}

	result, err := roi.Compute(input.Profile, input.RecommendedPlan, cadence, h.config.Params)
	if err != nil {
		return nil, err
	}

	metrics.CalculationsByTier.WithLabelValues(string(input.RecommendedPlan.ID)).Inc()
	if result.FloorGuaranteeApplied {
		metrics.FloorGuaranteeApplied.Inc()
	}

	h.logger.Info("roi calculated", map[string]interface{}{
		"planId":           input.RecommendedPlan.ID,
		"cadence":          cadence,
		"traditionalCost":  result.TraditionalAnnualCost,
		"netAnnualSavings": result.NetAnnualSavings,
		"floorApplied":     result.FloorGuaranteeApplied,
		"breakevenHires":   result.BreakevenHireCount,
		"projectionYears":  len(result.YearlyProjection),
	})

	return &Output{Result: result}, nil
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
