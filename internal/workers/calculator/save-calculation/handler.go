// internal/workers/calculator/save-calculation/handler.go
package savecalculation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"talentroi-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "save-calculation"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateCalculation = errors.New("DUPLICATE_CALCULATION")
)

type Handler struct {
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		db:     db,
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		if errors.Is(err, ErrDatabaseInsertFailed) {
			errorCode = "DATABASE_INSERT_FAILED"
			retries = 3
		} else if errors.Is(err, ErrDuplicateCalculation) {
			errorCode = "DUPLICATE_CALCULATION"
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.RequestID == "" {
		return nil, fmt.Errorf("requestId is required")
	}
	if input.Result == nil {
		return nil, fmt.Errorf("roiResult is required")
	}

	// The same request must never be persisted twice. Retried jobs and
	// double-submitted forms both arrive with the original request id.
	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM calculations WHERE request_id = $1
		)`, input.RequestID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: calculation already saved for request %s",
			ErrDuplicateCalculation, input.RequestID)
	}

	calcID := uuid.New().String()
	savedAt := time.Now().UTC().Format(time.RFC3339)

	profileJSON, err := json.Marshal(input.Profile)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal profile: %v", ErrDatabaseInsertFailed, err)
	}
	resultJSON, err := json.Marshal(input.Result)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal result: %v", ErrDatabaseInsertFailed, err)
	}

	var leadID sql.NullString
	if input.LeadID != "" {
		leadID = sql.NullString{String: input.LeadID, Valid: true}
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO calculations (
			id, request_id, lead_id, profile, cadence, result, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		calcID,
		input.RequestID,
		leadID,
		profileJSON,
		string(input.BillingCadence),
		resultJSON,
		savedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	// Audit entry is best effort.
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"requestId":       input.RequestID,
		"leadId":          input.LeadID,
		"recommendedPlan": input.Result.RecommendedPlan.ID,
		"floorApplied":    input.Result.FloorGuaranteeApplied,
	})
	if err != nil {
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"calculation_saved",
		"calculation",
		calcID,
		auditDetailsJSON,
		savedAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"calculationId": calcID,
		})
	}

	h.logger.Info("calculation saved", map[string]interface{}{
		"calculationId": calcID,
		"requestId":     input.RequestID,
		"planId":        input.Result.RecommendedPlan.ID,
	})

	return &Output{
		CalculationID: calcID,
		SavedAt:       savedAt,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	} else {
		h.logger.Info("job completed successfully", map[string]interface{}{
			"jobKey": job.Key,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	// Transient failures go back to the broker for retry, everything
	// else surfaces as a BPMN error the process can catch.
	if retries > 0 {
		_, err := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(retries).
			ErrorMessage(errorMessage).
			Send(context.Background())
		if err != nil {
			h.logger.Error("failed to fail job", map[string]interface{}{
				"error": err,
			})
		}
		return
	}

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
