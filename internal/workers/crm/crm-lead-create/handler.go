package crmleadcreate

import (
	"context"
	"fmt"
	"time"

	"talentroi-workers/internal/common/camunda"
	"talentroi-workers/internal/common/config"
	"talentroi-workers/internal/common/errors"
	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/common/metrics"
	"talentroi-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "crm.lead.create"

type Handler struct {
	config    *Config
	logger    logger.Logger
	camunda   *camunda.Client
	service   *Service
	jobWorker worker.JobWorker
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Camunda      *camunda.Client
	CustomConfig *Config
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for crm-lead-create: %w", err)
	}

	var loggerInstance logger.Logger
	if opts.Logger != nil {
		loggerInstance = opts.Logger
	} else {
		loggerInstance = logger.NewStructured("info", "json")
	}

	handler := &Handler{
		config:  workerConfig,
		logger:  loggerInstance,
		camunda: opts.Camunda,
	}

	handler.service = NewService(ServiceDependencies{
		Logger: loggerInstance,
	}, handler.config)

	return handler, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing CRM lead create request", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
		"worker":             TaskType,
	})

	if !h.config.Enabled {
		h.logger.Info("Worker disabled by configuration", map[string]interface{}{
			"worker": TaskType,
		})
		h.completeJob(ctx, client, job, &Output{
			Success: false,
			Message: "CRM lead creation disabled",
		})
		return
	}

	input, err := h.parseInput(job)
	if err != nil {
		errorCode := extractErrorCode(err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		errorCode := extractErrorCode(err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, &errors.StandardError{
			Code:      "INPUT_PARSING_FAILED",
			Message:   "Failed to parse job variables",
			Details:   err.Error(),
			Retryable: false,
			Timestamp: time.Now(),
		}
	}

	schema := GetInputSchema()
	validationResult := validation.ValidateInput(variables, schema)
	if !validationResult.Valid {
		return nil, &errors.StandardError{
			Code:      "VALIDATION_FAILED",
			Message:   "Input validation failed",
			Details:   fmt.Sprintf("Validation errors: %v", validationResult.GetErrorMessages()),
			Retryable: false,
			Timestamp: time.Now(),
		}
	}

	input := &Input{
		Email:     variables["email"].(string),
		FirstName: variables["firstName"].(string),
		LastName:  variables["lastName"].(string),
	}

	if phone, ok := variables["phone"].(string); ok {
		input.Phone = phone
	}
	if company, ok := variables["company"].(string); ok {
		input.Company = company
	}
	if country, ok := variables["country"].(string); ok {
		input.Country = country
	}
	if leadSource, ok := variables["leadSource"].(string); ok {
		input.LeadSource = leadSource
	}
	if planInterest, ok := variables["planInterest"].(string); ok {
		input.PlanInterest = planInterest
	}
	if metadata, ok := variables["metadata"].(map[string]interface{}); ok {
		input.Metadata = metadata
	}

	return input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	variables := map[string]interface{}{
		"crmLeadCreated": output.Success,
		"crmMessage":     output.Message,
	}

	if output.LeadID != "" {
		variables["crmLeadId"] = output.LeadID
	}
	if output.CRMProvider != "" {
		variables["crmProvider"] = output.CRMProvider
	}

	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromMap(variables)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
			"worker": TaskType,
		})
		return
	}

	_, err = request.Send(ctx)
	if err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
			"worker": TaskType,
		})
	} else {
		h.logger.Info("Successfully completed CRM lead create", map[string]interface{}{
			"jobKey":  job.GetKey(),
			"success": output.Success,
			"leadId":  output.LeadID,
			"worker":  TaskType,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := convertToStandardError(err)
	bpmnErr := errors.ConvertToBPMNError(stdErr)

	h.logger.Error("CRM lead create job failed", map[string]interface{}{
		"jobKey":       job.GetKey(),
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"retryable":    bpmnErr.Retryable,
		"retries":      bpmnErr.Retries,
		"worker":       TaskType,
	})

	failCmd := client.NewFailJobCommand().
		JobKey(job.GetKey()).
		Retries(int32(bpmnErr.Retries)).
		ErrorMessage(fmt.Sprintf("[%s] %s", bpmnErr.Code, bpmnErr.Message))

	var finalCmd interface {
		Send(context.Context) (*pb.FailJobResponse, error)
	}
	if len(bpmnErr.ErrorVariables) > 0 {
		varCmd, varErr := failCmd.VariablesFromMap(bpmnErr.ToErrorVariables())
		if varErr != nil {
			h.logger.Error("Failed to set error variables, sending without them", map[string]interface{}{
				"jobKey": job.GetKey(),
				"error":  varErr.Error(),
				"worker": TaskType,
			})
			finalCmd = failCmd
		} else {
			finalCmd = varCmd
		}
	} else {
		finalCmd = failCmd
	}

	_, failErr := finalCmd.Send(ctx)
	if failErr != nil {
		h.logger.Error("Failed to send BPMN error to Camunda", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  failErr.Error(),
			"worker": TaskType,
		})
	}
}

func (h *Handler) Register() error {
	if !h.config.Enabled {
		h.logger.Info("Worker is disabled, skipping registration", map[string]interface{}{
			"worker": TaskType,
		})
		return nil
	}

	zeebeClient := h.camunda.GetClient()

	jobWorker := zeebeClient.NewJobWorker().
		JobType(TaskType).
		Handler(h.Handle).
		MaxJobsActive(h.config.MaxJobsActive).
		Timeout(h.config.Timeout).
		Name(fmt.Sprintf("%s-worker", TaskType)).
		Open()

	h.jobWorker = jobWorker

	h.logger.Info("CRM lead create worker registered with Camunda", map[string]interface{}{
		"taskType":      TaskType,
		"maxJobsActive": h.config.MaxJobsActive,
		"timeout":       h.config.Timeout.String(),
		"enabled":       h.config.Enabled,
	})

	return nil
}

func (h *Handler) Close() {
	if h.jobWorker != nil {
		h.logger.Info("Shutting down worker gracefully", map[string]interface{}{
			"worker": TaskType,
		})
		h.jobWorker.Close()
		h.jobWorker = nil
	}
}

func (h *Handler) HealthCheck(ctx context.Context) error {
	if err := h.camunda.HealthCheck(ctx); err != nil {
		return fmt.Errorf("camunda health check failed: %w", err)
	}

	if err := h.service.TestConnection(ctx); err != nil {
		return fmt.Errorf("crm health check failed: %w", err)
	}

	return nil
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}

func extractErrorCode(err error) string {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
}

func convertToStandardError(err error) *errors.StandardError {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return stdErr
	}
	return &errors.StandardError{
		Code:      "CRM_API_ERROR",
		Message:   "Failed to create CRM lead",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now(),
	}
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()

	if appConfig != nil {
		if workerCfg, exists := appConfig.Workers["crm-lead-create"]; exists {
			cfg.Enabled = workerCfg.Enabled
			if workerCfg.MaxJobsActive > 0 {
				cfg.MaxJobsActive = workerCfg.MaxJobsActive
			}
			if workerCfg.Timeout > 0 {
				cfg.Timeout = time.Duration(workerCfg.Timeout) * time.Millisecond
			}
		}

		if appConfig.Integrations.CRM.APIKey != "" {
			cfg.CRMBaseURL = appConfig.Integrations.CRM.BaseURL
			cfg.CRMAPIKey = appConfig.Integrations.CRM.APIKey
			cfg.CRMOAuthToken = appConfig.Integrations.CRM.AuthToken
		}
	}

	return cfg
}

// Execute runs the lead creation without touching the job lifecycle.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.service.Execute(ctx, input)
}
