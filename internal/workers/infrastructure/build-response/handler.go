// internal/workers/infrastructure/build-response/handler.go
package buildresponse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const TaskType = "build-response"

var (
	ErrTemplateNotFound         = errors.New("TEMPLATE_NOT_FOUND")
	ErrTemplateValidationFailed = errors.New("TEMPLATE_VALIDATION_FAILED")
)

type templateCacheEntry struct {
	template *TemplateDefinition
	loadedAt time.Time
}

type Handler struct {
	config *Config
	logger logger.Logger
	cache  map[string]*templateCacheEntry
	mu     sync.RWMutex
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		cache:  make(map[string]*templateCacheEntry),
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

	output, err := h.Execute(ctx, &input)
	if err != nil {
		errorCode := "RESPONSE_BUILD_ERROR"
		if errors.Is(err, ErrTemplateNotFound) {
			errorCode = "TEMPLATE_NOT_FOUND"
		} else if errors.Is(err, ErrTemplateValidationFailed) {
			errorCode = "TEMPLATE_VALIDATION_FAILED"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	template, err := h.loadTemplate(input.TemplateId)
	if err != nil {
		return nil, err
	}

	if err := h.validateData(template.Schema, input.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateValidationFailed, err)
	}

	responseData := h.substituteTemplate(template.Template, input.Data)
	responseDataMap, ok := responseData.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected template root to be an object after substitution, got %T for template %s",
			responseData, input.TemplateId)
	}

	payload := ResponsePayload{
		RequestId: input.RequestId,
		Status:    "success",
		Data:      responseDataMap,
		Formatted: h.formatQuantities(input.Data),
		Metadata: ResponseMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   h.config.AppVersion,
		},
	}

	return &Output{Response: payload}, nil
}

// formatQuantities renders the well-known numeric result fields into
// display strings so the widget never does its own number formatting.
func (h *Handler) formatQuantities(data map[string]interface{}) map[string]string {
	result, ok := data["roiResult"].(map[string]interface{})
	if !ok {
		return nil
	}

	formatted := make(map[string]string)
	currencyFields := []string{
		"traditionalAnnualCost", "annualPlanCost", "catalogPlanCost",
		"netAnnualSavings", "revenueRecoveredAnnually",
	}
	for _, field := range currencyFields {
		if v, ok := result[field].(float64); ok {
			formatted[field] = models.Currency(v).Format()
		}
	}
	if v, ok := result["hrHoursSavedAnnually"].(float64); ok {
		formatted["hrHoursSavedAnnually"] = models.Hours(v).Format()
	}
	if v, ok := result["timeToHireReductionPercent"].(float64); ok {
		formatted["timeToHireReductionPercent"] = models.Percent(v).Format()
	}

	if len(formatted) == 0 {
		return nil
	}
	return formatted
}

func (h *Handler) substituteTemplate(templateData interface{}, inputData map[string]interface{}) interface{} {
	if templateData == nil {
		return nil
	}

	switch v := templateData.(type) {
	case string:
		if len(v) > 4 && strings.HasPrefix(v, "{{") && strings.HasSuffix(v, "}}") {
			key := strings.TrimSpace(v[2 : len(v)-2])
			value := h.lookupNestedValue(inputData, key)
			switch numVal := value.(type) {
			case int:
				return float64(numVal)
			case int64:
				return float64(numVal)
			case int32:
				return float64(numVal)
			default:
				return value
			}
		}
		return v
	case map[string]interface{}:
		result := make(map[string]interface{})
		for k, v2 := range v {
			result[k] = h.substituteTemplate(v2, inputData)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = h.substituteTemplate(item, inputData)
		}
		return result
	default:
		return v
	}
}

func (h *Handler) lookupNestedValue(data map[string]interface{}, key string) interface{} {
	parts := strings.Split(key, ".")
	current := interface{}(data)

	for _, part := range parts {
		currentMap, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		val, exists := currentMap[part]
		if !exists {
			return nil
		}
		current = val
	}

	return current
}

func (h *Handler) loadTemplate(id string) (*TemplateDefinition, error) {
	h.mu.RLock()
	if entry, ok := h.cache[id]; ok && time.Since(entry.loadedAt) < h.config.CacheTTL {
		h.mu.RUnlock()
		return entry.template, nil
	}
	h.mu.RUnlock()

	registryBytes, err := os.ReadFile(h.config.TemplateRegistry)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var registry struct {
		Templates []TemplateDefinition `json:"templates"`
	}
	if err := json.Unmarshal(registryBytes, &registry); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	for i := range registry.Templates {
		t := registry.Templates[i]
		if t.ID == id {
			h.mu.Lock()
			h.cache[id] = &templateCacheEntry{
				template: &t,
				loadedAt: time.Now(),
			}
			h.mu.Unlock()
			return &t, nil
		}
	}

	return nil, ErrTemplateNotFound
}

func (h *Handler) validateData(schemaMap, data map[string]interface{}) error {
	if len(schemaMap) == 0 {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("data validation failed: %v", errs)
	}

	return nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{"error": err})
	}
}
