// internal/workers/calculator/validate-profile/handler.go
package validateprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/common/validation"
	"talentroi-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-profile"
)

// numericRule declares the accepted range for a numeric field.
// Values below Min are clamped, not rejected; only non-numeric free
// text is rejected outright.
type numericRule struct {
	Min     float64
	Max     float64 // 0 means unbounded
	Integer bool
}

var numericRules = map[string]numericRule{
	"hiresPerYear":      {Min: 1, Integer: true},
	"timeToHire":        {Min: 0},
	"hrTimePerHire":     {Min: 0},
	"hrHourlyRate":      {Min: 0},
	"agencyFeesPerHire": {Min: 0},
	"totalCostPerHire":  {Min: 0},
	"recruiters":        {Min: 0, Integer: true},
	"recruiterSalary":   {Min: 0},
	"coordinators":      {Min: 0, Integer: true},
	"coordinatorSalary": {Min: 0},
	"revenueLostPerDay": {Min: 0},
	"yearsToProject":    {Min: 1, Max: 5, Integer: true},
}

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
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
		h.failJob(client, job, "PARSE_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "PROFILE_VALIDATION_FAILED", err.Error())
		return
	}

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
		h.logger.Error("failed to complete job", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if len(input.ProfileData) == 0 {
		return nil, fmt.Errorf("profileData is required")
	}

	validated := make(map[string]interface{})
	var validationErrors []ValidationError

	for field, raw := range input.ProfileData {
		value, fieldErr := h.validateField(field, raw, input.Country)
		if fieldErr != nil {
			validationErrors = append(validationErrors, *fieldErr)
			continue
		}
		validated[field] = value
	}

	isValid := len(validationErrors) == 0
	h.logger.Info("validation completed", map[string]interface{}{
		"step":       input.Step,
		"isValid":    isValid,
		"errorCount": len(validationErrors),
	})

	if validationErrors == nil {
		validationErrors = []ValidationError{}
	}

	return &Output{
		IsValid:          isValid,
		ValidatedData:    validated,
		ValidationErrors: validationErrors,
	}, nil
}

func (h *Handler) validateField(field string, raw interface{}, country string) (interface{}, *ValidationError) {
	if rule, ok := numericRules[field]; ok {
		return h.validateNumeric(field, raw, rule)
	}

	switch field {
	case "recruitmentType":
		str, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Field: field, Code: "INVALID_TYPE", Message: "Recruitment type must be a string"}
		}
		str = strings.ToLower(strings.TrimSpace(str))
		if str != string(models.RecruitmentAgency) && str != string(models.RecruitmentInternal) {
			return nil, &ValidationError{Field: field, Code: "INVALID_VALUE", Message: "Recruitment type must be agency or internal"}
		}
		return str, nil

	case "email":
		str, ok := raw.(string)
		if !ok || !validation.ValidateEmail(strings.TrimSpace(str)) {
			return nil, &ValidationError{Field: field, Code: "INVALID_FORMAT", Message: "Invalid email format"}
		}
		return strings.TrimSpace(str), nil

	case "phone":
		str, ok := raw.(string)
		if !ok || !validation.ValidatePhone(strings.TrimSpace(str)) {
			return nil, &ValidationError{Field: field, Code: "INVALID_FORMAT", Message: "Invalid phone format"}
		}
		return strings.TrimSpace(str), nil

	case "website":
		str, ok := raw.(string)
		if !ok || !validation.ValidateURL(strings.TrimSpace(str)) {
			return nil, &ValidationError{Field: field, Code: "INVALID_FORMAT", Message: "Invalid website URL"}
		}
		return strings.TrimSpace(str), nil

	case "postalCode":
		str, ok := raw.(string)
		if !ok || !validation.ValidatePostalCode(strings.TrimSpace(str), country) {
			return nil, &ValidationError{Field: field, Code: "INVALID_FORMAT", Message: "Invalid postal code"}
		}
		return strings.TrimSpace(str), nil

	default:
		// Free-form fields (company name, country) only need to be strings.
		if str, ok := raw.(string); ok {
			return strings.TrimSpace(str), nil
		}
		return nil, &ValidationError{Field: field, Code: "INVALID_TYPE", Message: "Value must be a string"}
	}
}

// validateNumeric accepts numbers and numeric strings, clamps values
// below the field minimum (slider semantics), and rejects free text.
func (h *Handler) validateNumeric(field string, raw interface{}, rule numericRule) (interface{}, *ValidationError) {
	value, err := parseNumber(raw)
	if err != nil {
		return nil, &ValidationError{Field: field, Code: "INVALID_NUMBER", Message: fmt.Sprintf("%s must be a number", field)}
	}

	if value < rule.Min {
		value = rule.Min
	}
	if rule.Max > 0 && value > rule.Max {
		value = rule.Max
	}

	if rule.Integer {
		return int(value), nil
	}
	return value, nil
}

func parseNumber(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("not a number")
	}
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
