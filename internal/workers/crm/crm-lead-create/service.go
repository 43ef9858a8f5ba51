package crmleadcreate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"talentroi-workers/internal/common/crm"
	"talentroi-workers/internal/common/errors"
	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/common/validation"
)

// LeadClient is the subset of the CRM client the service needs.
type LeadClient interface {
	CreateLead(ctx context.Context, lead *crm.Lead) (string, error)
	SearchLeads(ctx context.Context, email string) ([]crm.Lead, error)
}

type Service struct {
	config    *Config
	logger    logger.Logger
	crmClient LeadClient
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	var crmClient LeadClient
	if config.CRMAPIKey != "" && config.CRMOAuthToken != "" {
		crmClient = crm.NewClient(config.CRMBaseURL, config.CRMAPIKey, config.CRMOAuthToken, config.Timeout)
	}

	return &Service{
		config:    config,
		logger:    deps.Logger,
		crmClient: crmClient,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	s.logger.Info("Executing CRM lead create", map[string]interface{}{
		"email":        input.Email,
		"company":      input.Company,
		"planInterest": input.PlanInterest,
	})

	if !validation.ValidateEmail(strings.TrimSpace(input.Email)) {
		return nil, &errors.StandardError{
			Code:      "VALIDATION_FAILED",
			Message:   "Invalid email address",
			Details:   "email must be a valid address",
			Retryable: false,
			Timestamp: time.Now(),
		}
	}

	if s.crmClient == nil {
		return nil, &errors.StandardError{
			Code:      "CRM_NOT_CONFIGURED",
			Message:   "CRM client not configured",
			Details:   "Missing API key or OAuth token",
			Retryable: false,
			Timestamp: time.Now(),
		}
	}

	// Re-submitting the calculator must not spawn duplicate leads.
	existing, err := s.crmClient.SearchLeads(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Failed to search for existing lead", map[string]interface{}{
			"email": input.Email,
			"error": err.Error(),
		})
	} else if len(existing) > 0 {
		s.logger.Info("Lead already exists in CRM", map[string]interface{}{
			"email":  input.Email,
			"leadId": existing[0].ID,
		})
		return &Output{
			Success:     true,
			Message:     "Lead already exists in CRM",
			LeadID:      existing[0].ID,
			CRMProvider: "zoho",
			CreatedAt:   time.Now(),
		}, nil
	}

	lead := &crm.Lead{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Company:      input.Company,
		Phone:        input.Phone,
		Country:      input.Country,
		Source:       input.LeadSource,
		PlanInterest: input.PlanInterest,
	}

	leadID, err := s.crmClient.CreateLead(ctx, lead)
	if err != nil {
		return nil, &errors.StandardError{
			Code:      "CRM_API_ERROR",
			Message:   "Failed to create CRM lead",
			Details:   err.Error(),
			Retryable: true,
			Timestamp: time.Now(),
		}
	}

	s.logger.Info("CRM lead created successfully", map[string]interface{}{
		"leadId":   leadID,
		"email":    input.Email,
		"provider": "zoho",
	})

	return &Output{
		Success:     true,
		Message:     "CRM lead created successfully",
		LeadID:      leadID,
		CRMProvider: "zoho",
		CreatedAt:   time.Now(),
	}, nil
}

func (s *Service) TestConnection(ctx context.Context) error {
	if s.crmClient == nil {
		return errors.NewExternalServiceError("crm", fmt.Errorf("client not configured"))
	}

	_, err := s.crmClient.SearchLeads(ctx, "test@healthcheck.com")
	if err != nil {
		if strings.Contains(err.Error(), "401") || strings.Contains(err.Error(), "403") {
			return errors.NewAuthenticationError("crm authentication failed")
		}
	}
	return nil
}
