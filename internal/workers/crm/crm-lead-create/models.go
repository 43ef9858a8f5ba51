package crmleadcreate

import (
	"time"

	"talentroi-workers/internal/common/logger"
)

type Input struct {
	Email        string                 `json:"email"`
	FirstName    string                 `json:"firstName"`
	LastName     string                 `json:"lastName"`
	Phone        string                 `json:"phone,omitempty"`
	Company      string                 `json:"company,omitempty"`
	Country      string                 `json:"country,omitempty"`
	LeadSource   string                 `json:"leadSource,omitempty"`
	PlanInterest string                 `json:"planInterest,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	LeadID      string    `json:"leadId,omitempty"`
	CRMProvider string    `json:"crmProvider,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}
