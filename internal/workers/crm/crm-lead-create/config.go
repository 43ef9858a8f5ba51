package crmleadcreate

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`
	CRMBaseURL    string        `mapstructure:"crm_base_url"`
	CRMAPIKey     string        `mapstructure:"crm_api_key"`
	CRMOAuthToken string        `mapstructure:"crm_oauth_token"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.CRMAPIKey == "" {
		return fmt.Errorf("crm_api_key is required")
	}
	if c.CRMOAuthToken == "" {
		return fmt.Errorf("crm_oauth_token is required")
	}
	return nil
}
