// internal/workers/calculator/send-report/config.go
package sendreport

import (
	"fmt"
	"time"

	"talentroi-workers/internal/models"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`
	FromEmail     string        `mapstructure:"from_email"`
	SMSEnabled    bool          `mapstructure:"sms_enabled"`
	SMSMinTier    models.PlanID `mapstructure:"sms_min_tier"`
	SMSSenderID   string        `mapstructure:"sms_sender_id"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
		FromEmail:     "reports@talentroi.io",
		SMSEnabled:    false,
		SMSMinTier:    models.PlanEnterprise,
		SMSSenderID:   "TalentROI",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from_email is required")
	}
	if c.SMSEnabled && c.SMSMinTier == "" {
		return fmt.Errorf("sms_min_tier is required when SMS is enabled")
	}
	return nil
}
