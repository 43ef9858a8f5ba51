// internal/workers/calculator/send-report/models.go
package sendreport

import (
	"time"

	"talentroi-workers/internal/models"
)

type Input struct {
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	FirstName string            `json:"firstName,omitempty"`
	Company   string            `json:"company,omitempty"`
	Result    *models.ROIResult `json:"roiResult"`
}

type Output struct {
	EmailSent bool      `json:"emailSent"`
	SMSSent   bool      `json:"smsSent"`
	MessageID string    `json:"messageId,omitempty"`
	SentAt    time.Time `json:"sentAt"`
}
