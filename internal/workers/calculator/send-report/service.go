// internal/workers/calculator/send-report/service.go
package sendreport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"talentroi-workers/internal/common/logger"
	"talentroi-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// EmailSender and SMSSender match the common aws client wrappers so
// tests can substitute fakes.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Service struct {
	config *Config
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
}

func NewService(config *Config, email EmailSender, sms SMSSender, log logger.Logger) *Service {
	return &Service{
		config: config,
		email:  email,
		sms:    sms,
		logger: log,
	}
}

var tierRank = map[models.PlanID]int{
	models.PlanEssential:  0,
	models.PlanGrowth:     1,
	models.PlanScale:      2,
	models.PlanEnterprise: 3,
}

func (s *Service) SendReport(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{SentAt: time.Now().UTC()}

	subject, body := s.composeEmail(input)

	resp, err := s.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.config.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{input.Email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("email send failed: %w", err)
	}
	output.EmailSent = true
	if resp != nil && resp.MessageId != nil {
		output.MessageID = *resp.MessageId
	}

	if s.shouldSendSMS(input) {
		if err := s.sendSMS(ctx, input); err != nil {
			// Email already went out; a failed text is worth a warning,
			// not a failed job.
			s.logger.Warn("sms send failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			output.SMSSent = true
		}
	}

	return output, nil
}

func (s *Service) shouldSendSMS(input *Input) bool {
	if !s.config.SMSEnabled || s.sms == nil || input.Phone == "" {
		return false
	}
	return tierRank[input.Result.RecommendedPlan.ID] >= tierRank[s.config.SMSMinTier]
}

func (s *Service) sendSMS(ctx context.Context, input *Input) error {
	message := fmt.Sprintf("Your recruitment ROI report is ready: save %s per year with the %s plan. Full details in your inbox.",
		models.Currency(input.Result.NetAnnualSavings).Format(),
		input.Result.RecommendedPlan.Name)

	_, err := s.sms.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(input.Phone),
		Message:     aws.String(message),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(s.config.SMSSenderID),
			},
		},
	})
	return err
}

func (s *Service) composeEmail(input *Input) (subject, body string) {
	r := input.Result
	plan := r.RecommendedPlan

	subject = fmt.Sprintf("Your recruitment ROI report: %s in annual savings",
		models.Currency(r.NetAnnualSavings).Format())

	greeting := "Hello"
	if input.FirstName != "" {
		greeting = "Hello " + input.FirstName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s,\n\n", greeting)
	if input.Company != "" {
		fmt.Fprintf(&b, "Here is the recruitment cost analysis for %s.\n\n", input.Company)
	} else {
		b.WriteString("Here is your recruitment cost analysis.\n\n")
	}

	fmt.Fprintf(&b, "Current annual recruitment cost: %s\n",
		models.Currency(r.TraditionalAnnualCost).Format())
	if plan.Billing == models.BillingOneTime {
		fmt.Fprintf(&b, "Recommended plan: %s (%s one-time)\n",
			plan.Name, models.Currency(plan.Price).Format())
	} else {
		fmt.Fprintf(&b, "Recommended plan: %s (%s per month)\n",
			plan.Name, models.Currency(plan.Price).Format())
	}
	fmt.Fprintf(&b, "Net annual savings: %s\n",
		models.Currency(r.NetAnnualSavings).Format())
	if r.FloorGuaranteeApplied {
		b.WriteString("Savings guarantee applied: you keep at least 70% of your current spend.\n")
	}
	fmt.Fprintf(&b, "HR hours saved annually: %s\n",
		models.Hours(r.HRHoursSavedAnnually).Format())
	fmt.Fprintf(&b, "Time-to-hire reduction: %s\n",
		models.Percent(r.TimeToHireReductionPercent).Format())
	fmt.Fprintf(&b, "Plan pays for itself after %s.\n",
		hireLabel(r.BreakevenHireCount))
	if r.RevenueRecoveredAnnually > 0 {
		fmt.Fprintf(&b, "Revenue recovered annually: %s\n",
			models.Currency(r.RevenueRecoveredAnnually).Format())
	}

	if len(r.YearlyProjection) > 0 {
		b.WriteString("\nProjected cumulative savings:\n")
		for _, year := range r.YearlyProjection {
			fmt.Fprintf(&b, "  Year %d: %s\n", year.Year,
				models.Currency(year.CumulativeSavings).Format())
		}
	}

	for _, j := range r.PlanJustifications {
		fmt.Fprintf(&b, "\n- %s", j)
	}

	b.WriteString("\n\nThe TalentROI Team\n")

	return subject, b.String()
}

func hireLabel(count int) string {
	if count == 1 {
		return "1 hire"
	}
	return fmt.Sprintf("%d hires", count)
}
