package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/config"
	"github.com/sjperalta/tagihwarga-api/pkg/logger"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

// SendDailySummary mails the day's collection summary to the operator
func (s *EmailService) SendDailySummary(ctx context.Context, summary *DailySummary) error {
	to := s.config.OperatorEmail
	if ok, err := s.checkEmailPreconditions(to, "daily summary"); !ok {
		return err
	}

	data := struct {
		Date        string
		TodayIncome string
		Period      string
		Count       int
		Paid        int
		Unpaid      int
		Overdue     int
		Outstanding string
	}{
		Date:        summary.DateLabel,
		TodayIncome: billing.FormatRupiah(int(summary.TodayIncome)),
		Period:      summary.PeriodLabel,
		Count:       summary.Stats.Count,
		Paid:        summary.Stats.Paid,
		Unpaid:      summary.Stats.Unpaid,
		Overdue:     summary.Stats.Overdue,
		Outstanding: billing.FormatRupiah(summary.Stats.Outstanding),
	}

	body, err := s.renderTemplate("daily_summary.html", data)
	if err != nil {
		return err
	}

	subject := "Ringkasan Tagihan " + summary.DateLabel
	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.resendClient.Emails.SendWithContext(ctx, params); err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", to, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: %s", to, subject))
	return nil
}

// checkEmailPreconditions reports whether an email may be sent. A false result with a nil
// error means sending is switched off.
func (s *EmailService) checkEmailPreconditions(to, operation string) (bool, error) {
	if !s.config.EnableEmailNotifications {
		logger.Debug("Email notifications disabled, skipping", "operation", operation)
		return false, nil
	}
	if s.config.ResendAPIKey == "" || s.config.FromEmail == "" {
		return false, fmt.Errorf("cannot send %s: RESEND_API_KEY is not set or FROM_EMAIL is empty", operation)
	}
	if strings.TrimSpace(to) == "" {
		return false, fmt.Errorf("email address is empty")
	}
	return true, nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
