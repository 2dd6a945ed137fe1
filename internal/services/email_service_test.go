package services

import (
	"testing"

	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailService_checkEmailPreconditions(t *testing.T) {
	// Test case 1: Email notifications disabled
	service := NewEmailService(&config.Config{EnableEmailNotifications: false})

	ok, err := service.checkEmailPreconditions("operator@example.com", "daily summary")
	assert.False(t, ok, "Should return false when notifications are disabled")
	assert.Nil(t, err, "Should not return error when notifications are disabled")

	// Test case 2: Email configured and valid
	cfg := &config.Config{
		EnableEmailNotifications: true,
		ResendAPIKey:             "test_key",
		FromEmail:                "from@example.com",
	}
	service = NewEmailService(cfg)

	ok, err = service.checkEmailPreconditions("operator@example.com", "daily summary")
	assert.True(t, ok, "Should return true when properly configured")
	assert.Nil(t, err)

	// Test case 3: Missing key
	service = NewEmailService(&config.Config{
		EnableEmailNotifications: true,
		FromEmail:                "from@example.com",
	})

	ok, err = service.checkEmailPreconditions("operator@example.com", "daily summary")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY is not set")

	// Test case 4: No recipient
	service = NewEmailService(cfg)

	ok, err = service.checkEmailPreconditions("  ", "daily summary")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Equal(t, "email address is empty", err.Error())
}

func TestEmailService_renderDailySummary(t *testing.T) {
	service := NewEmailService(&config.Config{})

	body, err := service.renderTemplate("daily_summary.html", map[string]any{
		"Date":        "5 Maret 2025",
		"TodayIncome": billing.FormatRupiah(250000),
		"Period":      "Maret 2025",
		"Count":       12,
		"Paid":        7,
		"Unpaid":      5,
		"Overdue":     2,
		"Outstanding": billing.FormatRupiah(500000),
	})
	require.NoError(t, err)
	assert.Contains(t, body, "5 Maret 2025")
	assert.Contains(t, body, "Rp 250.000")
	assert.Contains(t, body, "Rp 500.000")
}

func TestEmailService_SendDailySummaryDisabled(t *testing.T) {
	service := NewEmailService(&config.Config{EnableEmailNotifications: false})
	err := service.SendDailySummary(t.Context(), &DailySummary{DateLabel: "5 Maret 2025"})
	assert.NoError(t, err)
}
