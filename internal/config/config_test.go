package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tagihwarga")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 100000, cfg.DefaultBillAmount)
	assert.Equal(t, 40, cfg.ProofExpiryDays)
	assert.Equal(t, "payment-proofs", cfg.GCSBucket)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, "dev-secret-change-in-production", cfg.ProofTokenSecret)
	assert.Equal(t, 20, cfg.DailySummaryHour)
	assert.Equal(t, "Asia/Jakarta", cfg.Location().String())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tagihwarga")
	t.Setenv("DEFAULT_BILL_AMOUNT", "150000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ENABLE_EMAIL_NOTIFICATIONS", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://api.example/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 150000, cfg.DefaultBillAmount)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.EnableEmailNotifications)
	assert.Equal(t, "https://api.example", cfg.PublicBaseURL)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing database", map[string]string{"DATABASE_URL": ""}, "DATABASE_URL"},
		{"unknown storage", map[string]string{"STORAGE_DRIVER": "s3"}, "STORAGE_DRIVER"},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Base"}, "TIMEZONE"},
		{"summary hour", map[string]string{"DAILY_SUMMARY_HOUR": "24"}, "DAILY_SUMMARY_HOUR"},
		{"zero expiry", map[string]string{"PROOF_EXPIRY_DAYS": "0"}, "PROOF_EXPIRY_DAYS"},
		{"production secret", map[string]string{"ENVIRONMENT": "production", "PROOF_TOKEN_SECRET": ""}, "PROOF_TOKEN_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/tagihwarga")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
