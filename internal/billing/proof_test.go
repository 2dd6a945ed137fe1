package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateProof(t *testing.T) {
	paid := day(2025, 3, 1)

	tests := []struct {
		name          string
		now           time.Time
		expiryDays    int
		wantExpired   bool
		wantRemaining int
	}{
		{"same day", paid, 40, false, 40},
		{"later the same day", paid.Add(20 * time.Hour), 40, false, 40},
		{"ten days in", paid.AddDate(0, 0, 10), 40, false, 30},
		{"day forty is still valid", paid.AddDate(0, 0, 40), 40, false, 0},
		{"day forty one has expired", paid.AddDate(0, 0, 41), 40, true, 0},
		{"long expired", paid.AddDate(1, 0, 0), 40, true, 0},
		{"payment date in the future", paid.AddDate(0, 0, -3), 40, false, 40},
		{"zero expiry falls back to default", paid.AddDate(0, 0, 40), 0, false, 0},
		{"custom expiry", paid.AddDate(0, 0, 8), 7, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := EvaluateProof(paid, tt.now, tt.expiryDays)
			assert.Equal(t, tt.wantExpired, st.Expired)
			assert.Equal(t, tt.wantRemaining, st.DaysRemaining)
		})
	}
}

func TestEvaluateProof_BoundaryForAnyDate(t *testing.T) {
	start := day(2024, 1, 1)
	for i := 0; i < 400; i += 17 {
		paid := start.AddDate(0, 0, i)
		assert.False(t, EvaluateProof(paid, paid.AddDate(0, 0, 40), 40).Expired, paid)
		assert.True(t, EvaluateProof(paid, paid.AddDate(0, 0, 41), 40).Expired, paid)
	}
}

func TestEvaluateProof_ExpiresOn(t *testing.T) {
	st := EvaluateProof(time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC), day(2025, 3, 2), 40)
	assert.Equal(t, day(2025, 4, 10), st.ExpiresOn)
}
