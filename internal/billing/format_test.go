package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{100000, "Rp 100.000"},
		{1500000, "Rp 1.500.000"},
		{-5000, "-Rp 5.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRupiah(tt.amount))
	}
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "5 Maret 2025", FormatLongDate(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 Desember 2024", FormatLongDate(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Agustus", MonthName(time.August))
}
