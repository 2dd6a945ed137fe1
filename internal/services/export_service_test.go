package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleView(t *testing.T) *RosterView {
	t.Helper()
	now := time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC)
	period := billing.PeriodOf(now)

	subs := []billing.Subscriber{
		{ID: "a", Name: "Sari", Village: "Mekarsari", DueDay: 5, CustomerCode: "MK-01"},
		{ID: "b", Name: "Andi", Village: "Sukamaju", DueDay: 20},
	}
	payments := []billing.Payment{{ID: "p1", SubscriberID: "b", Amount: 60000, Period: period, PaymentDate: now}}
	items, err := billing.Reconcile(subs, payments, period, now, billing.DefaultBillAmount)
	require.NoError(t, err)

	sel := billing.NewSelection(now).WithFilter(billing.FilterAll)
	return &RosterView{Selection: sel, PresentationResult: billing.Present(items, sel.Query())}
}

func TestExportService_CSV(t *testing.T) {
	svc := NewExportService(fixedClock(time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC)))

	data, filename, contentType, err := svc.Export(context.Background(), sampleView(t), ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "tagihan_2025-03_2025-03-12.csv", filename)
	assert.Equal(t, "text/csv", contentType)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, "Tagihan WiFi Maret 2025", records[0][0])
	header := -1
	for i, rec := range records {
		if len(rec) == len(exportHeader) && rec[0] == exportHeader[0] {
			header = i
			break
		}
	}
	require.GreaterOrEqual(t, header, 0)
	assert.Equal(t, []string{"Andi", "Sukamaju", "", "20", "100000", "60000", "40000", "partial", "0"}, records[header+1])
	assert.Equal(t, []string{"Sari", "Mekarsari", "MK-01", "5", "100000", "0", "100000", "overdue", "7"}, records[header+2])
	assert.Equal(t, []string{"Total Sisa", "140000"}, records[len(records)-1])
}

func TestExportService_XLSX(t *testing.T) {
	svc := NewExportService(fixedClock(time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC)))

	data, filename, _, err := svc.Export(context.Background(), sampleView(t), ExportXLSX)
	require.NoError(t, err)
	assert.Equal(t, "tagihan_2025-03_2025-03-12.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Tagihan", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Andi", name)
	remaining, err := f.GetCellValue("Tagihan", "G5")
	require.NoError(t, err)
	assert.Equal(t, "100000", remaining)
}

func TestExportService_PDF(t *testing.T) {
	svc := NewExportService(fixedClock(time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC)))

	data, filename, contentType, err := svc.Export(context.Background(), sampleView(t), ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "tagihan_2025-03_2025-03-12.pdf", filename)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportService_UnknownFormat(t *testing.T) {
	svc := NewExportService(fixedClock(time.Now()))

	_, _, _, err := svc.Export(context.Background(), sampleView(t), "docx")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, _, err = svc.Export(context.Background(), nil, ExportCSV)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
