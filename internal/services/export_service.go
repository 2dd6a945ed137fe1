package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
	ExportPDF  = "pdf"
)

var exportContentTypes = map[string]string{
	ExportCSV:  "text/csv",
	ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	ExportPDF:  "application/pdf",
}

var exportHeader = []string{"Nama", "Desa", "Kode", "Jatuh Tempo", "Tagihan", "Dibayar", "Sisa", "Status", "Telat (hari)"}

type ExportService struct {
	now Clock
}

func NewExportService(now Clock) *ExportService {
	return &ExportService{now: now}
}

// Export renders a roster view in the requested format and returns the file bytes, its name and content type
func (s *ExportService) Export(ctx context.Context, view *RosterView, format string) ([]byte, string, string, error) {
	if view == nil {
		return nil, "", "", fmt.Errorf("%w: data roster kosong", ErrInvalidInput)
	}

	var (
		data     []byte
		filename string
		err      error
	)
	switch format {
	case ExportCSV, "":
		format = ExportCSV
		data, filename, err = s.ExportCSV(ctx, view)
	case ExportXLSX:
		data, filename, err = s.ExportXLSX(ctx, view)
	case ExportPDF:
		data, filename, err = s.ExportPDF(ctx, view)
	default:
		return nil, "", "", fmt.Errorf("%w: format ekspor %q tidak didukung", ErrInvalidInput, format)
	}
	if err != nil {
		return nil, "", "", err
	}
	return data, filename, exportContentTypes[format], nil
}

func (s *ExportService) ExportCSV(ctx context.Context, view *RosterView) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Tagihan WiFi " + view.Selection.Period.Label(), s.now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write(exportHeader)
	for _, item := range view.Items {
		_ = writer.Write(exportRow(item))
	}
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Total Sisa", strconv.Itoa(view.Stats.Outstanding)})

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), s.filename(view, ExportCSV), nil
}

func (s *ExportService) ExportXLSX(ctx context.Context, view *RosterView) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Tagihan"
	_ = f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Tagihan WiFi "+view.Selection.Period.Label())
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	for i, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, title)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeader), 3)
	_ = f.SetCellStyle(sheet, "A3", lastHeader, headerStyle)

	row := 4
	for _, item := range view.Items {
		values := []interface{}{
			item.Name,
			item.Village,
			item.CustomerCode,
			item.DueDay,
			item.Bill,
			item.Paid,
			item.Remaining,
			item.Status.Label(),
			item.Status.LateDays,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total Sisa")
	_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), view.Stats.Outstanding)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buf.Bytes(), s.filename(view, ExportXLSX), nil
}

func (s *ExportService) ExportPDF(ctx context.Context, view *RosterView) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Tagihan WiFi "+view.Selection.Period.Label())
	pdf.Ln(12)

	widths := []float64{55, 35, 25, 22, 28, 28, 28, 25, 22}
	pdf.SetFont("Arial", "B", 9)
	for i, title := range exportHeader {
		pdf.CellFormat(widths[i], 7, title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, item := range view.Items {
		for i, value := range exportRow(item) {
			align := "L"
			if i >= 3 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, value, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(60, 8, "Total Sisa:")
	pdf.Cell(40, 8, billing.FormatRupiah(view.Stats.Outstanding))

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), s.filename(view, ExportPDF), nil
}

func (s *ExportService) filename(view *RosterView, ext string) string {
	return fmt.Sprintf("tagihan_%s_%s.%s", view.Selection.Period.String(), s.now().Format(models.DateLayout), ext)
}

func exportRow(item billing.EnrichedSubscriber) []string {
	return []string{
		item.Name,
		item.Village,
		item.CustomerCode,
		strconv.Itoa(item.DueDay),
		strconv.Itoa(item.Bill),
		strconv.Itoa(item.Paid),
		strconv.Itoa(item.Remaining),
		item.Status.Label(),
		strconv.Itoa(item.Status.LateDays),
	}
}
