package billing

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return monthNames[m-1]
}

// FormatRupiah renders an amount as Indonesian currency text, e.g. "Rp 100.000".
func FormatRupiah(amount int) string {
	p := message.NewPrinter(language.Indonesian)
	if amount < 0 {
		return p.Sprintf("-Rp %d", -amount)
	}
	return p.Sprintf("Rp %d", amount)
}

// FormatLongDate renders t as "5 Maret 2025".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), MonthName(t.Month()), t.Year())
}
