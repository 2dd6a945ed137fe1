package billing

import (
	"fmt"
	"net/url"
	"strings"
)

// ComposeReminder builds the WhatsApp reminder text for one reconciled subscriber.
func ComposeReminder(e EnrichedSubscriber, period Period) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Halo %s, tagihan WiFi bulan %s ", e.Name, period.Label())

	if e.Status.FullyPaid {
		b.WriteString("sudah LUNAS. Terima kasih.")
		return b.String()
	}

	fmt.Fprintf(&b, "masih ada tagihan %s, jatuh tempo tanggal %s. ",
		FormatRupiah(e.Remaining), FormatLongDate(e.Status.DueDate))
	if e.Status.Overdue {
		fmt.Fprintf(&b, "*MOHON MAAF, SUDAH TELAT %d HARI DARI TANGGAL JATUH TEMPO.* Mohon segera dibayar hari ini.", e.Status.LateDays)
	} else {
		b.WriteString("Mohon dicek kembali. Terima kasih.")
	}
	return b.String()
}

// NormalizePhone keeps only digits and rewrites a local "0" prefix to the 62 country code.
func NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if strings.HasPrefix(digits, "0") {
		digits = "62" + digits[1:]
	}
	return digits
}

// WhatsAppLink returns a wa.me deep link that opens a chat with message prefilled.
func WhatsAppLink(phone, message string) (string, error) {
	digits := NormalizePhone(phone)
	if digits == "" {
		return "", ErrNoPhone
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text, nil
}
