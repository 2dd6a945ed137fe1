package billing

import (
	"fmt"
	"time"
)

// Period identifies a billing cycle by year and month.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// PeriodOf returns the period containing t, using t's own location.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses the "YYYY-MM" form used by the payments table.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: period %q must be YYYY-MM", ErrInvalidInput, s)
	}
	return PeriodOf(t), nil
}

// String formats the period as "YYYY-MM".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label is the human form, e.g. "Maret 2025".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", MonthName(p.Month), p.Year)
}

// IsZero reports whether p is the zero value.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// AddMonths moves the period by n months, crossing year boundaries.
func (p Period) AddMonths(n int) Period {
	t := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return PeriodOf(t)
}

// DaysIn returns the number of days in the period's month.
func (p Period) DaysIn() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DueDate returns the due date for dueDay within the period. Days past the end
// of the month are clamped to the last day, so a 31st due day lands on 30 April.
func (p Period) DueDate(dueDay int) time.Time {
	if last := p.DaysIn(); dueDay > last {
		dueDay = last
	}
	return time.Date(p.Year, p.Month, dueDay, 0, 0, 0, 0, time.UTC)
}

// dateOnly drops the time of day, keeping the calendar date as seen in t's location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}
