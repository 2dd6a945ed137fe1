package billing

import (
	"fmt"
	"time"
)

// Status is the derived payment position of one subscriber for one period.
// Exactly one of FullyPaid, PartiallyPaid and Unpaid is true.
type Status struct {
	FullyPaid     bool      `json:"fully_paid"`
	PartiallyPaid bool      `json:"partially_paid"`
	Unpaid        bool      `json:"unpaid"`
	Overdue       bool      `json:"overdue"`
	LateDays      int       `json:"late_days"`
	DueDate       time.Time `json:"due_date"`
}

// Label is a short machine-friendly name for the status.
func (s Status) Label() string {
	switch {
	case s.FullyPaid:
		return "paid"
	case s.Overdue:
		return "overdue"
	case s.PartiallyPaid:
		return "partial"
	}
	return "unpaid"
}

// DeriveStatus computes the payment status for a bill and the amount paid against it.
// today is compared with the period's due date at day granularity.
func DeriveStatus(bill, paid, dueDay int, period Period, today time.Time) (Status, error) {
	if dueDay < 1 || dueDay > 31 {
		return Status{}, fmt.Errorf("%w: due day %d outside 1-31", ErrInvalidInput, dueDay)
	}
	if bill <= 0 || paid < 0 {
		return Status{}, fmt.Errorf("%w: bill %d, paid %d", ErrInvalidInput, bill, paid)
	}

	st := Status{DueDate: period.DueDate(dueDay)}
	switch {
	case paid >= bill:
		st.FullyPaid = true
	case paid > 0:
		st.PartiallyPaid = true
	default:
		st.Unpaid = true
	}

	if !st.FullyPaid {
		if late := daysBetween(st.DueDate, today); late > 0 {
			st.Overdue = true
			st.LateDays = late
		}
	}
	return st, nil
}
