package billing

import (
	"fmt"
	"time"
)

// DefaultBillAmount applies to subscribers whose bill is not set.
const DefaultBillAmount = 100000

// Subscriber is the billing view of a customer record.
type Subscriber struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Village      string `json:"village"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	DueDay       int    `json:"due_date"`
	BillAmount   int    `json:"bill_amount,omitempty"`
	CustomerCode string `json:"customer_code,omitempty"`
	Package      string `json:"package,omitempty"`
}

// Payment is the billing view of one recorded payment.
type Payment struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"customer_id"`
	Amount       int       `json:"amount"`
	Period       Period    `json:"period"`
	PaymentDate  time.Time `json:"payment_date"`
	ProofPath    string    `json:"proof_path,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// EnrichedSubscriber joins a subscriber with its payment for the viewed period.
type EnrichedSubscriber struct {
	Subscriber
	Bill      int      `json:"bill"`
	Paid      int      `json:"paid"`
	Remaining int      `json:"remaining"`
	Status    Status   `json:"status"`
	Payment   *Payment `json:"payment,omitempty"`
}

// Reconcile joins subscribers with the payments of one period. Payments must already be
// limited to that period. The output keeps the order of subs.
func Reconcile(subs []Subscriber, payments []Payment, period Period, today time.Time, defaultBill int) ([]EnrichedSubscriber, error) {
	if defaultBill <= 0 {
		defaultBill = DefaultBillAmount
	}

	bySubscriber := make(map[string][]int, len(payments))
	for i, p := range payments {
		bySubscriber[p.SubscriberID] = append(bySubscriber[p.SubscriberID], i)
	}

	out := make([]EnrichedSubscriber, 0, len(subs))
	for _, s := range subs {
		matches := bySubscriber[s.ID]
		if len(matches) > 1 {
			return nil, fmt.Errorf("%w: subscriber %s has %d payments in %s", ErrDuplicatePayment, s.ID, len(matches), period)
		}

		e := EnrichedSubscriber{Subscriber: s, Bill: s.BillAmount}
		if e.Bill <= 0 {
			e.Bill = defaultBill
		}
		if len(matches) == 1 {
			p := payments[matches[0]]
			e.Payment = &p
			e.Paid = p.Amount
		}

		st, err := DeriveStatus(e.Bill, e.Paid, s.DueDay, period, today)
		if err != nil {
			return nil, fmt.Errorf("subscriber %s: %w", s.ID, err)
		}
		e.Status = st
		if e.Paid < e.Bill {
			e.Remaining = e.Bill - e.Paid
		}
		out = append(out, e)
	}
	return out, nil
}
