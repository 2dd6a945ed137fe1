package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/repository"
	"gorm.io/gorm"
)

// Reminder is a composed WhatsApp reminder for one customer
type Reminder struct {
	CustomerID string         `json:"customer_id"`
	Name       string         `json:"name"`
	Period     string         `json:"period"`
	Status     billing.Status `json:"status"`
	Remaining  int            `json:"remaining"`
	Message    string         `json:"message"`
	// Link is empty when the customer has no phone number
	Link string `json:"link,omitempty"`
}

type ReminderService struct {
	customers   repository.CustomerRepository
	payments    repository.PaymentRepository
	defaultBill int
	now         Clock
}

func NewReminderService(customers repository.CustomerRepository, payments repository.PaymentRepository, defaultBill int, now Clock) *ReminderService {
	return &ReminderService{customers: customers, payments: payments, defaultBill: defaultBill, now: now}
}

// Compose builds the reminder for a customer's bill in a period
func (s *ReminderService) Compose(ctx context.Context, customerID uuid.UUID, period billing.Period) (*Reminder, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var payments []billing.Payment
	payment, err := s.payments.FindByCustomerAndPeriod(ctx, customerID, period.String())
	switch {
	case err == nil:
		bp, err := payment.ToBillingPayment()
		if err != nil {
			return nil, err
		}
		payments = append(payments, bp)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	items, err := billing.Reconcile([]billing.Subscriber{customer.ToSubscriber()}, payments, period, s.now(), s.defaultBill)
	if err != nil {
		return nil, err
	}
	return ReminderFor(items[0], period), nil
}

// ReminderFor composes the reminder of an already reconciled subscriber
func ReminderFor(e billing.EnrichedSubscriber, period billing.Period) *Reminder {
	r := &Reminder{
		CustomerID: e.ID,
		Name:       e.Name,
		Period:     period.String(),
		Status:     e.Status,
		Remaining:  e.Remaining,
		Message:    billing.ComposeReminder(e, period),
	}
	if link, err := billing.WhatsAppLink(e.Phone, r.Message); err == nil {
		r.Link = link
	}
	return r
}
