package handlers

import (
	"github.com/sjperalta/tagihwarga-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Customer *CustomerHandler
	Roster   *RosterHandler
	Payment  *PaymentHandler
	Reminder *ReminderHandler
	Summary  *SummaryHandler
	Job      *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(),
		Customer: NewCustomerHandler(svcs.Customer),
		Roster:   NewRosterHandler(svcs.Roster, svcs.Export, svcs.Clock),
		Payment:  NewPaymentHandler(svcs.Payment, svcs.Proof),
		Reminder: NewReminderHandler(svcs.Reminder, svcs.Clock),
		Summary:  NewSummaryHandler(svcs.Summary, svcs.Job),
		Job:      NewJobHandler(svcs.Job),
	}
}
