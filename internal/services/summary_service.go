package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/models"
)

// DailySummary is the operator's end-of-day overview
type DailySummary struct {
	Date        string        `json:"date"`
	DateLabel   string        `json:"date_label"`
	TodayIncome int64         `json:"today_income"`
	Period      string        `json:"period"`
	PeriodLabel string        `json:"period_label"`
	Stats       billing.Stats `json:"stats"`
	Stale       bool          `json:"stale"`
}

type SummaryService struct {
	roster   *RosterService
	payments *PaymentService
	email    *EmailService
	now      Clock
}

func NewSummaryService(roster *RosterService, payments *PaymentService, email *EmailService, now Clock) *SummaryService {
	return &SummaryService{roster: roster, payments: payments, email: email, now: now}
}

// Daily builds today's income and the current month's collection position
func (s *SummaryService) Daily(ctx context.Context) (*DailySummary, error) {
	now := s.now()
	sel := billing.NewSelection(now).WithFilter(billing.FilterAll)

	income, err := s.payments.TodayIncome(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total today's income: %w", err)
	}

	view, err := s.roster.Load(ctx, sel)
	if err != nil {
		return nil, err
	}

	return &DailySummary{
		Date:        now.Format(models.DateLayout),
		DateLabel:   billing.FormatLongDate(now),
		TodayIncome: income,
		Period:      sel.Period.String(),
		PeriodLabel: sel.Period.Label(),
		Stats:       view.Stats,
		Stale:       view.Stale,
	}, nil
}

// SendDaily builds the summary and mails it to the operator
func (s *SummaryService) SendDaily(ctx context.Context) error {
	summary, err := s.Daily(ctx)
	if err != nil {
		return err
	}
	return s.email.SendDailySummary(ctx, summary)
}
