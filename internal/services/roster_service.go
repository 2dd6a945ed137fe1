package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/cache"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	"github.com/sjperalta/tagihwarga-api/internal/repository"
	"github.com/sjperalta/tagihwarga-api/pkg/logger"
)

// RosterView is one rendered roster: the selection it was built for and the presentation
type RosterView struct {
	Selection billing.Selection `json:"selection"`
	billing.PresentationResult
	// Stale is true when some data came from the snapshot cache
	Stale bool `json:"stale"`
}

type RosterService struct {
	customers   repository.CustomerRepository
	payments    repository.PaymentRepository
	snapshots   cache.SnapshotCache
	defaultBill int
	now         Clock
}

func NewRosterService(
	customers repository.CustomerRepository,
	payments repository.PaymentRepository,
	snapshots cache.SnapshotCache,
	defaultBill int,
	now Clock,
) *RosterService {
	return &RosterService{
		customers:   customers,
		payments:    payments,
		snapshots:   snapshots,
		defaultBill: defaultBill,
		now:         now,
	}
}

// Load reconciles and presents the roster for a selection
func (s *RosterService) Load(ctx context.Context, sel billing.Selection) (*RosterView, error) {
	items, stale, err := s.Reconciled(ctx, sel)
	if err != nil {
		return nil, err
	}

	return &RosterView{
		Selection:          sel,
		PresentationResult: billing.Present(items, sel.Query()),
		Stale:              stale,
	}, nil
}

// Reconciled joins the customers in the selection's scope with the payments of its period
func (s *RosterService) Reconciled(ctx context.Context, sel billing.Selection) ([]billing.EnrichedSubscriber, bool, error) {
	if err := sel.Scope.Validate(); err != nil {
		return nil, false, fmt.Errorf("%w: cakupan tampilan tidak valid", ErrInvalidInput)
	}
	if sel.Period.IsZero() {
		return nil, false, fmt.Errorf("%w: periode wajib diisi", ErrInvalidInput)
	}

	customers, customersStale, err := s.loadCustomers(ctx, sel.Scope)
	if err != nil {
		return nil, false, err
	}
	payments, paymentsStale, err := s.loadPayments(ctx, sel.Period)
	if err != nil {
		return nil, false, err
	}

	billingPayments, err := models.ToBillingPayments(payments)
	if err != nil {
		return nil, false, err
	}

	items, err := billing.Reconcile(models.ToSubscribers(customers), billingPayments, sel.Period, s.now(), s.defaultBill)
	if err != nil {
		logger.Error("Roster reconciliation failed", "period", sel.Period.String(), "error", err)
		return nil, false, err
	}
	return items, customersStale || paymentsStale, nil
}

func (s *RosterService) fetchCustomers(ctx context.Context, scope billing.Scope) ([]models.Customer, error) {
	switch scope.Mode {
	case billing.ScopeDueDate:
		return s.customers.FindByDueDate(ctx, scope.DueDay)
	case billing.ScopeVillage:
		return s.customers.FindByVillage(ctx, scope.Village)
	}
	return s.customers.FindAll(ctx)
}

func (s *RosterService) loadCustomers(ctx context.Context, scope billing.Scope) ([]models.Customer, bool, error) {
	key := cache.CustomersKey(scope.Key())

	customers, err := s.fetchCustomers(ctx, scope)
	if err == nil {
		if cerr := s.snapshots.Set(ctx, key, customers); cerr != nil {
			logger.Warn("Failed to refresh customer snapshot", "key", key, "error", cerr)
		}
		return customers, false, nil
	}

	logger.Warn("Customer fetch failed, falling back to snapshot", "key", key, "error", err)
	var cached []models.Customer
	if found, cerr := s.snapshots.Get(ctx, key, &cached); cerr == nil && found {
		return cached, true, nil
	}
	return nil, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (s *RosterService) loadPayments(ctx context.Context, period billing.Period) ([]models.Payment, bool, error) {
	key := cache.PaymentsKey(period.String())

	payments, err := s.payments.FindByPeriod(ctx, period.String())
	if err == nil {
		if cerr := s.snapshots.Set(ctx, key, payments); cerr != nil {
			logger.Warn("Failed to refresh payment snapshot", "key", key, "error", cerr)
		}
		return payments, false, nil
	}

	logger.Warn("Payment fetch failed, falling back to snapshot", "key", key, "error", err)
	var cached []models.Payment
	if found, cerr := s.snapshots.Get(ctx, key, &cached); cerr == nil && found {
		return cached, true, nil
	}
	return nil, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
}
