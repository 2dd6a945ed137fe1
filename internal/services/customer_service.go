package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/cache"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	"github.com/sjperalta/tagihwarga-api/internal/repository"
	"github.com/sjperalta/tagihwarga-api/pkg/logger"
	"gorm.io/gorm"
)

// CreateCustomerInput holds the fields of a new customer
type CreateCustomerInput struct {
	Name         string
	Village      string
	Address      string
	Phone        string
	DueDate      int
	BillAmount   int
	CustomerCode string
	Package      string
}

type CustomerService struct {
	repo      repository.CustomerRepository
	snapshots cache.SnapshotCache
}

func NewCustomerService(repo repository.CustomerRepository, snapshots cache.SnapshotCache) *CustomerService {
	return &CustomerService{repo: repo, snapshots: snapshots}
}

// Create validates and stores a new customer. A zero bill amount leaves the default in effect.
func (s *CustomerService) Create(ctx context.Context, in CreateCustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(in.Name)
	village := strings.TrimSpace(in.Village)
	if name == "" {
		return nil, fmt.Errorf("%w: nama pelanggan wajib diisi", ErrInvalidInput)
	}
	if village == "" {
		return nil, fmt.Errorf("%w: nama desa wajib diisi", ErrInvalidInput)
	}
	if in.DueDate < 1 || in.DueDate > 31 {
		return nil, fmt.Errorf("%w: tanggal jatuh tempo harus 1-31", ErrInvalidInput)
	}
	if in.BillAmount < 0 {
		return nil, fmt.Errorf("%w: nominal tagihan tidak boleh negatif", ErrInvalidInput)
	}

	customer := &models.Customer{
		Name:         name,
		Village:      village,
		DueDate:      in.DueDate,
		Address:      optional(in.Address),
		CustomerCode: optional(in.CustomerCode),
		Package:      optional(in.Package),
	}
	if phone := billing.NormalizePhone(in.Phone); phone != "" {
		customer.Phone = &phone
	}
	if in.BillAmount > 0 {
		bill := in.BillAmount
		customer.BillAmount = &bill
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.invalidate(ctx, customer)
	logger.Info("Customer created", "customer_id", customer.ID, "village", customer.Village, "due_date", customer.DueDate)
	return customer, nil
}

// Get returns one customer
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return customer, err
}

// List returns the customers in a scope
func (s *CustomerService) List(ctx context.Context, scope billing.Scope) ([]models.Customer, error) {
	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: cakupan tidak valid", ErrInvalidInput)
	}
	switch scope.Mode {
	case billing.ScopeDueDate:
		return s.repo.FindByDueDate(ctx, scope.DueDay)
	case billing.ScopeVillage:
		return s.repo.FindByVillage(ctx, scope.Village)
	}
	return s.repo.FindAll(ctx)
}

// DueDates lists the due days in use, ascending
func (s *CustomerService) DueDates(ctx context.Context) ([]int, error) {
	return s.repo.DistinctDueDates(ctx)
}

// Villages lists the villages in use, ascending
func (s *CustomerService) Villages(ctx context.Context) ([]string, error) {
	return s.repo.DistinctVillages(ctx)
}

func (s *CustomerService) invalidate(ctx context.Context, c *models.Customer) {
	keys := []string{
		cache.CustomersKey(billing.Scope{Mode: billing.ScopeAll}.Key()),
		cache.CustomersKey(billing.Scope{Mode: billing.ScopeDueDate, DueDay: c.DueDate}.Key()),
		cache.CustomersKey(billing.Scope{Mode: billing.ScopeVillage, Village: c.Village}.Key()),
	}
	if err := s.snapshots.Delete(ctx, keys...); err != nil {
		logger.Warn("Failed to invalidate customer snapshots", "error", err)
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
