package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	"gorm.io/gorm"
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]models.Customer, error)
	FindByDueDate(ctx context.Context, dueDate int) ([]models.Customer, error)
	FindByVillage(ctx context.Context, village string) ([]models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	DistinctDueDates(ctx context.Context) ([]int, error)
	DistinctVillages(ctx context.Context) ([]string, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindAll(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Order("village ASC, name ASC").
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) FindByDueDate(ctx context.Context, dueDate int) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("due_date = ?", dueDate).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

// FindByVillage matches the village name case-insensitively
func (r *customerRepository) FindByVillage(ctx context.Context, village string) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(village) = LOWER(?)", village).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// DistinctDueDates returns every due day in use, ascending
func (r *customerRepository) DistinctDueDates(ctx context.Context) ([]int, error) {
	var days []int
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Distinct("due_date").
		Order("due_date ASC").
		Pluck("due_date", &days).Error
	return days, err
}

// DistinctVillages returns every village in use, ascending
func (r *customerRepository) DistinctVillages(ctx context.Context) ([]string, error) {
	var villages []string
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Distinct("village").
		Order("village ASC").
		Pluck("village", &villages).Error
	return villages, err
}
