package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const paymentPeriodConstraint = "payments_customer_period_key"

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	FindByPeriod(ctx context.Context, monthYear string) ([]models.Payment, error)
	FindByPaymentDate(ctx context.Context, date string) ([]models.Payment, error)
	FindByCustomerAndPeriod(ctx context.Context, customerID uuid.UUID, monthYear string) (*models.Payment, error)
	FindWithActiveProof(ctx context.Context) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Upsert(ctx context.Context, payment *models.Payment) error
	UpdateProofStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumByPaymentDate(ctx context.Context, date string) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByPeriod(ctx context.Context, monthYear string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("month_year = ?", monthYear).
		Order("payment_date ASC, created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) FindByPaymentDate(ctx context.Context, date string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("payment_date = ?", date).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) FindByCustomerAndPeriod(ctx context.Context, customerID uuid.UUID, monthYear string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND month_year = ?", customerID, monthYear).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindWithActiveProof lists payments whose proof has not been marked expired yet
func (r *paymentRepository) FindWithActiveProof(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("proof_status = ?", models.ProofStatusActive).
		Order("payment_date ASC").
		Find(&payments).Error
	return payments, err
}

// Create inserts a payment and fails with ErrDuplicatePeriod if the period is already recorded
func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(payment).Error; err != nil {
		if isDuplicateKeyError(err, paymentPeriodConstraint) {
			return ErrDuplicatePeriod
		}
		return err
	}
	return nil
}

// Upsert inserts the payment or replaces the one already recorded for the same
// customer and period, proof columns included. The stored row is read back into payment.
func (r *paymentRepository) Upsert(ctx context.Context, payment *models.Payment) error {
	columns := []string{"amount", "payment_date", "notes", "proof_path", "proof_status", "updated_at"}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "month_year"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(payment).Error
	if err != nil {
		return err
	}

	stored, err := r.FindByCustomerAndPeriod(ctx, payment.CustomerID, payment.MonthYear)
	if err != nil {
		return err
	}
	*payment = *stored
	return nil
}

func (r *paymentRepository) UpdateProofStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Update("proof_status", status).Error
}

// Delete removes a payment, returning gorm.ErrRecordNotFound when nothing matched
func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Payment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumByPaymentDate totals the amounts received on a date
func (r *paymentRepository) SumByPaymentDate(ctx context.Context, date string) (int64, error) {
	var result struct {
		Total int64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("payment_date = ?", date).
		Scan(&result).Error

	return result.Total, err
}
