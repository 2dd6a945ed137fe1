package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mock_repository . CustomerRepository,PaymentRepository

// ErrDuplicatePeriod is returned when a payment already exists for the customer and period
var ErrDuplicatePeriod = errors.New("payment already recorded for this period")

// Repositories holds all repository instances
type Repositories struct {
	Customer CustomerRepository
	Payment  PaymentRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer: NewCustomerRepository(db),
		Payment:  NewPaymentRepository(db),
	}
}

func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
	}
	// sqlite and gorm's translated error carry no constraint name
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
