package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"gorm.io/gorm"
)

// DateLayout is the storage format of payment_date
const DateLayout = "2006-01-02"

// Payment records one customer's payment for one billing period.
// (customer_id, month_year) is unique.
type Payment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:payments_customer_period_key,priority:1" json:"customer_id"`
	Amount      int       `gorm:"not null" json:"amount"`
	MonthYear   string    `gorm:"size:7;not null;index;uniqueIndex:payments_customer_period_key,priority:2" json:"month_year"`
	PaymentDate string    `gorm:"size:10;not null;index" json:"payment_date"`
	ProofPath   *string   `json:"proof_path"`
	ProofStatus string    `gorm:"size:16;not null;default:none;index" json:"proof_status"`
	Notes       *string   `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// Proof status constants
const (
	ProofStatusNone    = "none"
	ProofStatusActive  = "active"
	ProofStatusExpired = "expired"
)

// BeforeCreate assigns an id and a proof status when missing
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ProofStatus == "" {
		p.ProofStatus = ProofStatusNone
	}
	return nil
}

// HasProof returns true if a proof image was uploaded
func (p *Payment) HasProof() bool {
	return p.ProofPath != nil && *p.ProofPath != ""
}

// PaidOn parses the payment date
func (p *Payment) PaidOn() (time.Time, error) {
	t, err := time.Parse(DateLayout, p.PaymentDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("payment %s has invalid payment_date %q: %w", p.ID, p.PaymentDate, err)
	}
	return t, nil
}

// ToBillingPayment converts the record to its billing view
func (p *Payment) ToBillingPayment() (billing.Payment, error) {
	period, err := billing.ParsePeriod(p.MonthYear)
	if err != nil {
		return billing.Payment{}, err
	}
	paidOn, err := p.PaidOn()
	if err != nil {
		return billing.Payment{}, err
	}
	return billing.Payment{
		ID:           p.ID.String(),
		SubscriberID: p.CustomerID.String(),
		Amount:       p.Amount,
		Period:       period,
		PaymentDate:  paidOn,
		ProofPath:    getString(p.ProofPath),
		Notes:        getString(p.Notes),
	}, nil
}

// ToBillingPayments converts a slice of payments
func ToBillingPayments(payments []Payment) ([]billing.Payment, error) {
	out := make([]billing.Payment, 0, len(payments))
	for i := range payments {
		bp, err := payments[i].ToBillingPayment()
		if err != nil {
			return nil, err
		}
		out = append(out, bp)
	}
	return out, nil
}
