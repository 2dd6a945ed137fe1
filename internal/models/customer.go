package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"gorm.io/gorm"
)

// Customer is a billed household on the WiFi network
type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Village      string    `gorm:"not null;index" json:"village"`
	Address      *string   `json:"address"`
	Phone        *string   `json:"phone"`
	DueDate      int       `gorm:"not null;index" json:"due_date"`
	BillAmount   *int      `json:"bill_amount"`
	CustomerCode *string   `gorm:"index" json:"customer_code"`
	Package      *string   `json:"package"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate assigns an id when the caller did not
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ToSubscriber converts the record to its billing view
func (c *Customer) ToSubscriber() billing.Subscriber {
	s := billing.Subscriber{
		ID:           c.ID.String(),
		Name:         c.Name,
		Village:      c.Village,
		Address:      getString(c.Address),
		Phone:        getString(c.Phone),
		DueDay:       c.DueDate,
		CustomerCode: getString(c.CustomerCode),
		Package:      getString(c.Package),
	}
	if c.BillAmount != nil {
		s.BillAmount = *c.BillAmount
	}
	return s
}

// ToSubscribers converts a slice of customers
func ToSubscribers(customers []Customer) []billing.Subscriber {
	out := make([]billing.Subscriber, len(customers))
	for i := range customers {
		out[i] = customers[i].ToSubscriber()
	}
	return out
}

func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
