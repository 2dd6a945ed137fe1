package database

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	"gorm.io/gorm"
)

// Migrate brings the schema up to date. Migrations are append-only.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_customers",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Customer{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("customers")
			},
		},
		{
			ID: "20250301_create_payments",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Payment{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("payments")
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
