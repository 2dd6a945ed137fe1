package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sjperalta/tagihwarga-api/internal/config"
	pkgLogger "github.com/sjperalta/tagihwarga-api/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	slowQueryThreshold = 200 * time.Millisecond
	pingTimeout        = 5 * time.Second
)

// Connect opens the PostgreSQL database holding customers and payments
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// one operator at a time; a handful of connections covers requests plus the sweep job
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// gormConfig builds the gorm settings for cfg. created_at and updated_at are stamped in
// the billing timezone so they line up with payment_date.
func gormConfig(cfg *config.Config) *gorm.Config {
	logLevel := logger.Warn
	if cfg.Environment == "development" {
		logLevel = logger.Info
	}
	loc := cfg.Location()

	return &gorm.Config{
		Logger:                 pkgLogger.NewGormLogger(logLevel, slowQueryThreshold),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		NowFunc: func() time.Time {
			return time.Now().In(loc)
		},
	}
}
