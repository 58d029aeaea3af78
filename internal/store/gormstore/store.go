// Package gormstore implements store.Store on Postgres via GORM.
package gormstore

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sentreats/sentreats-server/internal/config"
	"github.com/sentreats/sentreats-server/internal/models"
)

type Store struct {
	db *gorm.DB
}

// Open connects to Postgres, configures the pool and migrates the schema.
func Open(cfg *config.Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Eatery{},
		&models.Review{},
		&models.SystemLog{},
	); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database connected", "name", cfg.DBName)
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for the system-log slog handler.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// byOwner filters a query to one owner; ownerID 0 leaves it unfiltered.
func byOwner(ownerID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if ownerID == 0 {
			return db
		}
		return db.Where("user_id = ?", ownerID)
	}
}
