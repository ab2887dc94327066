package database

import (
	"database/sql"
	"fmt"
	"time"

	"travel-booking/config"
	"travel-booking/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store owns the connection pool. It is built once in main and closed at shutdown.
type Store struct {
	DB *gorm.DB

	// AcquireTimeout bounds how long a unit of work waits for a pooled connection.
	AcquireTimeout time.Duration

	sqlDB *sql.DB
}

// Open connects to PostgreSQL and configures the pool from cfg.
func Open(cfg *config.Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}

	store, err := NewStore(db, cfg.DBAcquireTimeout)
	if err != nil {
		return nil, err
	}
	store.sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	store.sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	store.sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	logger.Success(fmt.Sprintf("Successfully connected to the database (max %d connections)", cfg.DBMaxOpenConns))
	return store, nil
}

// NewStore wraps an already opened gorm handle.
func NewStore(db *gorm.DB, acquireTimeout time.Duration) (*Store, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return &Store{DB: db, AcquireTimeout: acquireTimeout, sqlDB: sqlDB}, nil
}

// Ping checks that the store is reachable.
func (s *Store) Ping() error {
	return s.sqlDB.Ping()
}

// Stats exposes pool counters.
func (s *Store) Stats() sql.DBStats {
	return s.sqlDB.Stats()
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	logger.Info("Closing database connection pool")
	return s.sqlDB.Close()
}
