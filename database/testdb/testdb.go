// Package testdb opens a throwaway PostgreSQL schema for store tests.
//
// Tests are skipped unless TEST_DB_DSN holds a keyword/value DSN, e.g.
// "host=localhost port=5432 user=travel password=travel dbname=travel_test sslmode=disable".
package testdb

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"travel-booking/database"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open creates (or recreates) schema, migrates it and returns a store bound to it.
// The schema is dropped when the test finishes.
func Open(t *testing.T, schema string, maxConns int) *database.Store {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("Skipping test: TEST_DB_DSN not set")
	}

	admin, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Skipf("Skipping test: cannot connect to PostgreSQL: %v", err)
	}
	adminSQL, err := admin.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	if err := adminSQL.Ping(); err != nil {
		adminSQL.Close()
		t.Skipf("Skipping test: cannot reach PostgreSQL: %v", err)
	}
	if err := admin.Exec(fmt.Sprintf(`DROP SCHEMA IF EXISTS %s CASCADE`, schema)).Error; err != nil {
		t.Fatalf("Failed to drop schema %s: %v", schema, err)
	}
	if err := admin.Exec(fmt.Sprintf(`CREATE SCHEMA %s`, schema)).Error; err != nil {
		t.Fatalf("Failed to create schema %s: %v", schema, err)
	}

	db, err := gorm.Open(postgres.Open(strings.TrimSpace(dsn)+" search_path="+schema), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("Failed to open test schema: %v", err)
	}
	store, err := database.NewStore(db, 2*time.Second)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(maxConns)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	t.Cleanup(func() {
		store.Close()
		admin.Exec(fmt.Sprintf(`DROP SCHEMA IF EXISTS %s CASCADE`, schema))
		adminSQL.Close()
	})
	return store
}

// Count returns the number of rows in table matching where.
func Count(t *testing.T, db *gorm.DB, table string, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("Count(%s) error = %v", table, err)
	}
	return n
}
