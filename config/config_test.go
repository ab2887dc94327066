package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_HOST", "APP_PORT", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "TX_MAX_RETRIES", "DB_ACQUIRE_TIMEOUT", "DB_CONN_MAX_LIFETIME", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.ListenAddr() != "0.0.0.0:8080" {
		t.Errorf("ListenAddr() = %q", cfg.ListenAddr())
	}
	if cfg.DBMaxOpenConns != 20 || cfg.DBMaxIdleConns != 5 {
		t.Errorf("pool = %d/%d, want 20/5", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
	if cfg.TxMaxRetries != 3 {
		t.Errorf("TxMaxRetries = %d, want 3", cfg.TxMaxRetries)
	}
	if cfg.DBAcquireTimeout != 5*time.Second {
		t.Errorf("DBAcquireTimeout = %v", cfg.DBAcquireTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("DB_MAX_IDLE_CONNS", "10")
	t.Setenv("DB_ACQUIRE_TIMEOUT", "250ms")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_DATABASE", "travel")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USERNAME", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_SSLMODE", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.DBMaxIdleConns != 4 {
		t.Errorf("idle conns should be capped to max open, got %d", cfg.DBMaxIdleConns)
	}
	if cfg.DBAcquireTimeout != 250*time.Millisecond {
		t.Errorf("DBAcquireTimeout = %v", cfg.DBAcquireTimeout)
	}
	want := "host=db port=5432 user= password= dbname=travel sslmode=disable"
	if cfg.DSN() != want {
		t.Errorf("DSN() = %q, want %q", cfg.DSN(), want)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"DB_MAX_OPEN_CONNS":  "zero",
		"TX_MAX_RETRIES":     "-1",
		"DB_ACQUIRE_TIMEOUT": "soon",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := FromEnv(); err == nil {
				t.Errorf("expected error for %s=%s", key, val)
			}
		})
	}
}
