package main

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/tunestack")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.DBMaxOpenConns != 10 || cfg.DBMaxIdleConns != 5 {
		t.Fatalf("unexpected pool limits: open=%d idle=%d", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
	if cfg.DBConnMaxIdleTime != 5*time.Minute {
		t.Fatalf("unexpected conn max idle time: %v", cfg.DBConnMaxIdleTime)
	}
	if cfg.DBConnectTimeout != 30*time.Second {
		t.Fatalf("unexpected connect timeout: %v", cfg.DBConnectTimeout)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
}

func TestLoadConfigDatabaseOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/tunestack")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_MAX_IDLE_CONNS", "8")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "90s")
	t.Setenv("DB_CONNECT_TIMEOUT", "10s")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.DBMaxOpenConns != 25 || cfg.DBMaxIdleConns != 8 {
		t.Fatalf("unexpected pool limits: open=%d idle=%d", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
	if cfg.DBConnMaxIdleTime != 90*time.Second {
		t.Fatalf("unexpected conn max idle time: %v", cfg.DBConnMaxIdleTime)
	}
	if cfg.DBConnectTimeout != 10*time.Second {
		t.Fatalf("unexpected connect timeout: %v", cfg.DBConnectTimeout)
	}
}

func TestLoadConfigRejectsBadPoolSize(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/tunestack")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")

	if _, err := loadConfig(); err == nil {
		t.Fatalf("expected error but got nil")
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/tunestack")
	t.Setenv("JWT_SECRET", "")

	if _, err := loadConfig(); err == nil {
		t.Fatalf("expected error but got nil")
	}
}
