package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Expected default environment development, got %s", cfg.Server.Environment)
	}
	if cfg.Database.Name != "task_tracker" {
		t.Errorf("Expected default database task_tracker, got %s", cfg.Database.Name)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Expected 25 max open conns, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Auth.BCryptCost != 10 {
		t.Errorf("Expected bcrypt cost 10, got %d", cfg.Auth.BCryptCost)
	}
	if cfg.Worker.CleanupInterval != 24*time.Hour {
		t.Errorf("Expected 24h cleanup interval, got %s", cfg.Worker.CleanupInterval)
	}
	if cfg.Worker.CompletedRetention != 30*24*time.Hour {
		t.Errorf("Expected 30d completed retention, got %s", cfg.Worker.CompletedRetention)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("Expected rate limiting enabled by default")
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "override_db")
	t.Setenv("WORKER_CLEANUP_INTERVAL", "1h")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.Name != "override_db" {
		t.Errorf("Expected database override_db, got %s", cfg.Database.Name)
	}
	if cfg.Worker.CleanupInterval != time.Hour {
		t.Errorf("Expected 1h cleanup interval, got %s", cfg.Worker.CleanupInterval)
	}
	if cfg.RateLimit.Enabled {
		t.Error("Expected rate limiting disabled")
	}
}

func TestLoadConfig_ProductionRequiresDBPassword(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_PASSWORD", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected an error for missing production database password")
	}

	t.Setenv("DB_PASSWORD", "secret")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error with a password set, got %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("Expected IsProduction to be true")
	}
}

func TestConfig_Addresses(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.GetServerAddr() != "localhost:8080" {
		t.Errorf("Unexpected server addr: %s", cfg.GetServerAddr())
	}
	if cfg.GetRedisAddr() != "localhost:6379" {
		t.Errorf("Unexpected redis addr: %s", cfg.GetRedisAddr())
	}
	dsn := cfg.GetDatabaseDSN()
	if dsn != "host=localhost port=5432 user=postgres password= dbname=task_tracker sslmode=disable" {
		t.Errorf("Unexpected DSN: %s", dsn)
	}
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("READ_TIMEOUT", "not-a-duration")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Expected fallback 25, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Expected fallback 30s, got %s", cfg.Server.ReadTimeout)
	}
}
