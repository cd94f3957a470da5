package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

func TestLoadRequiresMySQLDSN(t *testing.T) {
	unsetEnv(t, "DATABASE_DRIVER")
	unsetEnv(t, "MYSQL_DSN")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing MYSQL_DSN")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setEnv(t, "DATABASE_DRIVER", "oracle")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLoadSQLiteDoesNotNeedDSN(t *testing.T) {
	setEnv(t, "DATABASE_DRIVER", "SQLite")
	unsetEnv(t, "MYSQL_DSN")
	setEnv(t, "SQLITE_PATH", "/tmp/subs.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.SQLitePath != "/tmp/subs.db" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	unsetEnv(t, "DATABASE_DRIVER")
	unsetEnv(t, "AMQP_URL")
	unsetEnv(t, "AMQP_EXCHANGE")
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/subscriptions")
	setEnv(t, "APP_SERVICE_NAME", "subs-test")
	setEnv(t, "HTTP_PORT", "8181")
	setEnv(t, "GRPC_PORT", "9191")
	setEnv(t, "DATABASE_MAX_OPEN_CONNS", "20")
	setEnv(t, "DATABASE_MAX_IDLE_CONNS", "8")
	setEnv(t, "DATABASE_CONN_MAX_LIFETIME_MINUTES", "40")
	setEnv(t, "EXPIRATION_CHECK_INTERVAL_MINUTES", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "subs-test" {
		t.Fatalf("unexpected app service name: %s", cfg.App.ServiceName)
	}
	if cfg.HTTP.Port != "8181" || cfg.GRPC.Port != "9191" {
		t.Fatalf("unexpected ports: http=%s grpc=%s", cfg.HTTP.Port, cfg.GRPC.Port)
	}
	if cfg.Database.Driver != DriverMySQL {
		t.Fatalf("expected mysql driver by default, got %s", cfg.Database.Driver)
	}
	if cfg.Database.MaxOpenConns != 20 || cfg.Database.MaxIdleConns != 8 {
		t.Fatalf("unexpected pool config: %+v", cfg.Database)
	}
	if cfg.Database.ConnMaxLifetime != 40*time.Minute {
		t.Fatalf("unexpected lifetime: %v", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Jobs.ExpirationCheckInterval != 15*time.Minute {
		t.Fatalf("unexpected expiration interval: %v", cfg.Jobs.ExpirationCheckInterval)
	}
	if cfg.AMQP.URL != "" || cfg.AMQP.Exchange != "subscriptions" {
		t.Fatalf("unexpected amqp config: %+v", cfg.AMQP)
	}
}
