package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("port %q", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Fatalf("backend %q", cfg.DataBackend)
	}
	if cfg.RecentCurrencies != 5 {
		t.Fatalf("recent currencies %d", cfg.RecentCurrencies)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", t.TempDir()+"/tally.db")
	t.Setenv("FX_TIMEOUT", "5s")
	t.Setenv("RECENT_CURRENCIES", "10")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DataBackend != "sqlite" {
		t.Fatalf("%+v", cfg)
	}
	if cfg.FxTimeout != 5*time.Second {
		t.Fatalf("fx timeout %v", cfg.FxTimeout)
	}
	if cfg.RecentCurrencies != 10 {
		t.Fatalf("recent currencies %d", cfg.RecentCurrencies)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Load()
	cfg.Port = "not-a-port"
	cfg.DataBackend = "postgres"
	cfg.AMQPURL = "http://broker"
	cfg.RecentCurrencies = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"invalid port", "invalid data backend", "AMQP URL scheme", "recent currency count"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}
