package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerPort == "" {
		t.Fatal("missing server port default")
	}
	if cfg.BankCode != "999" {
		t.Fatalf("bank code = %q, want sandbox default %q", cfg.BankCode, "999")
	}
	if !strings.Contains(cfg.DatabaseDSN, "dbname=minibank_db") {
		t.Fatalf("default DSN not normalized to libpq form: %q", cfg.DatabaseDSN)
	}
}

func TestNormalizeConnectionString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "semicolon form",
			raw:  "Host=db;Port=5433;Database=bank;Username=svc;Password=secret",
			want: "host=db port=5433 dbname=bank user=svc password=secret sslmode=disable",
		},
		{
			name: "libpq form untouched",
			raw:  "host=db port=5432 dbname=bank",
			want: "host=db port=5432 dbname=bank",
		},
		{
			name: "explicit sslmode preserved",
			raw:  "Host=db;Database=bank;SslMode=require",
			want: "host=db dbname=bank sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeConnectionString(tt.raw); got != tt.want {
				t.Fatalf("normalizeConnectionString(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
