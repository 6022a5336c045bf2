package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE_DRIVER", "DATABASE_URL", "CORS_ALLOWED_ORIGINS", "PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK", "INVOICES_TABLE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 || cfg.StorageDriver != StorageDynamoDB {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Tables.Invoices != "invoices" || cfg.Tables.Payments != "payments" {
		t.Fatalf("unexpected table defaults: %+v", cfg.Tables)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.PaymentGatewayMock {
		t.Fatalf("mock should be off by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/erp")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("MERCADOPAGO_MOCK", "on")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 || cfg.StorageDriver != StoragePostgres {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.PaymentGatewayMock {
		t.Fatalf("expected mock mode")
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DATABASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("STORAGE_DRIVER", "mongo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("PORT", "http")
		t.Setenv("STORAGE_DRIVER", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error")
		}
	})
}
