package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_ADMIN_SECRET", "admin-secret")
	t.Setenv("JWT_USER_SECRET", "user-secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Mongo.URI = %q", cfg.Mongo.URI)
	}
	if cfg.Stripe.BaseURL != "https://api.stripe.com" {
		t.Errorf("Stripe.BaseURL = %q", cfg.Stripe.BaseURL)
	}
	if cfg.Minio.Bucket != "course-images" {
		t.Errorf("Minio.Bucket = %q", cfg.Minio.Bucket)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("MONGO_DATABASE", "marketplace")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9000" || cfg.Mongo.Database != "marketplace" || !cfg.Minio.UseSSL {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("JWT_ADMIN_SECRET", "")
	t.Setenv("JWT_USER_SECRET", "")
	t.Setenv("STRIPE_SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error when secrets are missing")
	}
}
