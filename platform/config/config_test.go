package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/crm_test")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
	t.Setenv("SMTP_HOST", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.AccessTokenTTL.Minutes() != 15 {
		t.Errorf("AccessTokenTTL = %v", cfg.AccessTokenTTL)
	}
	if cfg.EmailEnabled {
		t.Error("email enabled without SMTP host")
	}
	if cfg.AsynqQueueName != "default" {
		t.Errorf("AsynqQueueName = %q", cfg.AsynqQueueName)
	}
	if cfg.Timezone != "Europe/Istanbul" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.Location == nil {
		t.Error("Location not resolved")
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	setRequired(t)
	t.Setenv("TIME_ZONE", "Mars/Olympus_Mons")

	if _, err := Load(); err == nil {
		t.Fatal("unknown TIME_ZONE accepted")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("missing DATABASE_URL accepted")
	}
}

func TestLoadRequiresJWTSecrets(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_REFRESH_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("missing JWT_REFRESH_SECRET accepted")
	}
}

func TestLoadRejectsWildcardWithCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("wildcard origins with credentials accepted")
	}
}

func TestLoadEmailRequiresFromAddress(t *testing.T) {
	setRequired(t)
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("EMAIL_FROM_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatal("email enabled without a from address accepted")
	}
}
