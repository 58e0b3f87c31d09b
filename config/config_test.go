package config

import "testing"

func validConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			AccessTokenSecret:  "access-secret",
			RefreshTokenSecret: "refresh-secret",
		},
	}
}

func TestValidate_MissingSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.AccessTokenSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing access token secret")
	}

	cfg = validConfig()
	cfg.Auth.RefreshTokenSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing refresh token secret")
	}

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.applyDefaults()

	if cfg.Auth.AccessTokenTTL != "15m" {
		t.Errorf("access TTL default = %q, want 15m", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Auth.RefreshTokenTTL != "7d" {
		t.Errorf("refresh TTL default = %q, want 7d", cfg.Auth.RefreshTokenTTL)
	}
	if cfg.Cleanup.IntervalMinutes != 60 {
		t.Errorf("cleanup interval default = %d, want 60", cfg.Cleanup.IntervalMinutes)
	}
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.AccessTokenTTL = "5m"
	cfg.Auth.RefreshTokenTTL = "1d"
	cfg.Cleanup.IntervalMinutes = 10
	cfg.applyDefaults()

	if cfg.Auth.AccessTokenTTL != "5m" || cfg.Auth.RefreshTokenTTL != "1d" || cfg.Cleanup.IntervalMinutes != 10 {
		t.Fatalf("defaults overwrote configured values: %+v", cfg)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "env-access")
	t.Setenv("JWT_REFRESH_TOKEN_SECRET", "env-refresh")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRES_IN", "30m")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := validConfig()
	applyEnvOverrides(cfg)

	if cfg.Auth.AccessTokenSecret != "env-access" {
		t.Errorf("access secret = %q", cfg.Auth.AccessTokenSecret)
	}
	if cfg.Auth.RefreshTokenSecret != "env-refresh" {
		t.Errorf("refresh secret = %q", cfg.Auth.RefreshTokenSecret)
	}
	if cfg.Auth.AccessTokenTTL != "30m" {
		t.Errorf("access TTL = %q", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr)
	}
}
