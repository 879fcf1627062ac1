package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Errorf("env = %q, want dev", cfg.Env)
	}
	if cfg.GeminiModel != "gemini-pro-vision" {
		t.Errorf("gemini model = %q", cfg.GeminiModel)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("max upload = %d", cfg.MaxUploadBytes)
	}
	if cfg.AccessTokenTTL != 24*time.Hour {
		t.Errorf("access ttl = %v", cfg.AccessTokenTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "PROD")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("UPLOAD_ALLOWED_EXTENSIONS", "png, jpg ,")
	t.Setenv("ACCESS_TOKEN_TTL", "1h")
	t.Setenv("DATABASE_URL", "postgres://localhost/fashionlens")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("env = %q, want production", cfg.Env)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Errorf("store = %q, want s3", cfg.ObjectStoreType)
	}
	if len(cfg.AllowedExtensions) != 2 || cfg.AllowedExtensions[0] != "png" || cfg.AllowedExtensions[1] != "jpg" {
		t.Errorf("extensions = %v", cfg.AllowedExtensions)
	}
	if cfg.AccessTokenTTL != time.Hour {
		t.Errorf("access ttl = %v", cfg.AccessTokenTTL)
	}
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	t.Setenv("ACCESS_TOKEN_TTL", "-5m")

	cfg := Load()

	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("max upload = %d, want default", cfg.MaxUploadBytes)
	}
	if cfg.AccessTokenTTL != 24*time.Hour {
		t.Errorf("access ttl = %v, want default", cfg.AccessTokenTTL)
	}
}
