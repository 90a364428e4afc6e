package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"minigames-backend/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GAME_STATE_TTL", "")
	t.Setenv("GAME_LIMITS_FILE", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.GameStateTTL != 24*time.Hour || cfg.DBDriver != "postgres" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.JWTSecret == "" {
		t.Error("development config should fall back to a dev secret")
	}
	if got := cfg.Limits.For(models.GameTypeDice, models.CurrencyUSD); got.Min != 0.1 {
		t.Errorf("default USD limit %+v", got)
	}
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("expected error without JWT_SECRET")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	if _, err := Load(); err == nil {
		t.Error("expected REDIS_DB error")
	}
	t.Setenv("REDIS_DB", "0")
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := Load(); err == nil {
		t.Error("expected DB_DRIVER error")
	}
}

func TestLoadGameLimitsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	yml := `
defaults:
  USD: {min: 1, max: 50}
games:
  mines:
    USD: {min: 0.5, max: 20}
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	limits, err := LoadGameLimits(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := limits.For(models.GameTypeMines, models.CurrencyUSD); got.Min != 0.5 || got.Max != 20 {
		t.Errorf("mines limit %+v", got)
	}
	if got := limits.For(models.GameTypeDice, models.CurrencyUSD); got.Min != 1 || got.Max != 50 {
		t.Errorf("dice limit %+v", got)
	}
	// LBP keeps the built-in default
	if got := limits.For(models.GameTypeMines, models.CurrencyLBP); got.Min != 10000 {
		t.Errorf("mines LBP limit %+v", got)
	}
}

func TestLoadGameLimitsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	if err := os.WriteFile(path, []byte("defaults:\n  USD: {min: 10, max: 1}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGameLimits(path); err == nil {
		t.Error("expected invalid range error")
	}
	if _, err := LoadGameLimits(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected missing file error")
	}
}
