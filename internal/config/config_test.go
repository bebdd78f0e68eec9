package config

import (
	"reflect"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AV_TOKEN", "")
	t.Setenv("SYMBOLS", "")

	cfg := LoadConfig()

	if cfg.Port != 8501 {
		t.Errorf("expected default port 8501, got %d", cfg.Port)
	}
	if cfg.AVBaseURL != "https://www.alphavantage.co/query" {
		t.Errorf("unexpected base URL: %s", cfg.AVBaseURL)
	}
	if !reflect.DeepEqual(cfg.Symbols, []string{"AAPL", "META", "GOOG"}) {
		t.Errorf("unexpected default symbols: %v", cfg.Symbols)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("AV_TOKEN", "secret")
	t.Setenv("SYMBOLS", "msft, nvda")

	cfg := LoadConfig()

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.AVToken != "secret" {
		t.Errorf("expected token to come from AV_TOKEN, got %q", cfg.AVToken)
	}
	if !reflect.DeepEqual(cfg.Symbols, []string{"MSFT", "NVDA"}) {
		t.Errorf("expected trimmed upper-cased symbols, got %v", cfg.Symbols)
	}
}

func TestLoadConfigBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg := LoadConfig()

	if cfg.Port != 8501 {
		t.Errorf("expected fallback to 8501 for a bad port, got %d", cfg.Port)
	}
}
