package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DexScreenerBaseURL != "https://api.dexscreener.com" {
		t.Errorf("DexScreenerBaseURL = %q, want production default", cfg.DexScreenerBaseURL)
	}
	if cfg.CacheTTL != 300*time.Second {
		t.Errorf("CacheTTL = %s, want 300s", cfg.CacheTTL)
	}
	if cfg.MonitorInterval != 5*time.Minute {
		t.Errorf("MonitorInterval = %s, want 5m", cfg.MonitorInterval)
	}
	if len(cfg.Networks) == 0 || cfg.Networks[0] != "ethereum" {
		t.Errorf("Networks = %v, want ethereum-first priority list", cfg.Networks)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DEXSCREENER_BASE_URL", "http://localhost:9999")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DexScreenerBaseURL != "http://localhost:9999" {
		t.Errorf("DexScreenerBaseURL = %q, want env override", cfg.DexScreenerBaseURL)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %s, want 30s", cfg.CacheTTL)
	}
	if cfg.TelegramBotToken != "test-token" || cfg.TelegramChatID != 12345 {
		t.Errorf("telegram config = %q/%d, want env values", cfg.TelegramBotToken, cfg.TelegramChatID)
	}
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted a zero cache TTL")
	}
}
