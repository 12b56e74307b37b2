package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the token-intelligence service.
type Config struct {
	// Base URLs for upstream services (configurable for testing)
	DexScreenerBaseURL string `mapstructure:"dexscreener_base_url"`
	CoinGeckoBaseURL   string `mapstructure:"coingecko_base_url"`
	GoPlusBaseURL      string `mapstructure:"goplus_base_url"`
	SentimentBaseURL   string `mapstructure:"sentiment_base_url"`

	// Cache and monitor timing
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	MonitorInterval time.Duration `mapstructure:"monitor_interval"`

	// Network priority order for identity resolution
	Networks []string `mapstructure:"networks"`

	// Identifiers placed on the default watch-list at startup
	Watchlist []string `mapstructure:"watchlist"`

	// Optional alert delivery via Telegram
	TelegramBotToken string `mapstructure:"telegram_bot_token"`
	TelegramChatID   int64  `mapstructure:"telegram_chat_id"`

	// Optional assistant
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OpenAIModel  string `mapstructure:"openai_model"`
}

// Load reads configuration from environment variables and an optional config
// file. Environment variables take precedence over config file values.
//
// Expected environment variables (all optional, defaults in code):
//   - DEXSCREENER_BASE_URL, COINGECKO_BASE_URL, GOPLUS_BASE_URL,
//     SENTIMENT_BASE_URL
//   - CACHE_TTL, MONITOR_INTERVAL (Go duration strings)
//   - TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID
//   - OPENAI_API_KEY, OPENAI_MODEL
func Load() (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.SetDefault("dexscreener_base_url", "https://api.dexscreener.com")
	v.SetDefault("coingecko_base_url", "https://api.coingecko.com")
	v.SetDefault("goplus_base_url", "https://api.gopluslabs.io")
	v.SetDefault("sentiment_base_url", "http://localhost:3000")
	v.SetDefault("cache_ttl", "300s")
	v.SetDefault("monitor_interval", "5m")
	v.SetDefault("networks", []string{
		"ethereum", "bsc", "solana", "base", "arbitrum", "optimism", "avalanche",
	})

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.tokenintel")
	_ = v.ReadInConfig()

	v.BindEnv("dexscreener_base_url", "DEXSCREENER_BASE_URL")
	v.BindEnv("coingecko_base_url", "COINGECKO_BASE_URL")
	v.BindEnv("goplus_base_url", "GOPLUS_BASE_URL")
	v.BindEnv("sentiment_base_url", "SENTIMENT_BASE_URL")
	v.BindEnv("cache_ttl", "CACHE_TTL")
	v.BindEnv("monitor_interval", "MONITOR_INTERVAL")
	v.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram_chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	v.BindEnv("openai_model", "OPENAI_MODEL")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.CacheTTL <= 0 {
		return nil, fmt.Errorf("cache_ttl must be positive, got %s", config.CacheTTL)
	}
	if config.MonitorInterval <= 0 {
		return nil, fmt.Errorf("monitor_interval must be positive, got %s", config.MonitorInterval)
	}
	if len(config.Networks) == 0 {
		return nil, fmt.Errorf("networks must list at least one network")
	}

	return config, nil
}
