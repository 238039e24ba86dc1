package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Paths struct {
		Prices  string `yaml:"prices"`
		History string `yaml:"history"`
	} `yaml:"paths"`
	History struct {
		// Strict turns a corrupt store or malformed pricing into run errors.
		Strict bool `yaml:"strict"`
	} `yaml:"history"`
	Sources struct {
		OpenRouter struct {
			Enabled  bool              `yaml:"enabled"`
			BaseURL  string            `yaml:"base_url"`
			Mappings map[string]string `yaml:"mappings"`
		} `yaml:"openrouter"`
	} `yaml:"sources"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	API struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"api"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults fill the gaps.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PRICES_PATH"); v != "" {
		cfg.Paths.Prices = v
	}
	if v := os.Getenv("HISTORY_PATH"); v != "" {
		cfg.Paths.History = v
	}
	if v := os.Getenv("HISTORY_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.History.Strict = b
		}
	}
	if v := os.Getenv("OPENROUTER_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Sources.OpenRouter.Enabled = b
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("API_PORT"); v != "" {
		cfg.API.Port = v
	}

	// Defaults
	if cfg.Paths.Prices == "" {
		cfg.Paths.Prices = "data/prices.json"
	}
	if cfg.Paths.History == "" {
		cfg.Paths.History = "data/price-history.json"
	}
	if cfg.Sources.OpenRouter.BaseURL == "" {
		cfg.Sources.OpenRouter.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 6 * * *"
	}
	if cfg.API.Port == "" {
		cfg.API.Port = "8080"
	}

	return cfg, nil
}

// TelegramEnabled reports whether both Telegram credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Paths.Prices == "" {
		return fmt.Errorf("paths.prices is required")
	}
	if c.Paths.History == "" {
		return fmt.Errorf("paths.history is required")
	}
	if c.Paths.Prices == c.Paths.History {
		return fmt.Errorf("paths.prices and paths.history must differ")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if c.Sources.OpenRouter.Enabled && c.Sources.OpenRouter.BaseURL == "" {
		return fmt.Errorf("sources.openrouter.base_url is required when enabled")
	}
	return nil
}
