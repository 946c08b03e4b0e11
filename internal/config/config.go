package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv       = "NEWS_RELAY_CONFIG"
	naverClientIDEnv    = "NAVER_CLIENT_ID"
	naverClientSecEnv   = "NAVER_CLIENT_SECRET"
	newsQueryEnv        = "NEWS_QUERY"
	telegramTokenEnv    = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv   = "TELEGRAM_CHAT_ID"
	seenFileEnv         = "SEEN_FILE"
	pollIntervalEnv     = "POLL_INTERVAL"
	logLevelEnv         = "LOG_LEVEL"
	sentryDSNEnv        = "SENTRY_DSN"
	sentryEnvironmentEn = "SENTRY_ENVIRONMENT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Search        SearchConfig       `yaml:"search"`
	Scraper       ScraperConfig      `yaml:"scraper"`
	Notifications NotificationConfig `yaml:"notifications"`
	Store         StoreConfig        `yaml:"store"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Sentry        SentryConfig       `yaml:"sentry"`
}

// LoggingConfig selects slog level and output format ("text" or "json").
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SearchConfig describes the news search API and the polled query.
type SearchConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	ClientID     string        `yaml:"clientId"`
	ClientSecret string        `yaml:"clientSecret"`
	Query        string        `yaml:"query"`
	Limit        int           `yaml:"limit"`
	Timeout      time.Duration `yaml:"timeout"`
}

// ScraperConfig controls article page fetches.
type ScraperConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken    string        `yaml:"botToken"`
	ChatID      string        `yaml:"chatId"`
	APIEndpoint string        `yaml:"apiEndpoint"`
	Timeout     time.Duration `yaml:"timeout"`
}

// StoreConfig points at the seen-links file.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig defines the pause between polling cycles.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Release     string `yaml:"release"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
// An empty path falls back to NEWS_RELAY_CONFIG.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

// Validate reports settings the relay cannot run without.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Search.Query) == "" {
		errs = append(errs, errors.New("search query is empty"))
	}
	if c.Search.ClientID == "" || c.Search.ClientSecret == "" {
		errs = append(errs, errors.New("naver client credentials are missing"))
	}
	if c.Notifications.Telegram.BotToken == "" || c.Notifications.Telegram.ChatID == "" {
		errs = append(errs, errors.New("telegram bot token or chat id is missing"))
	}
	if c.Store.Path == "" {
		errs = append(errs, errors.New("seen store path is empty"))
	}
	if c.Scheduler.Interval <= 0 {
		errs = append(errs, fmt.Errorf("scheduler interval must be positive, got %s", c.Scheduler.Interval))
	}

	return errors.Join(errs...)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(naverClientIDEnv); v != "" {
		c.Search.ClientID = v
	}

	if v := os.Getenv(naverClientSecEnv); v != "" {
		c.Search.ClientSecret = v
	}

	if v := os.Getenv(newsQueryEnv); v != "" {
		c.Search.Query = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(seenFileEnv); v != "" {
		c.Store.Path = v
	}

	if v := os.Getenv(pollIntervalEnv); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Scheduler.Interval = d
		} else {
			log.Printf("config: invalid %s=%q: %v (keeping %s)", pollIntervalEnv, v, err, c.Scheduler.Interval)
		}
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(sentryDSNEnv); v != "" {
		c.Sentry.DSN = v
	}

	if v := os.Getenv(sentryEnvironmentEn); v != "" {
		c.Sentry.Environment = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Search.Endpoint != "" {
		base.Search.Endpoint = override.Search.Endpoint
	}
	if override.Search.ClientID != "" {
		base.Search.ClientID = override.Search.ClientID
	}
	if override.Search.ClientSecret != "" {
		base.Search.ClientSecret = override.Search.ClientSecret
	}
	if override.Search.Query != "" {
		base.Search.Query = override.Search.Query
	}
	if override.Search.Limit > 0 {
		base.Search.Limit = override.Search.Limit
	}
	if override.Search.Timeout > 0 {
		base.Search.Timeout = override.Search.Timeout
	}

	if override.Scraper.Timeout > 0 {
		base.Scraper.Timeout = override.Scraper.Timeout
	}
	if override.Scraper.UserAgent != "" {
		base.Scraper.UserAgent = override.Scraper.UserAgent
	}

	tg := override.Notifications.Telegram
	if tg.BotToken != "" {
		base.Notifications.Telegram.BotToken = tg.BotToken
	}
	if tg.ChatID != "" {
		base.Notifications.Telegram.ChatID = tg.ChatID
	}
	if tg.APIEndpoint != "" {
		base.Notifications.Telegram.APIEndpoint = tg.APIEndpoint
	}
	if tg.Timeout > 0 {
		base.Notifications.Telegram.Timeout = tg.Timeout
	}

	if override.Store.Path != "" {
		base.Store.Path = override.Store.Path
	}

	if override.Scheduler.Interval > 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}

	if override.Sentry.DSN != "" {
		base.Sentry.DSN = override.Sentry.DSN
	}
	if override.Sentry.Environment != "" {
		base.Sentry.Environment = override.Sentry.Environment
	}
	if override.Sentry.Release != "" {
		base.Sentry.Release = override.Sentry.Release
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Search: SearchConfig{
			Endpoint: "https://openapi.naver.com/v1/search/news.json",
			Limit:    50,
			Timeout:  30 * time.Second,
		},
		Scraper: ScraperConfig{Timeout: 5 * time.Second, UserAgent: "NewsRelay/1.0"},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{
				APIEndpoint: "https://api.telegram.org/bot%s/%s",
				Timeout:     30 * time.Second,
			},
		},
		Store:     StoreConfig{Path: "seen.json"},
		Scheduler: SchedulerConfig{Interval: 10 * time.Second},
		Sentry:    SentryConfig{Environment: "production"},
	}
}
