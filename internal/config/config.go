package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"RegulatorRadar/internal/analysis"
)

const (
	defaultTimezone   = "UTC"
	configPathEnv     = "REGULATOR_RADAR_CONFIG"
	databaseDSNEnv    = "DATABASE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	logLevelEnv       = "LOG_LEVEL"
	httpAddrEnv       = "HTTP_ADDR"
)

// Storage drivers.
const (
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Analysis      AnalysisConfig     `yaml:"analysis"`
	Storage       StorageConfig      `yaml:"storage"`
	Notifications NotificationConfig `yaml:"notifications"`
	Server        ServerConfig       `yaml:"server"`
	Sites         []SiteConfig       `yaml:"sites"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SchedulerConfig defines how often feeds are polled.
type SchedulerConfig struct {
	Interval time.Duration  `yaml:"interval"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// AnalysisConfig carries engine options and poll concurrency limits.
type AnalysisConfig struct {
	analysis.Options  `yaml:",inline"`
	Workers           int           `yaml:"workers"`
	MaxProcessingTime time.Duration `yaml:"maxProcessingTime"`
}

// StorageConfig picks and configures the analysis repository.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	SeverityThreshold int            `yaml:"severityThreshold"`
	Telegram          TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
	APIBase  string `yaml:"apiBase"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// SiteConfig describes a single regulator site with its scanner strategy.
type SiteConfig struct {
	Name    string            `yaml:"name"`
	Scanner string            `yaml:"scanner"`
	Feeds   []FeedConfig      `yaml:"feeds"`
	Options map[string]string `yaml:"options"`
}

// FeedConfig holds a concrete endpoint to read (an RSS URL or listing page).
type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Load reads the YAML file named by REGULATOR_RADAR_CONFIG (if present) and
// applies environment overrides. Unreadable files fall back to defaults.
func Load() Config {
	cfg, err := LoadFile(os.Getenv(configPathEnv))
	if err != nil {
		log.Printf("config: %v (falling back to defaults)", err)
		cfg = defaultConfig()
		cfg.applyEnvOverrides()
		cfg.bindTimezone()
	}
	return cfg
}

// LoadFile overlays the YAML file at path on the defaults and applies
// environment overrides. An empty path yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("cannot read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("cannot parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()
	cfg.applyFallbacks()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverBadger:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage: postgres driver requires a dsn")
		}
	default:
		return fmt.Errorf("storage: unknown driver %q", c.Storage.Driver)
	}
	for _, site := range c.Sites {
		if site.Name == "" || site.Scanner == "" {
			return fmt.Errorf("sites: every site needs a name and scanner")
		}
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Storage.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(httpAddrEnv); v != "" {
		c.Server.Addr = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

// applyFallbacks restores defaults for values a partial file zeroed out.
func (c *Config) applyFallbacks() {
	def := defaultConfig()
	if c.Scheduler.Interval <= 0 {
		c.Scheduler.Interval = def.Scheduler.Interval
	}
	if c.Analysis.Workers <= 0 {
		c.Analysis.Workers = def.Analysis.Workers
	}
	if c.Analysis.MaxProcessingTime <= 0 {
		c.Analysis.MaxProcessingTime = def.Analysis.MaxProcessingTime
	}
	if c.Notifications.SeverityThreshold <= 0 {
		c.Notifications.SeverityThreshold = def.Notifications.SeverityThreshold
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = def.Storage.Driver
	}
	if c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if len(c.Sites) == 0 {
		c.Sites = def.Sites
	}
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Scheduler: SchedulerConfig{Interval: time.Hour, Timezone: defaultTimezone, location: tz},
		Analysis: AnalysisConfig{
			Options:           analysis.DefaultOptions(),
			Workers:           4,
			MaxProcessingTime: 30 * time.Second,
		},
		Storage: StorageConfig{Driver: DriverBadger, Path: "data/regulatorradar"},
		Notifications: NotificationConfig{
			SeverityThreshold: 8,
			Telegram:          TelegramConfig{BotToken: "", ChatID: ""},
		},
		Server: ServerConfig{Addr: ":8080"},
		Sites: []SiteConfig{
			{
				Name:    "sec",
				Scanner: "rss",
				Feeds: []FeedConfig{
					{Name: "press-releases", URL: "https://www.sec.gov/news/pressreleases.rss"},
				},
			},
		},
	}
}
