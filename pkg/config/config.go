// Package config loads cratesbot settings.
//
// Settings are resolved in three layers, each overriding the previous one:
// built-in defaults, an optional TOML file, and CRATESBOT_* environment
// variables. For example:
//
//	[telegram]
//	token = "123:abc"
//	mode = "webhook"
//
//	[telegram.webhook]
//	url = "https://bot.example.com/webhook"
//	secret = "s3cret"
//
// is equivalent to
//
//	CRATESBOT_TELEGRAM_TOKEN=123:abc
//	CRATESBOT_TELEGRAM_MODE=webhook
//	CRATESBOT_TELEGRAM_WEBHOOK_URL=https://bot.example.com/webhook
//	CRATESBOT_TELEGRAM_WEBHOOK_SECRET=s3cret
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/cratesbot/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "CRATESBOT"

// Update delivery modes.
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config is the complete bot configuration.
type Config struct {
	Telegram Telegram `toml:"telegram"`
	Registry Registry `toml:"registry"`
	Log      Log      `toml:"log"`
	Metrics  Metrics  `toml:"metrics"`

	// Workers bounds the number of updates handled concurrently.
	Workers int `toml:"workers"`
}

// Telegram configures the Bot API client and update delivery.
type Telegram struct {
	Token       string        `toml:"token"`
	APIURL      string        `toml:"api_url" split_words:"true"`
	Mode        string        `toml:"mode"`
	PollTimeout time.Duration `toml:"poll_timeout" split_words:"true"`
	Timeout     time.Duration `toml:"timeout"`
	Webhook     Webhook       `toml:"webhook"`
}

// Webhook configures webhook delivery. URL is the public address registered
// with the platform; Listen and Path are where the local server accepts it.
type Webhook struct {
	Listen string `toml:"listen"`
	Path   string `toml:"path"`
	URL    string `toml:"url"`
	Secret string `toml:"secret"`
}

// Registry configures the crates.io client.
type Registry struct {
	BaseURL string        `toml:"base_url" split_words:"true"`
	Timeout time.Duration `toml:"timeout"`
}

// Metrics configures the Prometheus endpoint. An empty Listen disables it.
type Metrics struct {
	Listen string `toml:"listen"`
	Path   string `toml:"path"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when nothing overrides it.
// It lacks a token and therefore does not validate on its own.
func Default() Config {
	return Config{
		Telegram: Telegram{
			APIURL:      "https://api.telegram.org",
			Mode:        ModePolling,
			PollTimeout: 30 * time.Second,
			Timeout:     10 * time.Second,
			Webhook: Webhook{
				Listen: ":8443",
				Path:   "/webhook",
			},
		},
		Registry: Registry{
			BaseURL: "https://crates.io/api/v1",
			Timeout: 10 * time.Second,
		},
		Workers: 32,
		Log:     Log{Level: "info"},
		Metrics: Metrics{Path: "/metrics"},
	}
}

// Load resolves the configuration from defaults, the TOML file at path (if
// path is non-empty) and the environment. Callers that run the bot must
// [Config.Validate] the result; local commands only need the registry.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file %s", path)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read environment")
	}
	return cfg, nil
}

// Validate reports the first setting that makes the configuration unusable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return invalid("telegram token is required (set %s_TELEGRAM_TOKEN)", EnvPrefix)
	}
	if err := errors.ValidateURL(c.Telegram.APIURL); err != nil {
		return invalid("telegram api_url: %s", errors.UserMessage(err))
	}
	switch c.Telegram.Mode {
	case ModePolling:
		if c.Telegram.PollTimeout <= 0 {
			return invalid("telegram poll_timeout must be positive")
		}
	case ModeWebhook:
		if err := errors.ValidateURL(c.Telegram.Webhook.URL); err != nil {
			return invalid("telegram webhook url: %s", errors.UserMessage(err))
		}
		if !strings.HasPrefix(c.Telegram.Webhook.Path, "/") {
			return invalid("telegram webhook path must start with /")
		}
		if c.Telegram.Webhook.Listen == "" {
			return invalid("telegram webhook listen address is required")
		}
	default:
		return invalid("telegram mode must be %q or %q, got %q", ModePolling, ModeWebhook, c.Telegram.Mode)
	}
	if c.Telegram.Timeout <= 0 {
		return invalid("telegram timeout must be positive")
	}
	if err := errors.ValidateURL(c.Registry.BaseURL); err != nil {
		return invalid("registry base_url: %s", errors.UserMessage(err))
	}
	if c.Registry.Timeout <= 0 {
		return invalid("registry timeout must be positive")
	}
	if c.Workers <= 0 {
		return invalid("workers must be positive, got %d", c.Workers)
	}
	if c.Metrics.Listen != "" && !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics path must start with /")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return invalid("log level: %v", err)
	}
	return nil
}

// LogLevel returns the configured log level. It assumes c is valid.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, "%s", fmt.Sprintf(format, args...))
}
