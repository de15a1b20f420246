package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cratesbot/pkg/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cratesbot.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultNeedsToken(t *testing.T) {
	err := Default().Validate()
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Default().Validate() = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
workers = 4

[telegram]
token = "123:abc"
mode = "webhook"
timeout = "5s"

[telegram.webhook]
url = "https://bot.example.com/hook"
path = "/hook"

[registry]
timeout = "2s"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Telegram.Token != "123:abc" || cfg.Telegram.Mode != ModeWebhook {
		t.Errorf("telegram = %+v", cfg.Telegram)
	}
	if cfg.Telegram.Timeout != 5*time.Second || cfg.Registry.Timeout != 2*time.Second {
		t.Errorf("timeouts = %v, %v", cfg.Telegram.Timeout, cfg.Registry.Timeout)
	}
	if cfg.Telegram.Webhook.Path != "/hook" || cfg.Telegram.Webhook.Listen != ":8443" {
		t.Errorf("webhook = %+v", cfg.Telegram.Webhook)
	}
	if cfg.Registry.BaseURL != "https://crates.io/api/v1" {
		t.Errorf("unset fields should keep defaults, BaseURL = %q", cfg.Registry.BaseURL)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, `
[telegram]
token = "from-file"
`)
	t.Setenv("CRATESBOT_TELEGRAM_TOKEN", "from-env")
	t.Setenv("CRATESBOT_TELEGRAM_POLL_TIMEOUT", "45s")
	t.Setenv("CRATESBOT_REGISTRY_BASE_URL", "http://localhost:8080/api/v1")
	t.Setenv("CRATESBOT_WORKERS", "8")
	t.Setenv("CRATESBOT_METRICS_LISTEN", ":9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Telegram.Token != "from-env" {
		t.Errorf("Token = %q, want from-env", cfg.Telegram.Token)
	}
	if cfg.Telegram.PollTimeout != 45*time.Second {
		t.Errorf("PollTimeout = %v", cfg.Telegram.PollTimeout)
	}
	if cfg.Registry.BaseURL != "http://localhost:8080/api/v1" {
		t.Errorf("BaseURL = %q", cfg.Registry.BaseURL)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.Metrics.Listen != ":9090" || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
}

func TestLoadWithoutToken(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Registry.BaseURL != Default().Registry.BaseURL {
		t.Errorf("BaseURL = %q", cfg.Registry.BaseURL)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Load() = %v", err)
		}
	})
	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("CRATESBOT_WORKERS", "many")
		if _, err := Load(""); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Load() = %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c := Default()
		c.Telegram.Token = "123:abc"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid polling", func(c *Config) {}, false},
		{"valid webhook", func(c *Config) {
			c.Telegram.Mode = ModeWebhook
			c.Telegram.Webhook.URL = "https://bot.example.com/webhook"
		}, false},
		{"blank token", func(c *Config) { c.Telegram.Token = "  " }, true},
		{"unknown mode", func(c *Config) { c.Telegram.Mode = "carrier-pigeon" }, true},
		{"webhook without url", func(c *Config) { c.Telegram.Mode = ModeWebhook }, true},
		{"webhook bad path", func(c *Config) {
			c.Telegram.Mode = ModeWebhook
			c.Telegram.Webhook.URL = "https://bot.example.com/webhook"
			c.Telegram.Webhook.Path = "webhook"
		}, true},
		{"zero poll timeout", func(c *Config) { c.Telegram.PollTimeout = 0 }, true},
		{"bad registry url", func(c *Config) { c.Registry.BaseURL = "crates.io" }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }, true},
		{"metrics enabled", func(c *Config) { c.Metrics.Listen = ":9090" }, false},
		{"metrics bad path", func(c *Config) {
			c.Metrics.Listen = ":9090"
			c.Metrics.Path = "metrics"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}
