// Package cli implements the cratesbot command-line interface.
//
// # Commands
//
//   - serve: run the bot, receiving updates by long polling or webhook
//   - search: run an inline query locally and print the rendered results
//   - crate: print the reply the bot gives to /crate
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Without it,
// serve uses the level from the configuration. The logger is passed to
// commands through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cratesbot/pkg/config"
	"github.com/matzehuels/cratesbot/pkg/integrations/crates"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig resolves the configuration named by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRegistry creates the crates.io client described by cfg.
func newRegistry(cfg config.Config) *crates.Client {
	return crates.NewClient(cfg.Registry.BaseURL, cfg.Registry.Timeout)
}
