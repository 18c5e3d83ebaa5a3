// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// Setup builds a logger from the configuration and installs it as the
// global zerolog logger. Unknown levels fall back to info.
func Setup(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	// ParseLevel maps "" to NoLevel without an error, which would filter
	// everything out. An absent or unknown level means info.
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil && parsed != zerolog.NoLevel {
			level = parsed
		}
	}

	var logger zerolog.Logger
	if cfg.Format == "text" {
		// Pretty console output for development.
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).
			Level(level).
			With().
			Timestamp().
			Logger()
	} else {
		// JSON output for production.
		logger = zerolog.New(output).
			Level(level).
			With().
			Timestamp().
			Logger()
	}

	log.Logger = logger
	return logger
}
