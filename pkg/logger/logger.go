// Package logger configures the process-wide zerolog logger. Every other
// package logs through the zerolog/log global, so Setup must run first in
// each binary's main.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Level is one of zerolog's named levels ("debug", "info", "warn",
	// "error"). Unknown values fall back to info.
	Level string
	// Pretty switches to the human-readable console writer. JSON otherwise.
	Pretty bool
	// Service is stamped on every record.
	Service string
}

// Setup replaces the global logger according to cfg.
func Setup(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout)
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	log.Logger = logger.
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Service).
		Logger()
}
