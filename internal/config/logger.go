package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger in development and JSON otherwise.
func (c *Config) NewLogger(service string) zerolog.Logger {
	if c.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Str("service", service).
			Logger()
	}
	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
