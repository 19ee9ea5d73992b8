package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates and configures a new zerolog logger
func New(logLevel string) zerolog.Logger {
	var out io.Writer = os.Stdout

	// Human-readable output in development
	if os.Getenv("API_ENV") == "development" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	return NewWithWriter(out, logLevel)
}

// NewWithWriter builds the service logger on top of an arbitrary writer
func NewWithWriter(out io.Writer, logLevel string) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "guiverse").
		Logger()
}

// WithAccount adds the wallet account to logger context
func WithAccount(logger zerolog.Logger, account string) zerolog.Logger {
	return logger.With().Str("account", account).Logger()
}

// WithAction adds the game action name to logger context
func WithAction(logger zerolog.Logger, action string) zerolog.Logger {
	return logger.With().Str("action", action).Logger()
}

// WithPet adds a pet id to logger context
func WithPet(logger zerolog.Logger, petID int) zerolog.Logger {
	return logger.With().Int("pet_id", petID).Logger()
}
