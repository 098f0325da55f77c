// Package logging provides the zerolog-based application logger.
//
// One logger is built at startup from configuration. Services receive it by
// constructor injection; main additionally installs it as the zerolog global
// so the thin HTTP error path can log without carrying a logger around.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"docvault/internal/config"
)

// New builds a zerolog.Logger from the given config.
// Format "console" yields human-readable output for development; anything
// else yields one JSON object per line, suitable for log shippers.
func New(cfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit output writer, used by tests.
func NewWithWriter(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
