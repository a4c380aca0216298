// Package logger provides a configured zerolog logger.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ersonp/quill/internal/infrastructure/config"
)

// New returns a zerolog.Logger writing to w according to cfg.
// Console format is meant for humans on a terminal; json for log collection.
func New(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := w
	switch strings.ToLower(cfg.Format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (valid: console, json)", cfg.Format)
	}

	return zerolog.New(out).Level(level).With().
		Str("app", "quill").
		Timestamp().
		Logger(), nil
}

// ParseLevel converts a config level name into a zerolog level.
// An empty name means warn.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
