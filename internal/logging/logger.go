// Package logging builds the structured logger used by the command line
// tools.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config defines logger output.
type Config struct {
	Service string `mapstructure:"service"`
	Level   string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `mapstructure:"format" validate:"omitempty,oneof=json text"`

	// File enables rotated file output. Empty means Output.
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size" validate:"gte=0"`    // MB
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"` // files
	MaxAge     int    `mapstructure:"max_age" validate:"gte=0"`     // days
	Compress   bool   `mapstructure:"compress"`

	// Output is used when File is empty. Nil means stderr.
	Output io.Writer `mapstructure:"-"`
}

// Logger wraps *slog.Logger and owns the rotating writer, if any.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// Close releases the log file. It is a no-op for stream output.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a Logger from cfg.
func New(cfg Config) *Logger {
	var (
		w      io.Writer
		closer io.Closer
	)
	switch {
	case cfg.File != "":
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		w, closer = lj, lj
	case cfg.Output != nil:
		w = cfg.Output
	default:
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(h)
	if cfg.Service != "" {
		l = l.With(slog.String("service", cfg.Service))
	}
	return &Logger{Logger: l, closer: closer}
}

