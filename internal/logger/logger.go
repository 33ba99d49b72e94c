// Package logger builds the service's zerolog logger.
//
// Every line carries a "ts" timestamp rendered in the configured location,
// plus the service name and environment so lines from several deployments
// can share one sink.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"studentapi/internal/config"
)

// TimestampField is the key used for log timestamps.
const TimestampField = "ts"

// Options controls how New builds a logger.
type Options struct {
	Level    string
	Format   string
	Location *time.Location
	Service  string
	Env      string
}

// New returns a logger writing to w. Format "console" selects zerolog's
// human-readable writer; anything else writes JSON lines.
//
// zerolog keeps its timestamp settings in package globals, so New also
// points those at opts.Location.
func New(w io.Writer, opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	zerolog.TimestampFieldName = TimestampField
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFunc = func() time.Time { return time.Now().In(loc) }

	if opts.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if opts.Env != "" {
		ctx = ctx.Str("env", opts.Env)
	}
	return ctx.Logger(), nil
}

// FromConfig builds the stdout logger described by cfg.
func FromConfig(cfg *config.AppConfig) (zerolog.Logger, error) {
	return New(os.Stdout, Options{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		Location: cfg.Location(),
		Service:  cfg.AppName,
		Env:      cfg.Env,
	})
}
