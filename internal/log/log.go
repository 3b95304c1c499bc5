// Package log wraps zerolog with the component-scoped child loggers used
// across the oram and pki packages.
package log

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dor890/trustcore/internal/config"
)

var (
	// Logger is the global logger instance.
	Logger zerolog.Logger

	initOnce sync.Once
)

type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

func initFromEnv() {
	cfg := config.Load()

	var level zerolog.Level
	switch Level(cfg.LogLevel) {
	case DebugLevel:
		level = zerolog.DebugLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogJSON {
		Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// WithComponent returns a child logger tagged with the given component,
// initializing the global logger from the environment on first use.
func WithComponent(component string) zerolog.Logger {
	initOnce.Do(initFromEnv)
	return Logger.With().Str("component", component).Logger()
}
