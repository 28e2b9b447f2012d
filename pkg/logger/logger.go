package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

// New creates a structured logger with component metadata. The returned
// logger satisfies the keeper-facing interface so the same instance feeds
// both the module keepers and the API layer.
func New(component, level string) log.Logger {
	return NewWithWriter(os.Stderr, component, level)
}

// NewWithWriter is New with an explicit destination, for tests.
func NewWithWriter(w io.Writer, component, level string) log.Logger {
	zerolog.DurationFieldUnit = time.Millisecond
	zl := zerolog.New(w).With().
		Timestamp().
		Str("component", component).
		Logger().
		Level(parseLevel(level))
	return log.NewCustomLogger(zl)
}

// NewConsole creates a human-readable logger for interactive use.
func NewConsole(component, level string) log.Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().
		Timestamp().
		Str("component", component).
		Logger().
		Level(parseLevel(level))
	return log.NewCustomLogger(zl)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
