// Package logger configures structured logging with zerolog.
// The terminal belongs to the UI, so logs go to a file (or are discarded).
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a config string to a zerolog level; unknown values are info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Init sets the global level and points the global logger at w.
func Init(level string, pretty bool, w io.Writer) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if pretty {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}
}

// Setup opens path for appending and routes logs there. An empty path
// discards all output. The returned func closes the file.
func Setup(level, path string, pretty bool) (func(), error) {
	if strings.TrimSpace(path) == "" {
		Init(level, pretty, io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // user-configured log path
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	Init(level, pretty, f)
	return func() { _ = f.Close() }, nil
}
