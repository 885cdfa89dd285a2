// Package logger wraps zerolog for use at the CLI boundary. Structure
// extraction itself never logs; progress and outcome reporting happen here.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps a configured zerolog.Logger
type Logger struct {
	zlog zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output io.Writer
}

// DefaultConfig returns quiet JSON logging to stderr
func DefaultConfig() *Config {
	return &Config{
		Level:  "warn",
		Format: "json",
		Output: os.Stderr,
	}
}

// New creates a logger from the given configuration
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	var zlog zerolog.Logger
	if cfg.Format == "console" {
		// Human-readable console output for interactive runs
		w := zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
		zlog = zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	} else {
		// Structured JSON otherwise
		zlog = zerolog.New(output).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	}

	return &Logger{zlog: zlog}
}

// Debug logs a message at debug level
func (l *Logger) Debug(msg string) {
	l.zlog.Debug().Msg(msg)
}

// Info logs a message at info level
func (l *Logger) Info(msg string) {
	l.zlog.Info().Msg(msg)
}

// Warn logs a message at warn level
func (l *Logger) Warn(msg string) {
	l.zlog.Warn().Msg(msg)
}

// Error logs a message at error level with an optional cause
func (l *Logger) Error(err error, msg string) {
	l.zlog.Error().Err(err).Msg(msg)
}

// With returns a zerolog context for attaching fields:
//
//	log.With().Str("database", path).Logger()
func (l *Logger) With() zerolog.Context {
	return l.zlog.With()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
