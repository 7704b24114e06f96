// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Supported values for the --log-format flag and the log.format config key.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger defines the interface for logging operations.
// It provides methods for formatted output and output redirection.
//
// This interface supports both CLI and [MCP] server modes, allowing seamless
// switching between human-readable output and structured logging.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// New returns a Logger for the named format writing to w.
//
// Parameters:
//   - format: [FormatText] or [FormatJSON], case-insensitive; empty selects text
//   - w: Destination; nil selects os.Stderr
//
// Returns:
//   - Logger: The configured logger
//   - error: When format is not recognized
func New(format string, w io.Writer) (Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		l := NewCLILogger()
		l.SetOutput(w)
		return l, nil
	case FormatJSON:
		return NewJSONLogger(w, false), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", format, FormatText, FormatJSON)
	}
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger on top of [zerolog], emitting one JSON object
// per line with "level", "time" and "message" fields.
//
// It is used by the MCP server, where stdout carries the protocol and logs
// must go elsewhere, and by the CLI when --log-format=json is set.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.RWMutex
	zl     zerolog.Logger
	silent bool
}

// NewJSONLogger creates a JSON logger writing to w.
// A nil writer discards output. With silent set, nothing is written at all.
func NewJSONLogger(w io.Writer, silent bool) *JSONLogger {
	l := &JSONLogger{silent: silent}
	l.SetOutput(w)
	return l
}

// Printf formats and logs an info-level message.
func (j *JSONLogger) Printf(format string, v ...any) {
	if j.silent {
		return
	}
	j.mu.RLock()
	zl := j.zl
	j.mu.RUnlock()
	zl.Info().Msgf(format, v...)
}

// Println logs an info-level message built with fmt.Sprint semantics.
func (j *JSONLogger) Println(v ...any) {
	if j.silent {
		return
	}
	j.mu.RLock()
	zl := j.zl
	j.mu.RUnlock()
	zl.Info().Msg(fmt.Sprint(v...))
}

// SetOutput sets the output destination. A nil writer discards output.
func (j *JSONLogger) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	zl := zerolog.New(zerolog.SyncWriter(w)).With().Timestamp().Logger()

	j.mu.Lock()
	j.zl = zl
	j.mu.Unlock()
}
