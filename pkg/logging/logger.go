// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for SimUUID components.
//
// The logger is a thin layer over log/slog that adds a service attribute,
// a configurable output writer and an optional LogExporter that receives
// every entry at or above the configured level:
//
//	┌───────────────────────────────────────────────┐
//	│                    Logger                     │
//	│  ┌──────────────────┐  ┌────────────────────┐ │
//	│  │  Output writer   │  │    LogExporter     │ │
//	│  │ (stderr default) │  │    (optional)      │ │
//	│  └──────────────────┘  └────────────────────┘ │
//	└───────────────────────────────────────────────┘
//
// # Basic Usage
//
//	logger := logging.Default()
//	logger.Info("server listening", "port", 12310)
//
// # Capturing Logs in Tests
//
//	exporter := logging.NewBufferedExporter()
//	logger := logging.New(logging.Config{Level: logging.LevelDebug, Quiet: true, Exporter: exporter})
//	logger.Debug("palindrome selected", "palindrome", "12321")
//	entries := exporter.Entries()
//
// # Thread Safety
//
// Logger is safe for concurrent use. Exporters must be safe for concurrent
// Export calls.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// Log Levels
// =============================================================================

// Level represents log severity levels, ordered Debug < Info < Warn < Error.
type Level int

const (
	// LevelDebug is for development troubleshooting, including per-rule
	// generator output.
	LevelDebug Level = iota

	// LevelInfo is for normal operational messages.
	LevelInfo

	// LevelWarn is for recoverable problems such as rejected requests.
	LevelWarn

	// LevelError is for failed operations.
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel converts a configuration string into a Level.
//
// # Description
//
// Matching is case-insensitive and accepts "warning" as an alias for
// "warn". The empty string maps to LevelInfo.
//
// # Inputs
//
//   - s: Level name from a config file or environment variable.
//
// # Outputs
//
//   - Level: The parsed level (LevelInfo on error).
//   - error: Non-nil if s names no known level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// =============================================================================
// Configuration
// =============================================================================

// Config configures the Logger behavior.
//
// A zero-value Config creates a logger that writes Info+ messages to stderr
// in text format.
type Config struct {
	// Level sets the minimum log level. Default: LevelInfo.
	Level Level

	// Service is attached to every entry as the "service" attribute.
	Service string

	// JSON switches the output handler from text to JSON.
	JSON bool

	// Quiet disables the output writer. The exporter still receives entries.
	Quiet bool

	// Output receives formatted log lines. Default: os.Stderr.
	Output io.Writer

	// Exporter receives a LogEntry for every enabled log call.
	Exporter LogExporter
}

// =============================================================================
// Export Interface
// =============================================================================

// LogExporter receives structured log entries in addition to the output
// writer.
//
// Export is called synchronously on the logging goroutine, so
// implementations must return quickly and buffer internally when they talk
// to a remote system. Flush and Close are called once from Logger.Close.
type LogExporter interface {
	Export(ctx context.Context, entry LogEntry) error
	Flush(ctx context.Context) error
	Close() error
}

// LogEntry is the exported form of a single log call.
type LogEntry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Service   string

	// Attrs holds the key-value pairs of the call and of any With() parents.
	Attrs map[string]any
}

// =============================================================================
// Logger
// =============================================================================

// Logger provides structured logging with an optional exporter.
//
// Use With() to derive request-scoped loggers:
//
//	reqLogger := logger.With("request_id", id)
//	reqLogger.Info("identifier generated", "digits", len(out))
type Logger struct {
	slog     *slog.Logger
	config   Config
	exporter LogExporter

	// attrs are the With() attributes, replayed into exported entries.
	attrs []any

	// closeOnce guards exporter shutdown across With() children.
	closeOnce *sync.Once
}

// New creates a Logger from config.
//
// # Description
//
// Builds a text or JSON slog handler on config.Output (stderr when nil),
// unless Quiet is set, and tags every record with the service name.
//
// # Inputs
//
//   - config: Logger configuration.
//
// # Outputs
//
//   - *Logger: Ready for use. Call Close to flush the exporter.
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{Level: config.Level.toSlogLevel()}

	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	if config.Quiet {
		out = io.Discard
	}

	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", config.Service)})
	}

	return &Logger{
		slog:      slog.New(handler),
		config:    config,
		exporter:  config.Exporter,
		closeOnce: &sync.Once{},
	}
}

// Default returns an Info-level text logger on stderr for the "simuuid"
// service.
func Default() *Logger {
	return New(Config{Level: LevelInfo, Service: "simuuid"})
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return New(Config{Level: LevelError, Quiet: true, Exporter: &NopExporter{}})
}

// Debug logs at Debug level.
func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }

// Info logs at Info level.
func (l *Logger) Info(msg string, args ...any) { l.log(LevelInfo, msg, args...) }

// Warn logs at Warn level.
func (l *Logger) Warn(msg string, args ...any) { l.log(LevelWarn, msg, args...) }

// Error logs at Error level.
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

// Enabled reports whether a call at level would be emitted.
//
// Callers use it to skip computing expensive attributes.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.config.Level
}

// With returns a child logger carrying the additional attributes.
//
// The parent is not modified. Children share the parent's exporter.
func (l *Logger) With(args ...any) *Logger {
	attrs := make([]any, 0, len(l.attrs)+len(args))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, args...)
	return &Logger{
		slog:      l.slog.With(args...),
		config:    l.config,
		exporter:  l.exporter,
		attrs:     attrs,
		closeOnce: l.closeOnce,
	}
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Close flushes and closes the exporter, once per logger family.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.exporter == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if ferr := l.exporter.Flush(ctx); ferr != nil {
			err = fmt.Errorf("flush exporter: %w", ferr)
		}
		if cerr := l.exporter.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close exporter: %w", cerr)
		}
	})
	return err
}

func (l *Logger) log(level Level, msg string, args ...any) {
	switch level {
	case LevelDebug:
		l.slog.Debug(msg, args...)
	case LevelInfo:
		l.slog.Info(msg, args...)
	case LevelWarn:
		l.slog.Warn(msg, args...)
	case LevelError:
		l.slog.Error(msg, args...)
	}

	if l.exporter == nil || !l.Enabled(level) {
		return
	}

	attrs := argsToMap(l.attrs)
	for k, v := range argsToMap(args) {
		attrs[k] = v
	}
	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Service:   l.config.Service,
		Attrs:     attrs,
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = l.exporter.Export(ctx, entry)
}

// argsToMap converts slog-style key-value args to a map. Non-string keys
// and a trailing unpaired value are dropped.
func argsToMap(args []any) map[string]any {
	result := make(map[string]any, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		if key, ok := args[i].(string); ok {
			result[key] = args[i+1]
		}
	}
	return result
}

// =============================================================================
// Built-in Exporters
// =============================================================================

// NopExporter discards all entries.
type NopExporter struct{}

// Export discards the entry.
func (e *NopExporter) Export(ctx context.Context, entry LogEntry) error { return nil }

// Flush is a no-op.
func (e *NopExporter) Flush(ctx context.Context) error { return nil }

// Close is a no-op.
func (e *NopExporter) Close() error { return nil }

var _ LogExporter = (*NopExporter)(nil)

// BufferedExporter collects log entries in memory for assertions.
type BufferedExporter struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewBufferedExporter creates an empty BufferedExporter.
func NewBufferedExporter() *BufferedExporter {
	return &BufferedExporter{entries: make([]LogEntry, 0, 16)}
}

// Export appends the entry.
func (e *BufferedExporter) Export(ctx context.Context, entry LogEntry) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = append(e.entries, entry)
	return nil
}

// Flush is a no-op.
func (e *BufferedExporter) Flush(ctx context.Context) error { return nil }

// Close is a no-op.
func (e *BufferedExporter) Close() error { return nil }

// Entries returns a copy of the collected entries.
func (e *BufferedExporter) Entries() []LogEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	result := make([]LogEntry, len(e.entries))
	copy(result, e.entries)
	return result
}

// Messages returns the messages of entries at exactly level, in order.
func (e *BufferedExporter) Messages(level Level) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, entry := range e.entries {
		if entry.Level == level {
			out = append(out, entry.Message)
		}
	}
	return out
}

var _ LogExporter = (*BufferedExporter)(nil)
