// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// =============================================================================
// Level Tests
// =============================================================================

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(-1), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.toSlogLevel(); got != tt.want {
				t.Errorf("toSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"", LevelInfo, false},
		{"info", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" warn ", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Logger Tests
// =============================================================================

func TestNew_WritesServiceAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Service: "simuuid", Output: &buf})

	logger.Info("hello", "k", "v")

	out := buf.String()
	if !strings.Contains(out, "service=simuuid") {
		t.Errorf("output missing service attribute: %q", out)
	}
	if !strings.Contains(out, "k=v") {
		t.Errorf("output missing call attribute: %q", out)
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{JSON: true, Output: &buf})

	logger.Warn("json please")

	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewBufferedExporter()
	logger := New(Config{Level: LevelWarn, Output: &buf, Exporter: exporter})

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Errorf("filtered message reached output: %q", buf.String())
	}
	if got := len(exporter.Entries()); got != 2 {
		t.Errorf("exported %d entries, want 2", got)
	}
}

func TestNew_QuietStillExports(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Output: &buf, Exporter: exporter})

	logger.Info("silent")

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
	if msgs := exporter.Messages(LevelInfo); len(msgs) != 1 || msgs[0] != "silent" {
		t.Errorf("Messages(Info) = %v, want [silent]", msgs)
	}
}

func TestLogger_Enabled(t *testing.T) {
	logger := New(Config{Level: LevelInfo, Quiet: true})
	if logger.Enabled(LevelDebug) {
		t.Error("Debug should be disabled at Info level")
	}
	if !logger.Enabled(LevelError) {
		t.Error("Error should be enabled at Info level")
	}
}

func TestLogger_WithCarriesAttrsIntoExport(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Service: "svc", Exporter: exporter})

	child := logger.With("request_id", "abc")
	child.Info("done", "status", 200)

	entries := exporter.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Service != "svc" {
		t.Errorf("Service = %q", e.Service)
	}
	if e.Attrs["request_id"] != "abc" || e.Attrs["status"] != 200 {
		t.Errorf("Attrs = %v", e.Attrs)
	}
}

func TestLogger_WithDoesNotModifyParent(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Exporter: exporter})

	_ = logger.With("child", true)
	logger.Info("parent")

	if _, ok := exporter.Entries()[0].Attrs["child"]; ok {
		t.Error("parent entry carries child attribute")
	}
}

func TestLogger_ConcurrentUse(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Exporter: exporter})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.With("worker", i).Info("tick")
		}(i)
	}
	wg.Wait()

	if got := len(exporter.Entries()); got != 20 {
		t.Errorf("got %d entries, want 20", got)
	}
}

type failingExporter struct {
	NopExporter
	closed int
}

func (f *failingExporter) Flush(ctx context.Context) error { return errors.New("flush boom") }

func (f *failingExporter) Close() error {
	f.closed++
	return nil
}

func TestLogger_CloseOncePerFamily(t *testing.T) {
	exp := &failingExporter{}
	logger := New(Config{Quiet: true, Exporter: exp})
	child := logger.With("a", 1)

	err := logger.Close()
	if err == nil || !strings.Contains(err.Error(), "flush exporter") {
		t.Errorf("Close() error = %v, want flush exporter error", err)
	}
	if err := child.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
	if exp.closed != 1 {
		t.Errorf("exporter closed %d times, want 1", exp.closed)
	}
}

func TestArgsToMap(t *testing.T) {
	got := argsToMap([]any{"a", 1, 2, "skipped", "b", "x", "dangling"})
	if len(got) != 2 || got["a"] != 1 || got["b"] != "x" {
		t.Errorf("argsToMap() = %v", got)
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	if _, ok := logger.exporter.(*NopExporter); !ok {
		t.Errorf("Nop() exporter = %T, want *NopExporter", logger.exporter)
	}
	if logger.With("k", "v").exporter != logger.exporter {
		t.Error("With() child does not share the Nop exporter")
	}
	logger.Error("nothing")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
