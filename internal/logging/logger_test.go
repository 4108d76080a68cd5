package logging

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleHandlerRendersComponentPrefixAndPairs(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger = logger.With(String(FieldComponent, "dispatcher"))
	logger.Info("fetch complete", String(FieldURL, "https://example.com/v"), Int(FieldLine, 3))

	line := buf.String()
	if !strings.Contains(line, "INFO dispatcher: fetch complete") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "url=https://example.com/v") {
		t.Fatalf("missing url attr: %q", line)
	}
	if !strings.Contains(line, "line=3") {
		t.Fatalf("missing line attr: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should render as prefix, not attr: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	logger.Warn("probe failed", String("reason", "no formats found"))

	if !strings.Contains(buf.String(), `reason="no formats found"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info suppressed, got %q", buf.String())
	}
	logger.Error("visible")
	if !strings.Contains(buf.String(), "ERROR visible") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewWritesToFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spool.log")
	logger, err := New(Options{Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello")
	if !logger.Handler().Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected info enabled by default")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		" info  ": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
