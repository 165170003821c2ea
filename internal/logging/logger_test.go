package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"upscale/internal/config"
	"upscale/internal/logging"
)

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "runner")
	logger.Info("upscaling", logging.String(logging.FieldFile, "/tmp/a b.png"), logging.Int("size_kb", 12))

	line := buf.String()
	for _, fragment := range []string{"INFO  runner: upscaling", `file="/tmp/a b.png"`, "size_kb=12"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("expected component to be rendered as prefix, got %q", line)
	}
}

func TestConsoleLoggerTagsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logger.With(logging.String(logging.FieldRunID, "0123456789abcdef"))
	logging.NewComponentLogger(logger, "installer").
		WithGroup("tool").
		Debug("downloaded", logging.String(logging.FieldOutput, "/opt/x.zip"))

	line := buf.String()
	if !strings.Contains(line, "DEBUG [01234567] installer: downloaded tool.output=/opt/x.zip") {
		t.Fatalf("unexpected line %q", line)
	}
	if strings.Contains(line, "run_id=") {
		t.Fatalf("expected run id lifted into the prefix, got %q", line)
	}
}

func TestConsoleLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", logging.Error(errors.New("boom")))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info line to be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARN  shown") || !strings.Contains(out, "error=boom") {
		t.Fatalf("unexpected warn output %q", out)
	}
}

func TestJSONLoggerShape(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("done", logging.String(logging.FieldRunID, "abc"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if payload["level"] != "info" {
		t.Fatalf("expected lower-case level, got %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
	if payload[logging.FieldRunID] != "abc" {
		t.Fatalf("expected run id attr, got %v", payload)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "upscale.log")

	var console bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &console)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("to both")

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "to both") {
		t.Fatalf("expected file log line, got %q", content)
	}
	if !strings.Contains(console.String(), "to both") {
		t.Fatalf("expected console log line, got %q", console.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("ignored")
	if logger.Enabled(t.Context(), 0) {
		t.Fatal("expected nop logger to be disabled")
	}
}
