package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"cuemix/internal/logging"
)

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger = logger.With(logging.FieldComponent, "mixer")
	logger.Info("bus mixed", "bus", "sfx_1", "markers", 3)

	line := buf.String()
	if !strings.Contains(line, "INFO mixer: bus mixed") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "bus=sfx_1") || !strings.Contains(line, "markers=3") {
		t.Fatalf("missing attrs in line: %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be suppressed: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWithContextTagsTemplateAndRun(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := logging.WithRunID(logging.WithTemplate(context.Background(), "TPL001"), "run-1")
	logging.WithContext(ctx, logger).Info("assembling")

	line := buf.String()
	if !strings.Contains(line, "template=TPL001") || !strings.Contains(line, "run_id=run-1") {
		t.Fatalf("context fields missing: %q", line)
	}
}
