package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("turn resolved", zap.String("player", "Ana"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry leaked: %q", out)
	}
	if !strings.Contains(out, "turn resolved") || !strings.Contains(out, "Ana") {
		t.Fatalf("missing info entry: %q", out)
	}
}

func TestNewOffReturnsNop(t *testing.T) {
	var buf bytes.Buffer
	for _, level := range []string{"", "off", " OFF "} {
		logger, err := New(level, &buf)
		if err != nil {
			t.Fatalf("new logger %q: %v", level, err)
		}
		logger.Error("nothing")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", &bytes.Buffer{}); err == nil {
		t.Fatal("expected level error")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("expected nop logger")
	}
	logger := zap.NewExample()
	if OrNop(logger) != logger {
		t.Fatal("expected same logger")
	}
}
