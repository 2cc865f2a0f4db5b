package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "chatty", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", log.GetLevel())
	}

	log.Debug("hidden")
	log.WithField("run_id", "01ABC").Info("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered:\n%s", out)
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "run_id=01ABC") {
		t.Fatalf("expected info line with field:\n%s", out)
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pipeline.log")
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", File: path, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("to both")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to both") || !strings.Contains(buf.String(), "to both") {
		t.Fatalf("expected message in file and output")
	}
}
