package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"itemsync/internal/config"
)

func TestNew_DebugWritesToErrOut(t *testing.T) {
	cfg, _ := config.New(t.TempDir())
	cfg.Debug = true

	var buf bytes.Buffer
	logger, closer := New(cfg, &buf)
	defer closer.Close()

	logger.Printf("hello %d", 1)
	if !strings.HasPrefix(buf.String(), Prefix) || !strings.Contains(buf.String(), "hello 1") {
		t.Errorf("expected prefixed line, got %q", buf.String())
	}
}

func TestNew_QuietByDefault(t *testing.T) {
	cfg, _ := config.New(t.TempDir())

	var buf bytes.Buffer
	logger, closer := New(cfg, &buf)
	defer closer.Close()

	logger.Printf("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNew_LogFile(t *testing.T) {
	dir := t.TempDir()
	cfg, _ := config.New(dir)
	cfg.LogFile = filepath.Join(dir, "itemsync.log")

	logger, closer := New(cfg, nil)
	logger.Printf("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("expected log line in file, got %q", data)
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Error("expected non-nil logger")
	}
}
