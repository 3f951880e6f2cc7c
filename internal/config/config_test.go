// Package config tests for environment-backed configuration.
package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LUXSHOT_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CaptureTool == "" {
		t.Error("CaptureTool is empty, want platform default")
	}
	if len(cfg.OCRLanguages) != 1 || cfg.OCRLanguages[0] != "eng" {
		t.Errorf("OCRLanguages = %v, want [eng]", cfg.OCRLanguages)
	}
	if !cfg.KeepLineBreaks {
		t.Error("KeepLineBreaks = false, want true by default")
	}
	if cfg.AutoCopy || cfg.AutoOpenLinks {
		t.Error("AutoCopy/AutoOpenLinks should default to false")
	}
	if cfg.ListenAddr != "localhost:8484" {
		t.Errorf("ListenAddr = %q, want localhost:8484", cfg.ListenAddr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LUXSHOT_DATA_DIR", dir)
	t.Setenv("LUXSHOT_CAPTURE_TOOL", "/usr/local/bin/grab")
	t.Setenv("LUXSHOT_CAPTURE_ARGS", "-i --silent")
	t.Setenv("LUXSHOT_OCR_LANGUAGES", "eng, deu,jpn")
	t.Setenv("LUXSHOT_KEEP_LINE_BREAKS", "false")
	t.Setenv("LUXSHOT_AUTO_COPY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CaptureTool != "/usr/local/bin/grab" {
		t.Errorf("CaptureTool = %q, want override", cfg.CaptureTool)
	}
	if len(cfg.CaptureArgs) != 2 || cfg.CaptureArgs[0] != "-i" || cfg.CaptureArgs[1] != "--silent" {
		t.Errorf("CaptureArgs = %v, want [-i --silent]", cfg.CaptureArgs)
	}
	if len(cfg.OCRLanguages) != 3 || cfg.OCRLanguages[1] != "deu" {
		t.Errorf("OCRLanguages = %v, want [eng deu jpn]", cfg.OCRLanguages)
	}
	if cfg.KeepLineBreaks {
		t.Error("KeepLineBreaks = true, want false from env")
	}
	if !cfg.AutoCopy {
		t.Error("AutoCopy = false, want true from env")
	}
}

func TestLoad_InvalidBoolFallsBack(t *testing.T) {
	t.Setenv("LUXSHOT_DATA_DIR", t.TempDir())
	t.Setenv("LUXSHOT_AUTO_COPY", "definitely")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AutoCopy {
		t.Error("AutoCopy = true for unparsable value, want default false")
	}
}

func TestHistoryPath(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{DataDir: dir}

	got := cfg.HistoryPath()
	if got != filepath.Join(dir, "scan_history.json") {
		t.Errorf("HistoryPath() = %q, want scan_history.json under data dir", got)
	}
	if !strings.HasSuffix(got, "scan_history.json") {
		t.Errorf("HistoryPath() = %q, want scan_history.json suffix", got)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		DataDir:      "/tmp/x",
		CaptureTool:  "tool",
		OCRLanguages: []string{"eng"},
		ListenAddr:   "localhost:1",
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	cfg.OCRLanguages = nil
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() error = nil for empty languages, want error")
	}
}
