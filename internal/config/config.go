// Package config loads LuxShot configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds process-wide configuration. It is loaded once at startup and
// injected into the components that need it.
type Config struct {
	// DataDir is the application-private directory holding the history file
	// and saved captures.
	DataDir string

	// CaptureTool is the external interactive region-capture executable.
	CaptureTool string
	// CaptureArgs are passed to the tool before the output file path.
	CaptureArgs []string

	// OCRLanguages lists tesseract language codes, best match first.
	OCRLanguages []string

	// Default feature toggles; the UI may change them at runtime.
	KeepLineBreaks bool
	AutoCopy       bool
	AutoOpenLinks  bool

	// ListenAddr is the daemon's localhost listen address.
	ListenAddr string

	// LogLevel is the minimum log level (DEBUG, INFO, WARN, ERROR).
	LogLevel string
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	dataDir := os.Getenv("LUXSHOT_DATA_DIR")
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine config directory: %w", err)
		}
		dataDir = filepath.Join(base, "luxshot")
	}

	tool, args := defaultCaptureCommand()
	if v := os.Getenv("LUXSHOT_CAPTURE_TOOL"); v != "" {
		tool = v
	}
	if v := os.Getenv("LUXSHOT_CAPTURE_ARGS"); v != "" {
		args = strings.Fields(v)
	}

	langs := []string{"eng"}
	if v := os.Getenv("LUXSHOT_OCR_LANGUAGES"); v != "" {
		langs = splitList(v)
	}

	cfg := &Config{
		DataDir:        dataDir,
		CaptureTool:    tool,
		CaptureArgs:    args,
		OCRLanguages:   langs,
		KeepLineBreaks: getEnvAsBool("LUXSHOT_KEEP_LINE_BREAKS", true),
		AutoCopy:       getEnvAsBool("LUXSHOT_AUTO_COPY", false),
		AutoOpenLinks:  getEnvAsBool("LUXSHOT_AUTO_OPEN_LINKS", false),
		ListenAddr:     getEnvOrDefault("LUXSHOT_LISTEN_ADDR", "localhost:8484"),
		LogLevel:       getEnvOrDefault("LUXSHOT_LOG_LEVEL", "INFO"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory must not be empty")
	}
	if c.CaptureTool == "" {
		return fmt.Errorf("capture tool must not be empty")
	}
	if len(c.OCRLanguages) == 0 {
		return fmt.Errorf("at least one OCR language is required")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}

// HistoryPath returns the path of the persisted history file.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "scan_history.json")
}

// defaultCaptureCommand picks the platform's interactive region-capture
// tool with flags for interactive mode, no sound, and no shadow.
func defaultCaptureCommand() (string, []string) {
	if runtime.GOOS == "darwin" {
		return "/usr/sbin/screencapture", []string{"-i", "-x", "-r"}
	}
	return "gnome-screenshot", []string{"-a", "-f"}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnvOrDefault gets an environment variable or returns the default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns the default.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
