package capture

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
)

// SourceAppSentinel is reported when the frontmost application is unknown.
const SourceAppSentinel = "Screen"

// AppInfo describes the application that was frontmost at capture time.
type AppInfo struct {
	// Name is a human-readable application name, or SourceAppSentinel.
	Name string
	// BundleID is a stable application identifier used for icon lookup.
	// May be empty.
	BundleID string
}

// SourceResolver reports the frontmost application. Implementations are
// best-effort and must never fail; unknown means AppInfo{Name: "Screen"}.
type SourceResolver interface {
	Frontmost(ctx context.Context) AppInfo
}

// ExecSourceResolver probes the desktop environment with platform tools.
type ExecSourceResolver struct{}

// Frontmost returns the frontmost application, falling back to the sentinel.
func (ExecSourceResolver) Frontmost(ctx context.Context) AppInfo {
	info := AppInfo{Name: SourceAppSentinel}

	switch runtime.GOOS {
	case "darwin":
		if name := osascript(ctx, `tell application "System Events" to get name of first process whose frontmost is true`); name != "" {
			info.Name = name
		}
		info.BundleID = osascript(ctx, `tell application "System Events" to get bundle identifier of first process whose frontmost is true`)
	default:
		out, err := exec.CommandContext(ctx, "xdotool", "getactivewindow", "getwindowname").Output()
		if err == nil {
			if name := strings.TrimSpace(string(out)); name != "" {
				info.Name = name
			}
		}
	}

	return info
}

func osascript(ctx context.Context, script string) string {
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// StaticSourceResolver always reports the same application. Useful for the
// CLI (where the terminal is frontmost by definition) and for tests.
type StaticSourceResolver struct {
	Info AppInfo
}

// Frontmost returns the fixed application info.
func (s StaticSourceResolver) Frontmost(ctx context.Context) AppInfo {
	if s.Info.Name == "" {
		return AppInfo{Name: SourceAppSentinel}
	}
	return s.Info
}
