// Package capture invokes the external interactive region-capture tool and
// loads the image it produces.
package capture

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	apperrors "github.com/lukebuild/luxshot/internal/errors"
	"github.com/lukebuild/luxshot/internal/logging"
)

// Capture is the result of one successful region capture.
type Capture struct {
	// Image is the decoded bitmap.
	Image image.Image
	// Data is the raw encoded file content.
	Data []byte
	// Path is the location of the written capture file.
	Path string
}

// Manager runs the external capture tool. The tool signals success by
// writing the requested output file; a missing file after exit means the
// user cancelled interactively.
type Manager struct {
	tool    string
	args    []string
	tempDir string
	logger  *logging.Logger
}

// NewManager creates a capture manager for the given tool invocation.
// Captures are written to tempDir; if empty, the system temp dir is used.
func NewManager(tool string, args []string, tempDir string) *Manager {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Manager{
		tool:    tool,
		args:    args,
		tempDir: tempDir,
		logger:  logging.Get().WithComponent("capture"),
	}
}

// CaptureRegion launches the interactive capture tool and waits for it to
// exit. The caller is suspended for the duration of the user's selection.
func (m *Manager) CaptureRegion(ctx context.Context) (*Capture, error) {
	outPath := filepath.Join(m.tempDir, "scan_"+uuid.New().String()+".png")

	cmd := exec.CommandContext(ctx, m.tool, append(append([]string{}, m.args...), outPath)...)
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, apperrors.Wrap(apperrors.ErrCaptureLaunch, "cannot start capture tool", err)
		}
		// A non-zero exit with no output file is treated as a cancel below;
		// some tools exit non-zero when the user presses Escape.
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		// No file written: the user dismissed the selection.
		return nil, apperrors.New(apperrors.ErrCaptureCancelled, "capture cancelled by user")
	}
	if len(data) == 0 {
		return nil, apperrors.New(apperrors.ErrCaptureCancelled, "capture cancelled by user")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidImageData, "capture file is not a decodable image", err)
	}

	m.logger.Debug("region captured", map[string]interface{}{
		"path":   outPath,
		"format": format,
		"bytes":  len(data),
	})

	return &Capture{Image: img, Data: data, Path: outPath}, nil
}
