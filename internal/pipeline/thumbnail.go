package pipeline

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// thumbnailWidth is the fixed width of history row previews; height keeps
// the capture's aspect ratio.
const thumbnailWidth = 320

// makeThumbnail writes a preview image next to the capture file and
// returns its path. Callers treat failures as best-effort.
func makeThumbnail(img image.Image, capturePath string) (string, error) {
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	path := strings.TrimSuffix(capturePath, ".png") + "_thumb.png"
	if err := imaging.Save(thumb, path); err != nil {
		return "", err
	}
	return path, nil
}
