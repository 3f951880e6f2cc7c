package recognize

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	apperrors "github.com/lukebuild/luxshot/internal/errors"
)

// TesseractRecognizer performs OCR with a local tesseract installation.
// A fresh client is created per call, so concurrent recognition against
// the same image shares no mutable state.
type TesseractRecognizer struct {
	languages []string
}

// NewTesseractRecognizer creates a recognizer for the given language codes.
func NewTesseractRecognizer(languages []string) *TesseractRecognizer {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractRecognizer{languages: languages}
}

// RecognizeText runs OCR and returns all recognized text in reading order,
// newline-joined. An image without text yields an empty string.
func (r *TesseractRecognizer) RecognizeText(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", apperrors.Wrap(apperrors.ErrTextRecognition, "cannot encode image for OCR", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.languages...); err != nil {
		return "", apperrors.Wrap(apperrors.ErrTextRecognition, "cannot configure OCR languages", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", apperrors.Wrap(apperrors.ErrTextRecognition, "cannot load image into OCR engine", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrTextRecognition, "OCR failed", err)
	}
	return text, nil
}
