// Package recognize extracts machine-readable content from captured images.
// Text recognition and code detection run as independent passes over the
// same immutable bitmap and are reconciled into one classified result.
package recognize

import (
	"context"
	"image"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lukebuild/luxshot/internal/logging"
	"github.com/lukebuild/luxshot/internal/models"
)

// Symbology identifies the barcode encoding standard of a detected code.
type Symbology string

// SymbologyQR is the only symbology the classifier distinguishes; every
// other detected format is treated as a plain barcode.
const SymbologyQR Symbology = "qr"

// Code is one detected barcode or QR payload.
type Code struct {
	Payload   string
	Symbology Symbology
}

// TextRecognizer performs OCR over a decoded image. An image without any
// text regions yields an empty string, not an error.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, img image.Image) (string, error)
}

// CodeDetector finds barcode/QR payloads in a decoded image. An image
// without codes yields an empty slice, not an error.
type CodeDetector interface {
	DetectCodes(ctx context.Context, img image.Image) ([]Code, error)
}

// Result is the reconciled output of both recognition passes.
type Result struct {
	Text  string
	Codes []Code
	HasQR bool
}

// Content returns the payload to store: detected code payloads joined with
// newlines take strict priority over recognized text.
func (r *Result) Content() string {
	if len(r.Codes) > 0 {
		payloads := make([]string, len(r.Codes))
		for i, c := range r.Codes {
			payloads[i] = c.Payload
		}
		return strings.Join(payloads, "\n")
	}
	return r.Text
}

// Type classifies the result: qrcode if any QR symbology was detected,
// barcode if only other codes were found, text otherwise.
func (r *Result) Type() models.ContentType {
	if r.HasQR {
		return models.ContentTypeQRCode
	}
	if len(r.Codes) > 0 {
		return models.ContentTypeBarcode
	}
	return models.ContentTypeText
}

// Engine runs both recognizers concurrently and classifies the outcome.
type Engine struct {
	text   TextRecognizer
	codes  CodeDetector
	logger *logging.Logger
}

// NewEngine creates an engine from the two recognition passes.
func NewEngine(text TextRecognizer, codes CodeDetector) *Engine {
	return &Engine{
		text:   text,
		codes:  codes,
		logger: logging.Get().WithComponent("recognize"),
	}
}

// Process runs text recognition and code detection concurrently against
// img. Both passes must complete before the result is assembled; the first
// failure aborts the whole call and no partial result is returned.
func (e *Engine) Process(ctx context.Context, img image.Image) (*Result, error) {
	var (
		text  string
		codes []Code
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := e.text.RecognizeText(ctx, img)
		if err != nil {
			return err
		}
		text = t
		return nil
	})
	g.Go(func() error {
		c, err := e.codes.DetectCodes(ctx, img)
		if err != nil {
			return err
		}
		codes = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hasQR := false
	for _, c := range codes {
		if c.Symbology == SymbologyQR {
			hasQR = true
			break
		}
	}

	result := &Result{Text: text, Codes: codes, HasQR: hasQR}
	e.logger.Debug("image processed", map[string]interface{}{
		"type":       string(result.Type()),
		"code_count": len(codes),
		"text_len":   len(text),
	})
	return result, nil
}
