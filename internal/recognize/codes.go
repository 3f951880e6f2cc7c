package recognize

import (
	"context"
	"image"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi"

	apperrors "github.com/lukebuild/luxshot/internal/errors"
)

// ZxingDetector finds barcode and QR payloads using the zxing port.
type ZxingDetector struct{}

// NewZxingDetector creates a multi-format code detector.
func NewZxingDetector() *ZxingDetector {
	return &ZxingDetector{}
}

// DetectCodes returns every decodable code in the image. No codes is a
// successful empty result.
func (d *ZxingDetector) DetectCodes(ctx context.Context, img image.Image) ([]Code, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeDetection, "cannot binarize image", err)
	}

	reader := multi.NewGenericMultipleBarcodeReader(gozxing.NewMultiFormatReader())
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	results, err := reader.DecodeMultiple(bmp, hints)
	if err != nil {
		if _, ok := err.(gozxing.NotFoundException); ok {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeDetection, "code detection failed", err)
	}

	codes := make([]Code, 0, len(results))
	for _, res := range results {
		codes = append(codes, Code{
			Payload:   res.GetText(),
			Symbology: symbologyOf(res.GetBarcodeFormat()),
		})
	}
	return codes, nil
}

func symbologyOf(format gozxing.BarcodeFormat) Symbology {
	if format == gozxing.BarcodeFormat_QR_CODE {
		return SymbologyQR
	}
	return Symbology(strings.ToLower(format.String()))
}
