package client

import (
	"fmt"
	"image"
	"strings"
	"unicode"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// BarcodeReader decodes the Interleaved 2 of 5 payment barcode printed on a DAS.
type BarcodeReader struct {
	hints map[gozxing.DecodeHintType]interface{}
}

func NewBarcodeReader() *BarcodeReader {
	return &BarcodeReader{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode returns the digits of the barcode found in img.
func (b *BarcodeReader) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := oned.NewITFReader().Decode(bmp, b.hints)
	if err != nil {
		return "", fmt.Errorf("failed to decode barcode: %w", err)
	}

	digits := onlyDigits(result.GetText())
	if digits == "" {
		return "", fmt.Errorf("barcode has no digits")
	}
	return digits, nil
}

func onlyDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
