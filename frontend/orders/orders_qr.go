package orders

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// renderLotQRPNG encodes an order's lot id as a QR tag for the
// receiving dock scanner.
func renderLotQRPNG(value string, size int) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("empty qr value")
	}
	code, err := qr.Encode(value, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, err
	}
	bounds := scaled.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, scaled, bounds.Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
