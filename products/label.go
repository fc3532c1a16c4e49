package products

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// LabelPayload builds the canonical pipe-delimited label the scanners
// read back: Name|Price|MFD|EXP|Code.
func LabelPayload(p *Product) string {
	code := p.ProductCode
	if code == "" {
		code = p.ID
	}
	return fmt.Sprintf("%s|%.2f|%s|%s|%s", p.Name, p.Price, p.MFD, p.EXP, code)
}

// LabelPNG renders the product's QR label as a PNG image.
func LabelPNG(p *Product, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(LabelPayload(p), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode label: %w", err)
	}
	return png, nil
}
