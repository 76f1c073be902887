// Package qrcode renders stamp URIs as scannable PNG images.
package qrcode

import (
	"encoding/base64"
	"fmt"

	qr "github.com/skip2/go-qrcode"

	"stamprally/internal/domain"
)

// qrSize is the PNG edge length in pixels; large enough to scan from a
// printed store poster.
const qrSize = 512

type encoder struct{}

// NewEncoder returns a QRGenerator that encodes payloads as 512px PNGs.
func NewEncoder() domain.QRGenerator {
	return &encoder{}
}

func (e *encoder) DataURL(payload string) (string, error) {
	png, err := qr.Encode(payload, qr.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("encode qr payload: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
