package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/TocConsulting/cryptex/pkg/qr"
)

// Error variables for QR code rendering
var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrorFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrorFailedToGenerateQRCode = errors.New("failed to generate QR code")
)

// defaultSize is the size in pixels used when no size is specified
const defaultSize = 256

// Generate creates a QR code image in PNG format with the given content.
// Returns the image as a byte slice or an error if generation fails.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrorFailedToGenerateQRCode, err)
	}
	return png, nil
}

// GenerateBase64Image creates a base64 encoded data-URI representation of a
// QR code image with the given content, suitable for an <img> tag.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	base64Image := base64.StdEncoding.EncodeToString(png)
	return fmt.Sprintf("data:image/png;base64,%s", base64Image), nil
}

// ASCII renders content as a QR code for terminal output, two module rows
// per text line. The render includes a quiet zone so most phone cameras can
// scan it straight off the screen.
func ASCII(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	m, err := qr.Encode(content, qr.Medium)
	if err != nil {
		return "", errors.Join(ErrorFailedToGenerateQRCode, err)
	}
	return Terminal(m), nil
}

// Terminal draws a module matrix with half-block characters: U+2580 for a
// dark upper half, U+2584 for a dark lower half, U+2588 for both.
func Terminal(m *qr.Matrix) string {
	const border = 2
	size := m.Size()
	total := size + 2*border

	dark := func(x, y int) bool {
		x -= border
		y -= border
		if x < 0 || y < 0 || x >= size || y >= size {
			return false
		}
		return m.At(x, y)
	}

	var sb strings.Builder
	for y := 0; y < total; y += 2 {
		for x := 0; x < total; x++ {
			top := dark(x, y)
			bottom := y+1 < total && dark(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
