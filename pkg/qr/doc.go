// Package qr implements a self-contained QR code codec covering symbol
// versions 1 through 10 at all four error-correction levels.
//
// The encoder produces a module matrix from text: byte-mode segmentation,
// Reed-Solomon error correction over GF(256), codeword interleaving, and
// automatic mask selection by penalty score. The decoder reverses the
// pipeline starting from a captured image: binarization, finder pattern
// location, grid sampling, format recovery, and error correction.
//
// # Architecture
//
// The package is split along the pipeline stages:
//
//   - gf256.go and reedsolomon.go: field arithmetic and RS encode/correct
//   - version.go: capacity and block-structure tables
//   - matrix.go: module grid, function patterns, data placement order
//   - format.go: BCH-protected format and version information
//   - encode.go: text to Matrix
//   - decode.go: image (or Matrix) to text
//
// # Usage
//
//	m, err := qr.Encode("otpauth://totp/...", qr.Medium)
//	if err != nil {
//		return err
//	}
//	png, err := m.PNG(8, 4)
//
//	text, err := qr.Decode(img)
//
// # Error Handling
//
// All failures wrap one of the package sentinels:
//
//	errors.Is(err, qr.ErrContentTooLong) // payload exceeds version 10
//	errors.Is(err, qr.ErrNotFound)       // no symbol located in the image
//	errors.Is(err, qr.ErrFormat)         // inconsistent symbol metadata
//	errors.Is(err, qr.ErrUnrecoverable)  // damage beyond RS capacity
package qr
