package qr

import "errors"

var (
	// ErrContentEmpty is returned when there is nothing to encode.
	ErrContentEmpty = errors.New("content cannot be empty")
	// ErrContentTooLong is returned when the payload does not fit the
	// largest supported symbol at the requested error-correction level.
	ErrContentTooLong = errors.New("content too long for supported QR versions")
	// ErrNotFound is returned when no QR symbol can be located in the
	// image: fewer than three finder patterns, or an implausible grid.
	ErrNotFound = errors.New("no QR code found in image")
	// ErrFormat is returned when a located symbol carries inconsistent or
	// uncorrectable format/version metadata, or an unsupported payload
	// mode. The image was readable; the symbol is not trustworthy.
	ErrFormat = errors.New("QR format information is invalid")
	// ErrUnrecoverable is returned when the error count exceeds the
	// Reed-Solomon correction capacity of the symbol.
	ErrUnrecoverable = errors.New("QR code damaged beyond error correction capacity")
)
