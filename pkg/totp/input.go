package totp

import "os"

// Input is the caller-supplied token for code computation, resolved into
// exactly one of two forms before any decoding happens: a path to a QR
// image, or a raw base32 secret. There is no fallback from one form to the
// other — a file that fails to decode is an error, never retried as a
// secret string.
type Input interface {
	isInput()
}

// FileInput is a path to a QR code image holding an otpauth URI.
type FileInput string

// RawInput is a base32-encoded secret supplied directly.
type RawInput string

func (FileInput) isInput() {}
func (RawInput) isInput()  {}

// ResolveInput classifies a token with a single filesystem existence check
// and no other side effects: an existing regular file is a FileInput,
// anything else is a RawInput.
func ResolveInput(token string) Input {
	if info, err := os.Stat(token); err == nil && info.Mode().IsRegular() {
		return FileInput(token)
	}
	return RawInput(token)
}
