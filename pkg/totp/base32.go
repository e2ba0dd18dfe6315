package totp

import (
	"encoding/base32"
	"errors"
	"strings"
)

var unpadded = base32.StdEncoding.WithPadding(base32.NoPadding)

// EncodeSecret encodes raw bytes as an unpadded, uppercase RFC 4648 base32
// string, the conventional shape for human-typeable TOTP secrets.
func EncodeSecret(raw []byte) string {
	return unpadded.EncodeToString(raw)
}

// DecodeSecret decodes a base32 secret the way users supply them: case is
// ignored, spaces and dashes are stripped, and trailing padding is
// tolerated. Characters outside the RFC 4648 alphabet fail with
// ErrInvalidBase32.
func DecodeSecret(s string) ([]byte, error) {
	clean := strings.ToUpper(s)
	clean = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-':
			return -1
		}
		return r
	}, clean)
	clean = strings.TrimRight(clean, "=")
	if clean == "" {
		return nil, ErrMissingSecret
	}

	raw, err := unpadded.DecodeString(clean)
	if err != nil {
		return nil, errors.Join(ErrInvalidBase32, err)
	}
	return raw, nil
}
