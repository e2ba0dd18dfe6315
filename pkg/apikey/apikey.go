package apikey

import (
	crand "crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/google/uuid"
)

// Format selects the rendering of random material into an identifier.
type Format string

const (
	FormatUUID      Format = "uuid"      // RFC 4122 version 4
	FormatUUIDHex   Format = "uuid-hex"  // v4 UUID with dashes stripped
	FormatHex       Format = "hex"       // lowercase hex digits
	FormatBase64    Format = "base64"    // standard base64, trimmed to length
	FormatBase64URL Format = "base64url" // unpadded URL-safe base64
	FormatURLSafe   Format = "url-safe"  // alphanumerics plus - and _
	FormatAlphanum  Format = "alphanum"  // alphanumerics only
)

const urlSafeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"
const alphanumAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	ErrUnknownFormat = errors.New("unknown API key format")
	ErrInvalidLength = errors.New("API key length must be positive")
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatUUID, FormatUUIDHex, FormatHex, FormatBase64, FormatBase64URL, FormatURLSafe, FormatAlphanum:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Generate renders random bytes from r (crypto/rand.Reader when nil) into
// the requested format. length is the character count of the result and is
// ignored for the UUID formats, which have a fixed layout. Each format
// consumes exactly the random bytes it needs.
func Generate(f Format, length int, r io.Reader) (string, error) {
	if r == nil {
		r = crand.Reader
	}
	if length < 1 && f != FormatUUID && f != FormatUUIDHex {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}

	switch f {
	case FormatUUID:
		id, err := uuid.NewRandomFromReader(r)
		if err != nil {
			return "", err
		}
		return id.String(), nil

	case FormatUUIDHex:
		id, err := uuid.NewRandomFromReader(r)
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(id[:]), nil

	case FormatHex:
		raw, err := read(r, (length+1)/2)
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(raw)[:length], nil

	case FormatBase64:
		raw, err := read(r, byteNeed(length))
		if err != nil {
			return "", err
		}
		return base64.StdEncoding.EncodeToString(raw)[:length], nil

	case FormatBase64URL:
		raw, err := read(r, byteNeed(length))
		if err != nil {
			return "", err
		}
		return base64.RawURLEncoding.EncodeToString(raw)[:length], nil

	case FormatURLSafe:
		return fromAlphabet(r, urlSafeAlphabet, length)

	case FormatAlphanum:
		return fromAlphabet(r, alphanumAlphabet, length)

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// byteNeed returns the raw byte count whose base64 expansion covers length
// characters.
func byteNeed(length int) int {
	return (length*3 + 3) / 4
}

func read(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("read randomness: %w", err)
	}
	return b, nil
}

func fromAlphabet(r io.Reader, alphabet string, length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		v, err := crand.Int(r, max)
		if err != nil {
			return "", fmt.Errorf("read randomness: %w", err)
		}
		out[i] = alphabet[v.Int64()]
	}
	return string(out), nil
}
