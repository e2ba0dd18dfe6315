package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"
)

// Algorithm is the HMAC hash used for code computation.
type Algorithm string

const (
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA512 Algorithm = "SHA512"
)

// ParseAlgorithm normalizes a user- or URI-supplied algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToUpper(s)); a {
	case SHA1, SHA256, SHA512:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAlgorithm, s)
	}
}

func (a Algorithm) hasher() func() hash.Hash {
	switch a {
	case SHA256:
		return sha256.New
	case SHA512:
		return sha512.New
	default:
		return sha1.New
	}
}

// HOTP computes an RFC 4226 code: HMAC over the 8-byte big-endian counter,
// dynamic truncation (low 4 bits of the final byte select a 4-byte window,
// top bit masked), reduced modulo 10^digits and zero-padded.
func HOTP(key []byte, counter uint64, digits int, alg Algorithm) string {
	counterBytes := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		counterBytes[i] = byte(counter & 0xff)
		counter >>= 8
	}

	mac := hmac.New(alg.hasher(), key)
	mac.Write(counterBytes)
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	code := (uint32(sum[offset]&0x7f) << 24) |
		(uint32(sum[offset+1]) << 16) |
		(uint32(sum[offset+2]) << 8) |
		uint32(sum[offset+3])

	mod := uint64(1)
	for i := 0; i < digits; i++ {
		mod *= 10
	}
	return fmt.Sprintf("%0*d", digits, uint64(code)%mod)
}

// TOTP computes the RFC 6238 code for the window containing unixSeconds.
func TOTP(key []byte, unixSeconds int64, periodSeconds, digits int, alg Algorithm) string {
	counter := uint64(unixSeconds) / uint64(periodSeconds)
	return HOTP(key, counter, digits, alg)
}

// RemainingSeconds returns how long the current window stays valid; it
// counts down from periodSeconds to 1 and then resets.
func RemainingSeconds(unixSeconds int64, periodSeconds int) int {
	return periodSeconds - int(unixSeconds%int64(periodSeconds))
}
