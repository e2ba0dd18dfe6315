package totp

import "errors"

var (
	ErrInvalidBase32             = errors.New("invalid base32 secret")
	ErrMalformedURI              = errors.New("malformed otpauth URI")
	ErrMissingSecret             = errors.New("missing secret")
	ErrMissingIssuer             = errors.New("missing issuer")
	ErrMissingAccountName        = errors.New("missing account name")
	ErrInvalidAlgorithm          = errors.New("invalid TOTP algorithm")
	ErrInvalidDigits             = errors.New("digits must be between 6 and 10")
	ErrInvalidPeriod             = errors.New("period must be positive")
	ErrSecretTooShort            = errors.New("secret must be at least 10 bytes")
	ErrFailedToGenerateSecretKey = errors.New("failed to generate TOTP secret key")
)
