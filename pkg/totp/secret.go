package totp

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
)

// RFC 6238 defaults.
const (
	DefaultDigits     = 6
	DefaultPeriod     = 30
	DefaultAlgorithm  = SHA1
	DefaultSecretSize = 20 // bytes; 160 bits per RFC 4226's recommendation
	MinSecretSize     = 10
)

// Secret is one TOTP enrollment: the shared key plus the parameters an
// authenticator needs to reproduce codes. The raw bytes are owned by the
// caller; this package never retains them.
type Secret struct {
	Raw       []byte
	Base32    string
	Issuer    string
	Account   string
	Algorithm Algorithm
	Digits    int
	Period    int
}

// SecretOption customizes NewSecret.
type SecretOption func(*secretConfig)

type secretConfig struct {
	algorithm Algorithm
	digits    int
	period    int
	size      int
	rand      io.Reader
}

func WithAlgorithm(a Algorithm) SecretOption {
	return func(c *secretConfig) { c.algorithm = a }
}

func WithDigits(d int) SecretOption {
	return func(c *secretConfig) { c.digits = d }
}

func WithPeriod(p int) SecretOption {
	return func(c *secretConfig) { c.period = p }
}

func WithSecretSize(n int) SecretOption {
	return func(c *secretConfig) { c.size = n }
}

// WithSecretRand overrides the randomness source for tests.
func WithSecretRand(r io.Reader) SecretOption {
	return func(c *secretConfig) {
		if r != nil {
			c.rand = r
		}
	}
}

// NewSecret mints a fresh enrollment for issuer/account: DefaultSecretSize
// random bytes from a CSPRNG, base32-encoded, with RFC defaults unless
// overridden.
func NewSecret(issuer, account string, opts ...SecretOption) (Secret, error) {
	if issuer == "" {
		return Secret{}, ErrMissingIssuer
	}
	if account == "" {
		return Secret{}, ErrMissingAccountName
	}

	cfg := secretConfig{
		algorithm: DefaultAlgorithm,
		digits:    DefaultDigits,
		period:    DefaultPeriod,
		size:      DefaultSecretSize,
		rand:      crand.Reader,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateParams(cfg.algorithm, cfg.digits, cfg.period); err != nil {
		return Secret{}, err
	}
	if cfg.size < MinSecretSize {
		return Secret{}, fmt.Errorf("%w: got %d", ErrSecretTooShort, cfg.size)
	}

	raw := make([]byte, cfg.size)
	if _, err := io.ReadFull(cfg.rand, raw); err != nil {
		return Secret{}, errors.Join(ErrFailedToGenerateSecretKey, err)
	}

	return Secret{
		Raw:       raw,
		Base32:    EncodeSecret(raw),
		Issuer:    issuer,
		Account:   account,
		Algorithm: cfg.algorithm,
		Digits:    cfg.digits,
		Period:    cfg.period,
	}, nil
}

// SecretFromBase32 builds a Secret around an existing base32 key, applying
// RFC defaults to zero-valued parameters.
func SecretFromBase32(encoded, issuer, account string) (Secret, error) {
	raw, err := DecodeSecret(encoded)
	if err != nil {
		return Secret{}, err
	}
	return Secret{
		Raw:       raw,
		Base32:    EncodeSecret(raw),
		Issuer:    issuer,
		Account:   account,
		Algorithm: DefaultAlgorithm,
		Digits:    DefaultDigits,
		Period:    DefaultPeriod,
	}, nil
}

func validateParams(alg Algorithm, digits, period int) error {
	if _, err := ParseAlgorithm(string(alg)); err != nil {
		return err
	}
	if digits < 6 || digits > 10 {
		return fmt.Errorf("%w: got %d", ErrInvalidDigits, digits)
	}
	if period < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}
	return nil
}
