package totp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// URI renders the canonical otpauth descriptor for this secret:
//
//	otpauth://totp/{issuer}:{account}?secret=...&issuer=...&algorithm=...&digits=...&period=...
//
// secret and issuer are always present; algorithm, digits, and period are
// emitted explicitly even at their RFC defaults so authenticators never
// have to guess. The query is encoded in sorted key order, making the
// string canonical for a given secret.
func (s Secret) URI() string {
	label := fmt.Sprintf("%s:%s", url.PathEscape(s.Issuer), url.PathEscape(s.Account))

	query := url.Values{}
	query.Set("secret", s.Base32)
	query.Set("issuer", s.Issuer)
	query.Set("algorithm", string(s.Algorithm))
	query.Set("digits", strconv.Itoa(s.Digits))
	query.Set("period", strconv.Itoa(s.Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode())
}

// ParseURI is the inverse of URI. It accepts any otpauth://totp/ URI:
// the label may be "issuer:account" or a bare account, the issuer query
// parameter takes precedence over the label's issuer, and absent
// algorithm/digits/period fall back to RFC defaults. A missing secret or a
// non-TOTP scheme/host fails with ErrMalformedURI.
func ParseURI(raw string) (Secret, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Secret{}, fmt.Errorf("%w: %v", ErrMalformedURI, err)
	}
	if u.Scheme != "otpauth" || u.Host != "totp" {
		return Secret{}, fmt.Errorf("%w: not an otpauth TOTP URI: %q", ErrMalformedURI, raw)
	}

	query := u.Query()
	encoded := query.Get("secret")
	if encoded == "" {
		return Secret{}, fmt.Errorf("%w: no secret parameter", ErrMalformedURI)
	}
	rawKey, err := DecodeSecret(encoded)
	if err != nil {
		return Secret{}, err
	}

	label := strings.TrimPrefix(u.Path, "/") // url.Parse already unescaped it
	issuer := query.Get("issuer")
	account := label
	if before, after, found := strings.Cut(label, ":"); found {
		account = after
		if issuer == "" {
			issuer = before
		}
	}

	s := Secret{
		Raw:       rawKey,
		Base32:    EncodeSecret(rawKey),
		Issuer:    issuer,
		Account:   account,
		Algorithm: DefaultAlgorithm,
		Digits:    DefaultDigits,
		Period:    DefaultPeriod,
	}

	if v := query.Get("algorithm"); v != "" {
		alg, err := ParseAlgorithm(v)
		if err != nil {
			return Secret{}, fmt.Errorf("%w: %v", ErrMalformedURI, err)
		}
		s.Algorithm = alg
	}
	if v := query.Get("digits"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return Secret{}, fmt.Errorf("%w: bad digits %q", ErrMalformedURI, v)
		}
		s.Digits = d
	}
	if v := query.Get("period"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Secret{}, fmt.Errorf("%w: bad period %q", ErrMalformedURI, v)
		}
		s.Period = p
	}
	if err := validateParams(s.Algorithm, s.Digits, s.Period); err != nil {
		return Secret{}, fmt.Errorf("%w: %v", ErrMalformedURI, err)
	}

	return s, nil
}
