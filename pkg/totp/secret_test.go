package totp_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TocConsulting/cryptex/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecret(t *testing.T) {
	t.Parallel()

	s, err := totp.NewSecret("Acme", "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, s.Raw, totp.DefaultSecretSize)
	assert.Regexp(t, `^[A-Z2-7]+$`, s.Base32)
	assert.Equal(t, totp.SHA1, s.Algorithm)
	assert.Equal(t, 6, s.Digits)
	assert.Equal(t, 30, s.Period)

	decoded, err := totp.DecodeSecret(s.Base32)
	require.NoError(t, err)
	assert.Equal(t, s.Raw, decoded)

	other, err := totp.NewSecret("Acme", "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, s.Base32, other.Base32)
}

func TestNewSecret_Validation(t *testing.T) {
	t.Parallel()

	_, err := totp.NewSecret("", "alice")
	assert.ErrorIs(t, err, totp.ErrMissingIssuer)

	_, err = totp.NewSecret("Acme", "")
	assert.ErrorIs(t, err, totp.ErrMissingAccountName)

	_, err = totp.NewSecret("Acme", "alice", totp.WithSecretSize(5))
	assert.ErrorIs(t, err, totp.ErrSecretTooShort)

	_, err = totp.NewSecret("Acme", "alice", totp.WithDigits(3))
	assert.ErrorIs(t, err, totp.ErrInvalidDigits)

	_, err = totp.NewSecret("Acme", "alice", totp.WithPeriod(0))
	assert.ErrorIs(t, err, totp.ErrInvalidPeriod)
}

func TestBase32RoundTrip(t *testing.T) {
	t.Parallel()

	tests := [][]byte{
		{0x00},
		{0xff, 0x00, 0xab},
		[]byte("12345678901234567890"),
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
	}
	for _, raw := range tests {
		encoded := totp.EncodeSecret(raw)
		assert.NotContains(t, encoded, "=")
		decoded, err := totp.DecodeSecret(encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, decoded)
	}
}

func TestDecodeSecret_Tolerance(t *testing.T) {
	t.Parallel()

	raw := []byte("12345678901234567890")
	canonical := totp.EncodeSecret(raw)

	variants := []string{
		canonical,
		canonical + "====",
		"gezd gnbv gy3t qojq gezd gnbv gy3t qojq",
		"GEZD-GNBV-GY3T-QOJQ-GEZD-GNBV-GY3T-QOJQ",
	}
	for _, v := range variants {
		decoded, err := totp.DecodeSecret(v)
		require.NoError(t, err, v)
		assert.Equal(t, raw, decoded, v)
	}
}

func TestDecodeSecret_Invalid(t *testing.T) {
	t.Parallel()

	_, err := totp.DecodeSecret("not!base32@")
	assert.ErrorIs(t, err, totp.ErrInvalidBase32)

	_, err = totp.DecodeSecret("  ---  ")
	assert.ErrorIs(t, err, totp.ErrMissingSecret)

	// 0, 1, 8, 9 are outside the RFC 4648 base32 alphabet.
	_, err = totp.DecodeSecret("ABCD0189")
	assert.ErrorIs(t, err, totp.ErrInvalidBase32)
}

func TestURIRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := totp.NewSecret("Acme Corp", "alice+2fa@example.com",
		totp.WithAlgorithm(totp.SHA256),
		totp.WithDigits(8),
		totp.WithPeriod(60),
	)
	require.NoError(t, err)

	parsed, err := totp.ParseURI(s.URI())
	require.NoError(t, err)
	assert.Equal(t, s, parsed)
}

func TestParseURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		uri     string
		wantErr error
		check   func(t *testing.T, s totp.Secret)
	}{
		{
			name: "defaults applied",
			uri:  "otpauth://totp/Acme:alice?secret=GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ&issuer=Acme",
			check: func(t *testing.T, s totp.Secret) {
				assert.Equal(t, "Acme", s.Issuer)
				assert.Equal(t, "alice", s.Account)
				assert.Equal(t, totp.SHA1, s.Algorithm)
				assert.Equal(t, 6, s.Digits)
				assert.Equal(t, 30, s.Period)
			},
		},
		{
			name: "issuer parameter wins over label",
			uri:  "otpauth://totp/LabelIssuer:bob?secret=GEZDGNBVGY3TQOJQ&issuer=ParamIssuer",
			check: func(t *testing.T, s totp.Secret) {
				assert.Equal(t, "ParamIssuer", s.Issuer)
				assert.Equal(t, "bob", s.Account)
			},
		},
		{
			name: "account only label",
			uri:  "otpauth://totp/carol@example.com?secret=GEZDGNBVGY3TQOJQ",
			check: func(t *testing.T, s totp.Secret) {
				assert.Empty(t, s.Issuer)
				assert.Equal(t, "carol@example.com", s.Account)
			},
		},
		{
			name:    "missing secret",
			uri:     "otpauth://totp/Acme:alice?issuer=Acme",
			wantErr: totp.ErrMalformedURI,
		},
		{
			name:    "wrong scheme",
			uri:     "https://totp/Acme:alice?secret=GEZDGNBVGY3TQOJQ",
			wantErr: totp.ErrMalformedURI,
		},
		{
			name:    "hotp not supported",
			uri:     "otpauth://hotp/Acme:alice?secret=GEZDGNBVGY3TQOJQ",
			wantErr: totp.ErrMalformedURI,
		},
		{
			name:    "invalid base32 secret",
			uri:     "otpauth://totp/Acme:alice?secret=notbase32!!",
			wantErr: totp.ErrInvalidBase32,
		},
		{
			name:    "unknown algorithm",
			uri:     "otpauth://totp/Acme:alice?secret=GEZDGNBVGY3TQOJQ&algorithm=MD5",
			wantErr: totp.ErrMalformedURI,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := totp.ParseURI(tt.uri)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestManagerCodes(t *testing.T) {
	t.Parallel()

	s, err := totp.SecretFromBase32(totp.EncodeSecret([]byte("12345678901234567890")), "Acme", "alice")
	require.NoError(t, err)

	now := int64(59)
	m := totp.NewManager(totp.WithClock(func() time.Time { return time.Unix(now, 0) }))

	codes, err := m.Codes(s)
	require.NoError(t, err)
	assert.Len(t, codes.Current, 6)
	assert.Equal(t, 1, codes.Remaining)

	// The next code must equal the current code computed one period later.
	later, err := m.CodesAt(s, now+int64(s.Period))
	require.NoError(t, err)
	assert.Equal(t, codes.Next, later.Current)
}

func TestManagerCodes_Errors(t *testing.T) {
	t.Parallel()

	m := totp.NewManager()

	_, err := m.CodesAt(totp.Secret{Algorithm: totp.SHA1, Digits: 6, Period: 30}, 0)
	assert.ErrorIs(t, err, totp.ErrMissingSecret)

	_, err = m.CodesAt(totp.Secret{Raw: []byte("x"), Algorithm: "MD5", Digits: 6, Period: 30}, 0)
	assert.ErrorIs(t, err, totp.ErrInvalidAlgorithm)
}

func TestResolveInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "qr.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	assert.Equal(t, totp.FileInput(path), totp.ResolveInput(path))
	assert.Equal(t, totp.RawInput("GEZDGNBVGY3TQOJQ"), totp.ResolveInput("GEZDGNBVGY3TQOJQ"))

	// A directory is not a QR image; the token falls through to raw form.
	assert.Equal(t, totp.RawInput(dir), totp.ResolveInput(dir))
}
