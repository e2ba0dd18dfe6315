package totp_test

import (
	"strings"
	"testing"

	"github.com/TocConsulting/cryptex/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 4226 appendix D secret.
var rfc4226Key = []byte("12345678901234567890")

func TestHOTP_RFC4226Vectors(t *testing.T) {
	t.Parallel()

	want := []string{
		"755224", "287082", "359152", "969429", "338314",
		"254676", "287922", "162583", "399871", "520489",
	}
	for counter, code := range want {
		assert.Equal(t, code, totp.HOTP(rfc4226Key, uint64(counter), 6, totp.SHA1), "counter %d", counter)
	}
}

func TestTOTP_RFC6238Vectors(t *testing.T) {
	t.Parallel()

	sha256Key := []byte("12345678901234567890123456789012")
	sha512Key := []byte(strings.Repeat("1234567890", 6) + "1234")

	tests := []struct {
		unix int64
		alg  totp.Algorithm
		key  []byte
		want string
	}{
		{59, totp.SHA1, rfc4226Key, "94287082"},
		{59, totp.SHA256, sha256Key, "46119246"},
		{59, totp.SHA512, sha512Key, "90693936"},
		{1111111109, totp.SHA1, rfc4226Key, "07081804"},
		{1111111109, totp.SHA256, sha256Key, "68084774"},
		{1111111109, totp.SHA512, sha512Key, "25091201"},
		{1111111111, totp.SHA1, rfc4226Key, "14050471"},
		{1234567890, totp.SHA1, rfc4226Key, "89005924"},
		{2000000000, totp.SHA1, rfc4226Key, "69279037"},
		{2000000000, totp.SHA256, sha256Key, "90698825"},
		{2000000000, totp.SHA512, sha512Key, "38618901"},
	}
	for _, tt := range tests {
		got := totp.TOTP(tt.key, tt.unix, 30, 8, tt.alg)
		assert.Equal(t, tt.want, got, "t=%d alg=%s", tt.unix, tt.alg)
	}
}

func TestRemainingSeconds(t *testing.T) {
	t.Parallel()

	// Counts down linearly from 30 to 1, then resets.
	assert.Equal(t, 30, totp.RemainingSeconds(0, 30))
	assert.Equal(t, 29, totp.RemainingSeconds(1, 30))
	assert.Equal(t, 1, totp.RemainingSeconds(29, 30))
	assert.Equal(t, 30, totp.RemainingSeconds(30, 30))

	prev := totp.RemainingSeconds(60, 30)
	for s := int64(61); s < 90; s++ {
		cur := totp.RemainingSeconds(s, 30)
		assert.Equal(t, prev-1, cur, "t=%d", s)
		prev = cur
	}
}

func TestParseAlgorithm(t *testing.T) {
	t.Parallel()

	a, err := totp.ParseAlgorithm("sha256")
	require.NoError(t, err)
	assert.Equal(t, totp.SHA256, a)

	_, err = totp.ParseAlgorithm("md5")
	assert.ErrorIs(t, err, totp.ErrInvalidAlgorithm)
}
